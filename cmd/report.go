package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/astreinte-tracker/internal/compliance"
	"github.com/Tiliavir/astreinte-tracker/internal/report"
)

var (
	reportWeeks int
	reportUntil string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the compliance status of the last weeks",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().IntVar(&reportWeeks, "weeks", 4, "Number of weeks to show")
	reportCmd.Flags().StringVar(&reportUntil, "until", "", "Day inside the last week shown (default today)")
}

func runReport(cmd *cobra.Command, args []string) error {
	if reportWeeks < 1 {
		return errors.New("--weeks must be at least 1")
	}
	last, err := parseDay(reportUntil)
	if err != nil {
		return err
	}
	e, err := loadEnv()
	if err != nil {
		return err
	}

	weeks := make([]compliance.WeekSummary, 0, reportWeeks)
	for i := reportWeeks - 1; i >= 0; i-- {
		_, w, err := e.week(last.AddDate(0, 0, -7*i))
		if err != nil {
			return err
		}
		weeks = append(weeks, w)
	}
	if err := report.StatusTable(cmd.OutOrStdout(), weeks); err != nil {
		return ioError(err)
	}
	return nil
}
