package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/astreinte-tracker/internal/compliance"
	"github.com/Tiliavir/astreinte-tracker/internal/model"
	"github.com/Tiliavir/astreinte-tracker/internal/report"
	"github.com/Tiliavir/astreinte-tracker/internal/storage"
	"github.com/Tiliavir/astreinte-tracker/internal/timecalc"
)

var addFlags entryFlags

var addCmd = &cobra.Command{
	Use:   "add <date> [<start> <end>]",
	Short: "Log a shift",
	Long: `Log a shift on <date> (YYYY-MM-DD, today, yesterday) from <start> to <end>
(HH:MM). An end at or before the start means the shift runs past midnight.
Times may be omitted with --fpc, which sets the canonical training hours.`,
	Example: `  att add today 08:00 16:45 --suppression-midi
  att add 2026-02-24 21:30 02:00 --intervention --note "alarme pompe"
  att add yesterday --fpc 8`,
	Args: cobra.RangeArgs(1, 3),
	RunE: runAdd,
}

func init() {
	addFlags.register(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	day, err := parseDay(args[0])
	if err != nil {
		return err
	}
	entry := model.ShiftEntry{Date: timecalc.DateKey(day)}
	switch len(args) {
	case 3:
		entry.StartTime, entry.EndTime = args[1], args[2]
	case 2:
		return errors.New("both <start> and <end> are required")
	default:
		if !cmd.Flags().Changed("fpc") {
			return errors.New("<start> and <end> are required unless --fpc is given")
		}
	}
	addFlags.apply(cmd, &entry)

	entry, err = compliance.Prepare(entry)
	if err != nil {
		return err
	}

	e, err := loadEnv()
	if err != nil {
		return err
	}
	if err := storage.UpdateEntry(e.base, entry); err != nil {
		return ioError(err)
	}

	out := cmd.OutOrStdout()
	entry = compliance.Annotate(entry, e.settings)
	fmt.Fprintf(out, "Added %s  %s %s–%s (%s effective)\n", shortID(entry.ID), entry.Date,
		entry.StartTime, entry.EndTime, timecalc.FormatMinutes(compliance.EffectiveMinutes(entry)))
	for _, c := range entry.AutoComments {
		fmt.Fprintf(out, "  • %s\n", c.Text)
	}
	return printDayAlerts(cmd, e, day)
}

// printDayAlerts shows the alerts of the week that concern day, right
// after it changed.
func printDayAlerts(cmd *cobra.Command, e env, day time.Time) error {
	_, w, err := e.week(day)
	if err != nil {
		return err
	}
	key := timecalc.DateKey(day)
	for _, a := range w.Alerts {
		if a.Date == nil || a.DateKey() == key {
			fmt.Fprintf(cmd.OutOrStdout(), "  ! %s\n", report.AlertLine(a))
		}
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
