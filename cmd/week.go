package cmd

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/astreinte-tracker/internal/compliance"
	"github.com/Tiliavir/astreinte-tracker/internal/report"
)

var (
	weekFormat string
	weekStrict bool
)

var weekCmd = &cobra.Command{
	Use:   "week [date]",
	Short: "Check the Sunday-to-Saturday week containing date",
	Long: `Check the week containing date (default today) against every rule and
print its summary. With --strict the command exits with status 3 when
the week is rouge.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWeek,
}

func init() {
	weekCmd.Flags().StringVar(&weekFormat, "format", "md", "Output format: md, json")
	weekCmd.Flags().BoolVar(&weekStrict, "strict", false, "Exit with status 3 when the week is rouge")
}

func runWeek(cmd *cobra.Command, args []string) error {
	day, err := optionalDay(args)
	if err != nil {
		return err
	}
	e, err := loadEnv()
	if err != nil {
		return err
	}
	_, w, err := e.week(day)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch weekFormat {
	case "json":
		data, err := json.MarshalIndent(w, "", "  ")
		if err != nil {
			return ioError(fmt.Errorf("error encoding JSON: %w", err))
		}
		fmt.Fprintln(out, string(data))
	case "md":
		if err := report.WeekMarkdown(out, w); err != nil {
			return ioError(err)
		}
	default:
		return fmt.Errorf("unknown format %q (want md or json)", weekFormat)
	}

	if weekStrict && w.OverallStatus == compliance.Rouge {
		return &exitError{code: exitStrict, err: fmt.Errorf("week %s is rouge", w.WeekStart.Format("2006-01-02"))}
	}
	return nil
}
