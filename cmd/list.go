package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/astreinte-tracker/internal/compliance"
	"github.com/Tiliavir/astreinte-tracker/internal/model"
	"github.com/Tiliavir/astreinte-tracker/internal/report"
	"github.com/Tiliavir/astreinte-tracker/internal/storage"
	"github.com/Tiliavir/astreinte-tracker/internal/timecalc"
)

var (
	listDate string
	listWeek bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged shifts",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listDate, "date", "", "Day to list (default today)")
	listCmd.Flags().BoolVar(&listWeek, "week", false, "List the whole week containing the day")
}

func runList(cmd *cobra.Command, args []string) error {
	day, err := parseDay(listDate)
	if err != nil {
		return err
	}
	e, err := loadEnv()
	if err != nil {
		return err
	}

	from, to := day, day
	if listWeek {
		from = timecalc.WeekStart(day)
		to = from.AddDate(0, 0, 6)
	}
	entries, err := storage.LoadRange(e.base, from, to)
	if err != nil {
		return ioError(err)
	}

	printList(cmd.OutOrStdout(), e.engine.Annotate(entries))
	return nil
}

// printList groups entries by date and prints them with their derived
// comments.
func printList(w io.Writer, entries []model.ShiftEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return
	}

	var currentDay string
	for _, e := range entries {
		if e.Date != currentDay {
			d, _ := time.Parse(timecalc.DateLayout, e.Date)
			fmt.Fprintf(w, "%s (%s)\n", e.Date, d.Weekday())
			currentDay = e.Date
		}

		line := fmt.Sprintf("  %s  %s–%s  %7s", shortID(e.ID), e.StartTime, e.EndTime,
			timecalc.FormatMinutes(compliance.EffectiveMinutes(e)))
		if flags := report.EntryFlags(e); flags != "" {
			line += "  [" + flags + "]"
		}
		if e.Note != "" {
			line += "  " + e.Note
		}
		if len(e.NoteTags) > 0 {
			line += "  #" + strings.Join(e.NoteTags, " #")
		}
		fmt.Fprintln(w, line)
		for _, c := range e.AutoComments {
			fmt.Fprintf(w, "      • %s\n", c.Text)
		}
	}
}
