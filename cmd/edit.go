package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/astreinte-tracker/internal/compliance"
	"github.com/Tiliavir/astreinte-tracker/internal/storage"
	"github.com/Tiliavir/astreinte-tracker/internal/timecalc"
)

var (
	editFlags entryFlags
	editDate  string
	editStart string
	editEnd   string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a logged shift",
	Long: `Change the shift whose id (or an unambiguous prefix of at least four
characters) is given. Only the flags passed are applied.`,
	Example: `  att edit 5b1c --end 18:00
  att edit 5b1c --intervention=false --sans-intervention`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editFlags.register(editCmd)
	editCmd.Flags().StringVar(&editDate, "date", "", "Move the shift to another day")
	editCmd.Flags().StringVar(&editStart, "start", "", "New start time (HH:MM)")
	editCmd.Flags().StringVar(&editEnd, "end", "", "New end time (HH:MM)")
}

func runEdit(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	old, err := e.findEntry(args[0])
	if err != nil {
		return err
	}

	entry := old
	if editDate != "" {
		day, err := parseDay(editDate)
		if err != nil {
			return err
		}
		entry.Date = timecalc.DateKey(day)
	}
	if editStart != "" {
		entry.StartTime = editStart
	}
	if editEnd != "" {
		entry.EndTime = editEnd
	}
	editFlags.apply(cmd, &entry)

	entry, err = compliance.Prepare(entry)
	if err != nil {
		return err
	}
	if err := storage.UpdateEntry(e.base, entry); err != nil {
		return ioError(err)
	}
	if entry.Date != old.Date {
		if err := storage.DeleteEntry(e.base, old); err != nil {
			return ioError(err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s  %s %s–%s (%s effective)\n", shortID(entry.ID), entry.Date,
		entry.StartTime, entry.EndTime, timecalc.FormatMinutes(compliance.EffectiveMinutes(entry)))
	day, _ := timecalc.ParseDate(entry.Date)
	return printDayAlerts(cmd, e, day)
}
