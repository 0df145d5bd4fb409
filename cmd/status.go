package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/astreinte-tracker/internal/timecalc"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today and the current week at a glance",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	now := today()
	_, w, err := e.week(now)
	if err != nil {
		return err
	}
	d := w.Days[int(now.Weekday())]

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Today (%s): %s worked, %s with habillage\n",
		timecalc.DateKey(now), timecalc.FormatHours(d.HoursWorked), timecalc.FormatHours(d.TotalHours))
	fmt.Fprintf(out, "Week %s: %s / %s, %s left  [%s]\n",
		timecalc.WeekLabel(w.WeekStart), timecalc.FormatHours(w.TotalHours),
		timecalc.FormatHours(w.PlafondAutorise), timecalc.FormatHours(w.HeuresRestantes), w.OverallStatus)
	if n := len(w.Alerts); n > 0 {
		fmt.Fprintf(out, "%d alert(s), run \"att week\" for details.\n", n)
	}
	if e.missing != nil {
		fmt.Fprintln(out, "Some settings use built-in defaults, run \"att config\" to review them.")
	}
	return nil
}
