package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/astreinte-tracker/internal/compliance"
	"github.com/Tiliavir/astreinte-tracker/internal/report"
	"github.com/Tiliavir/astreinte-tracker/internal/storage"
	"github.com/Tiliavir/astreinte-tracker/internal/timecalc"
)

var dayCmd = &cobra.Command{
	Use:   "day [date]",
	Short: "Show the summary of one day",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDay,
}

func runDay(cmd *cobra.Command, args []string) error {
	day, err := optionalDay(args)
	if err != nil {
		return err
	}
	e, err := loadEnv()
	if err != nil {
		return err
	}
	df, err := storage.LoadDay(e.base, day)
	if err != nil {
		return ioError(err)
	}

	out := cmd.OutOrStdout()
	printList(out, e.engine.Annotate(df.Entries))
	fmt.Fprintln(out)
	printDaySummary(out, e.engine.Day(df.Entries, day))
	return nil
}

func printDaySummary(w io.Writer, d compliance.DaySummary) {
	fmt.Fprintf(w, "%s  %d entries\n", timecalc.DateKey(d.Date), d.EntryCount)
	fmt.Fprintf(w, "  Worked:     %s\n", timecalc.FormatHours(d.HoursWorked))
	fmt.Fprintf(w, "  Habillage:  %s\n", timecalc.FormatHours(d.HabillageHours))
	fmt.Fprintf(w, "  Total:      %s\n", timecalc.FormatHours(d.TotalHours))
	if d.TrajetHeures > 0 {
		fmt.Fprintf(w, "  Trajet:     %s\n", timecalc.FormatHours(d.TrajetHeures))
	}
	if d.PrimeRepas {
		fmt.Fprintln(w, "  Prime repas due")
	}
	if d.IKAlert {
		fmt.Fprintln(w, "  IK à vérifier")
	}
	for _, a := range d.Alerts {
		fmt.Fprintf(w, "  ! %s\n", report.AlertLine(a))
	}
}
