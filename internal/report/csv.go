package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Tiliavir/astreinte-tracker/internal/compliance"
	"github.com/Tiliavir/astreinte-tracker/internal/model"
	"github.com/Tiliavir/astreinte-tracker/internal/timecalc"
)

func hours(h float64) string {
	return strconv.FormatFloat(h, 'f', 2, 64)
}

// EntriesCSV writes one row per entry.
func EntriesCSV(w io.Writer, entries []model.ShiftEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "date", "start", "end", "effective_minutes", "flags", "tags", "note", "source"}); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{
			e.ID, e.Date, e.StartTime, e.EndTime,
			strconv.Itoa(compliance.EffectiveMinutes(e)),
			EntryFlags(e), strings.Join(e.NoteTags, ";"), e.Note, e.Source,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WeekCSV writes one row per day of the week followed by a total row.
func WeekCSV(w io.Writer, s compliance.WeekSummary) error {
	cw := csv.NewWriter(w)
	header := []string{"date", "hours_worked", "habillage_hours", "total_hours", "trajet_hours", "prime_repas", "ik_a_verifier", "alerts"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, d := range s.Days {
		codes := make([]string, 0, len(d.Alerts))
		for _, a := range d.Alerts {
			codes = append(codes, a.Rule.Code())
		}
		row := []string{
			timecalc.DateKey(d.Date), hours(d.HoursWorked), hours(d.HabillageHours),
			hours(d.TotalHours), hours(d.TrajetHeures),
			strconv.FormatBool(d.PrimeRepas), strconv.FormatBool(d.IKAlert),
			strings.Join(codes, ";"),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	total := []string{"total", "", "", hours(s.TotalHours), "", "", "", fmt.Sprintf("status=%s", s.OverallStatus)}
	if err := cw.Write(total); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
