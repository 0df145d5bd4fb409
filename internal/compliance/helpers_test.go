package compliance_test

import (
	"time"

	"github.com/Tiliavir/astreinte-tracker/internal/compliance"
	"github.com/Tiliavir/astreinte-tracker/internal/model"
)

// Week of 2026-02-22 (Sunday) to 2026-02-28 (Saturday).
var weekStart = time.Date(2026, 2, 22, 0, 0, 0, 0, time.UTC)

func day(i int) time.Time { return weekStart.AddDate(0, 0, i) }

func dayKey(i int) string { return day(i).Format("2006-01-02") }

type option func(*model.ShiftEntry)

func suppression(e *model.ShiftEntry) { e.SuppressionMidi = true }

func sansIntervention(e *model.ShiftEntry) { e.IsAstreinteSansIntervention = true }

func intervention(e *model.ShiftEntry) { e.IsInterventionAstreinte = true }

func fpc(hours int) option {
	return func(e *model.ShiftEntry) {
		e.IsFPC = true
		e.FPCHeures = hours
	}
}

func withID(id string) option {
	return func(e *model.ShiftEntry) { e.ID = id }
}

// shift builds a prepared entry logged on week day i.
func shift(i int, start, end string, opts ...option) model.ShiftEntry {
	e := model.ShiftEntry{Date: dayKey(i), StartTime: start, EndTime: end}
	for _, o := range opts {
		o(&e)
	}
	p, err := compliance.Prepare(e)
	if err != nil {
		panic(err)
	}
	return p
}

func rules(alerts []compliance.Alert) []compliance.Rule {
	out := []compliance.Rule{}
	for _, a := range alerts {
		out = append(out, a.Rule)
	}
	return out
}
