// Package compliance turns shift entries into day and week summaries and
// raises labor-time alerts. Every function here is pure: inputs are only
// read, outputs are freshly allocated, so an Engine value may be shared
// between goroutines as long as nobody mutates its Settings.
package compliance

import (
	"time"

	"github.com/Tiliavir/astreinte-tracker/internal/model"
	"github.com/Tiliavir/astreinte-tracker/internal/settings"
)

// TravelLookup values the travel time of an intervention started at
// startMinutes on date from the given commune.
type TravelLookup interface {
	TravelHours(commune string, date time.Time, startMinutes int) (float64, error)
}

// OvertimeLine is one band of overtime produced by an OvertimeStep.
type OvertimeLine struct {
	Label      string  `json:"label"`
	Hours      float64 `json:"hours"`
	Multiplier float64 `json:"multiplier"`
}

// OvertimeStep derives overtime banding from a finished week summary.
// It runs after every rule and cannot change them.
type OvertimeStep interface {
	Details(w WeekSummary) []OvertimeLine
}

// Engine bundles the explicit inputs shared by every computation.
// Travel and Overtime are optional.
type Engine struct {
	Settings settings.Settings
	Travel   TravelLookup
	Overtime OvertimeStep
}

// New returns an Engine with no travel lookup and no overtime step.
func New(s settings.Settings) Engine {
	return Engine{Settings: s}
}

// Annotate returns copies of entries with their auto comments recomputed.
func (e Engine) Annotate(entries []model.ShiftEntry) []model.ShiftEntry {
	out := make([]model.ShiftEntry, len(entries))
	for i, en := range entries {
		out[i] = Annotate(en, e.Settings)
	}
	return out
}

// ComputeDaySummary folds the entries logged on date with default settings
// and no travel valorisation.
func ComputeDaySummary(entries []model.ShiftEntry, date time.Time) DaySummary {
	return New(settings.Defaults()).Day(entries, date)
}

// ComputeWeekSummary folds the week starting at weekStart.
func ComputeWeekSummary(entries []model.ShiftEntry, weekStart time.Time, s settings.Settings) WeekSummary {
	return New(s).Week(entries, weekStart)
}
