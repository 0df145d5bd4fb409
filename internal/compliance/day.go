package compliance

import (
	"fmt"
	"time"

	"github.com/Tiliavir/astreinte-tracker/internal/model"
	"github.com/Tiliavir/astreinte-tracker/internal/timecalc"
)

const (
	// HabillageMinutes is credited once per day with worked time.
	HabillageMinutes = 60

	maxDailyMinutes = 10 * 60
)

// DaySummary is the derived view of one calendar day.
type DaySummary struct {
	Date           time.Time `json:"date"`
	MinutesWorked  int       `json:"minutesWorked"`
	HoursWorked    float64   `json:"hoursWorked"`
	HabillageHours float64   `json:"habillageHours"`
	TotalHours     float64   `json:"totalHours"`
	TrajetHeures   float64   `json:"trajetHeures"`
	Alerts         []Alert   `json:"alerts"`
	PrimeRepas     bool      `json:"primeRepas"`
	IKAlert        bool      `json:"ikAlert"`
	EntryCount     int       `json:"entryCount"`
}

// Worked reports whether the day has any effective time.
func (d DaySummary) Worked() bool {
	return d.MinutesWorked > 0
}

func entriesOn(entries []model.ShiftEntry, key string) []model.ShiftEntry {
	var out []model.ShiftEntry
	for _, e := range entries {
		if e.Date == key {
			out = append(out, e)
		}
	}
	return out
}

// Day folds every entry logged on date into a DaySummary.
func (e Engine) Day(entries []model.ShiftEntry, date time.Time) DaySummary {
	date = timecalc.StartOfDay(date)
	today := entriesOn(entries, timecalc.DateKey(date))

	d := DaySummary{Date: date, Alerts: []Alert{}, EntryCount: len(today)}
	for _, en := range today {
		d.MinutesWorked += EffectiveMinutes(en)
		if triggersPrimeRepas(en) {
			d.PrimeRepas = true
		}
		if triggersIK(en) {
			d.IKAlert = true
		}
		d.TrajetHeures += e.travelHours(en, date)
	}

	d.HoursWorked = float64(d.MinutesWorked) / 60
	if d.MinutesWorked > 0 {
		d.HabillageHours = float64(HabillageMinutes) / 60
	}
	d.TotalHours = d.HoursWorked + d.HabillageHours

	if d.MinutesWorked > maxDailyMinutes {
		over := d.MinutesWorked - maxDailyMinutes
		d.Alerts = append(d.Alerts, newDatedAlert(RuleDailyCap, Rouge, date,
			fmt.Sprintf("Durée journalière dépassée : %s travaillées le %s, soit %s au-delà de 10h",
				timecalc.FormatHours(d.HoursWorked), timecalc.DateKey(date), timecalc.FormatMinutes(over))))
	}
	return d
}

// travelHours values an intervention's travel; failures contribute
// nothing so the day stays computable.
func (e Engine) travelHours(en model.ShiftEntry, date time.Time) float64 {
	if e.Travel == nil || e.Settings.Commune == "" {
		return 0
	}
	if !en.Counts() || !en.IsInterventionAstreinte {
		return 0
	}
	start, _ := clock(en)
	h, err := e.Travel.TravelHours(e.Settings.Commune, date, start)
	if err != nil {
		return 0
	}
	return h
}
