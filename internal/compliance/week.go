package compliance

import (
	"fmt"
	"slices"
	"time"

	"github.com/Tiliavir/astreinte-tracker/internal/model"
	"github.com/Tiliavir/astreinte-tracker/internal/timecalc"
)

const (
	plafondBase    = 53.0
	plafondSixDays = 54.0
	minDailyRest   = 11 * 60
	minWeeklyRest  = 35 * 60
	sixDaysWorked  = 6
	daysPerWeek    = 7
)

// WeekSummary is the derived compliance view of one Sunday-to-Saturday
// week.
type WeekSummary struct {
	WeekStart        time.Time               `json:"weekStart"`
	WeekEnd          time.Time               `json:"weekEnd"`
	TotalHours       float64                 `json:"totalHours"`
	PlafondAutorise  float64                 `json:"plafondAutorise"`
	HeuresRestantes  float64                 `json:"heuresRestantes"`
	ReposQuotidienOk bool                    `json:"reposQuotidienOk"`
	ReposHebdoOk     bool                    `json:"reposHebdoOk"`
	MaxReposMinutes  int                     `json:"maxReposMinutes"`
	OverallStatus    Level                   `json:"overallStatus"`
	Days             [daysPerWeek]DaySummary `json:"days"`
	Alerts           []Alert                 `json:"alerts"`
	DaysWorkedCount  int                     `json:"daysWorkedCount"`
	OvertimeDetails  []OvertimeLine          `json:"overtimeDetails"`
}

// HasRule reports whether an alert for rule was raised.
func (w WeekSummary) HasRule(rule Rule) bool {
	for _, a := range w.Alerts {
		if a.Rule == rule {
			return true
		}
	}
	return false
}

type slot struct{ start, end int }

// Week folds the seven days starting at the Sunday on or before
// weekStart and evaluates every weekly rule.
func (e Engine) Week(entries []model.ShiftEntry, weekStart time.Time) WeekSummary {
	start := timecalc.WeekStart(weekStart)
	dates := timecalc.WeekDays(start)

	w := WeekSummary{
		WeekStart:       start,
		WeekEnd:         dates[daysPerWeek-1],
		Alerts:          []Alert{},
		OvertimeDetails: []OvertimeLine{},
	}

	totalMinutes := 0
	var qualifying [daysPerWeek][]model.ShiftEntry
	for i, d := range dates {
		w.Days[i] = e.Day(entries, d)
		w.Alerts = append(w.Alerts, w.Days[i].Alerts...)
		if w.Days[i].Worked() {
			w.DaysWorkedCount++
			totalMinutes += w.Days[i].MinutesWorked + HabillageMinutes
		}
		for _, en := range entriesOn(entries, timecalc.DateKey(d)) {
			if en.Counts() {
				qualifying[i] = append(qualifying[i], en)
			}
		}
	}

	w.TotalHours = float64(totalMinutes) / 60
	w.PlafondAutorise = plafondBase
	if w.DaysWorkedCount >= sixDaysWorked {
		w.PlafondAutorise = plafondSixDays
	}
	w.HeuresRestantes = max(0, w.PlafondAutorise-w.TotalHours)

	w.Alerts = append(w.Alerts, e.weeklyCap(w)...)

	daily := dailyRest(dates, qualifying)
	w.Alerts = append(w.Alerts, daily...)
	for _, a := range daily {
		for i := range w.Days {
			if a.DateKey() == timecalc.DateKey(w.Days[i].Date) {
				w.Days[i].Alerts = append(w.Days[i].Alerts, a)
			}
		}
	}
	w.ReposQuotidienOk = len(daily) == 0

	var weekly []Alert
	w.MaxReposMinutes = longestRest(qualifying)
	if w.MaxReposMinutes < minWeeklyRest {
		weekly = append(weekly, newAlert(RuleWeeklyRest, Rouge,
			fmt.Sprintf("Repos hebdomadaire insuffisant : plus long repos de %s (minimum 35h)",
				timecalc.FormatMinutes(w.MaxReposMinutes))))
	}
	if a, ok := restDay(qualifying); ok {
		weekly = append(weekly, a)
	}
	w.Alerts = append(w.Alerts, weekly...)
	w.ReposHebdoOk = len(weekly) == 0

	if e.Settings.AlertesActives && e.Settings.SoldeRE != nil && *e.Settings.SoldeRE <= e.Settings.SeuilRECritique {
		w.Alerts = append(w.Alerts, newAlert(RuleRestBank, Rouge,
			fmt.Sprintf("Solde RE critique : %s (seuil %s)",
				timecalc.FormatHours(*e.Settings.SoldeRE), timecalc.FormatHours(e.Settings.SeuilRECritique))))
	}

	w.OverallStatus = OverallStatus(w.Alerts)

	if e.Overtime != nil {
		if lines := e.Overtime.Details(w); lines != nil {
			w.OvertimeDetails = lines
		}
	}
	return w
}

// weeklyCap evaluates the ceiling and, when enabled, the remaining-hours
// thresholds.
func (e Engine) weeklyCap(w WeekSummary) []Alert {
	var alerts []Alert
	if w.TotalHours > w.PlafondAutorise {
		alerts = append(alerts, newAlert(RuleWeeklyCap, Rouge,
			fmt.Sprintf("Plafond hebdomadaire dépassé : %s pour un plafond de %s",
				timecalc.FormatHours(w.TotalHours), timecalc.FormatHours(w.PlafondAutorise))))
	}
	if !e.Settings.AlertesActives {
		return alerts
	}
	rest := w.HeuresRestantes
	switch {
	case rest > 0 && rest <= e.Settings.SeuilRouge:
		alerts = append(alerts, newAlert(RuleWeeklyThreshold, Rouge,
			fmt.Sprintf("Plus que %s avant le plafond de %s",
				timecalc.FormatHours(rest), timecalc.FormatHours(w.PlafondAutorise))))
	case rest > e.Settings.SeuilRouge && rest <= e.Settings.SeuilOrange:
		alerts = append(alerts, newAlert(RuleWeeklyThreshold, Orange,
			fmt.Sprintf("Plus que %s avant le plafond de %s",
				timecalc.FormatHours(rest), timecalc.FormatHours(w.PlafondAutorise))))
	}
	return alerts
}

// dailyRest checks the rest between each pair of consecutive days that
// both have qualifying entries.
func dailyRest(dates [daysPerWeek]time.Time, qualifying [daysPerWeek][]model.ShiftEntry) []Alert {
	var alerts []Alert
	for i := 0; i < daysPerWeek-1; i++ {
		if len(qualifying[i]) == 0 || len(qualifying[i+1]) == 0 {
			continue
		}
		latestEnd := 0
		for _, en := range qualifying[i] {
			_, end := span(en)
			latestEnd = max(latestEnd, end)
		}
		earliestStart := timecalc.MinutesPerDay
		for _, en := range qualifying[i+1] {
			start, _ := clock(en)
			earliestStart = min(earliestStart, start)
		}
		rest := (timecalc.MinutesPerDay - latestEnd) + earliestStart
		if rest < minDailyRest {
			alerts = append(alerts, newDatedAlert(RuleDailyRest, Orange, dates[i],
				fmt.Sprintf("Repos quotidien insuffisant : %s entre le %s et le %s (minimum 11h)",
					timecalc.FormatHours(float64(rest)/60), timecalc.DateKey(dates[i]), timecalc.DateKey(dates[i+1]))))
		}
	}
	return alerts
}

// longestRest returns the longest stretch without qualifying work on
// the week timeline, including the edges. An empty week is one full
// rest.
func longestRest(qualifying [daysPerWeek][]model.ShiftEntry) int {
	var slots []slot
	for i, day := range qualifying {
		offset := i * timecalc.MinutesPerDay
		for _, en := range day {
			start, end := span(en)
			slots = append(slots, slot{offset + start, offset + end})
		}
	}
	if len(slots) == 0 {
		return timecalc.MinutesPerWeek
	}
	slices.SortFunc(slots, func(a, b slot) int {
		if a.start != b.start {
			return a.start - b.start
		}
		return a.end - b.end
	})

	longest := slots[0].start
	reach := slots[0].end
	for _, s := range slots[1:] {
		longest = max(longest, s.start-reach)
		reach = max(reach, s.end)
	}
	return max(longest, timecalc.MinutesPerWeek-reach)
}

// restDay is the civil rest-day check: any calendar day without
// qualifying entries satisfies it, wherever it falls in the week.
func restDay(qualifying [daysPerWeek][]model.ShiftEntry) (Alert, bool) {
	worked := false
	for _, day := range qualifying {
		if len(day) == 0 {
			return Alert{}, false
		}
		worked = true
	}
	if !worked {
		return Alert{}, false
	}
	return newAlert(RuleRestDay, Rouge, "Aucun jour de repos complet dans la semaine"), true
}
