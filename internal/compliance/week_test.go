package compliance_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/astreinte-tracker/internal/compliance"
	"github.com/Tiliavir/astreinte-tracker/internal/model"
	"github.com/Tiliavir/astreinte-tracker/internal/settings"
)

func fullDays(from, to int) []model.ShiftEntry {
	var entries []model.ShiftEntry
	for i := from; i <= to; i++ {
		entries = append(entries, shift(i, "08:00", "16:45", suppression))
	}
	return entries
}

func TestWeekEmpty(t *testing.T) {
	w := compliance.ComputeWeekSummary(nil, weekStart, settings.Defaults())

	assert.Zero(t, w.TotalHours)
	assert.Equal(t, compliance.Vert, w.OverallStatus)
	assert.True(t, w.ReposHebdoOk)
	assert.True(t, w.ReposQuotidienOk)
	assert.Empty(t, w.Alerts)
	assert.Equal(t, 53.0, w.PlafondAutorise)
	assert.Equal(t, 53.0, w.HeuresRestantes)
	assert.Equal(t, 10080, w.MaxReposMinutes)
	assert.Zero(t, w.DaysWorkedCount)
	assert.Equal(t, weekStart, w.WeekStart)
	assert.Equal(t, day(6), w.WeekEnd)
	assert.Empty(t, w.OvertimeDetails)
}

func TestWeekStartNormalizedToSunday(t *testing.T) {
	w := compliance.ComputeWeekSummary(nil, day(3), settings.Defaults())
	assert.Equal(t, weekStart, w.WeekStart)
}

func TestWeekCapEscalationRouge(t *testing.T) {
	entries := append(fullDays(0, 4), shift(5, "08:00", "12:00"))
	w := compliance.ComputeWeekSummary(entries, weekStart, settings.Defaults())

	assert.Equal(t, 6, w.DaysWorkedCount)
	assert.Equal(t, 54.0, w.PlafondAutorise)
	assert.Equal(t, 50.0, w.TotalHours)
	assert.Equal(t, 4.0, w.HeuresRestantes)
	require.Equal(t, []compliance.Rule{compliance.RuleWeeklyThreshold}, rules(w.Alerts))
	assert.Equal(t, compliance.Rouge, w.Alerts[0].Level)
	assert.Nil(t, w.Alerts[0].Date)
	assert.Equal(t, compliance.Rouge, w.OverallStatus)
}

func TestWeekCapEscalationOrange(t *testing.T) {
	entries := append(fullDays(0, 3), shift(4, "08:00", "12:00"))
	w := compliance.ComputeWeekSummary(entries, weekStart, settings.Defaults())

	assert.Equal(t, 5, w.DaysWorkedCount)
	assert.Equal(t, 53.0, w.PlafondAutorise)
	assert.Equal(t, 41.0, w.TotalHours)
	assert.Equal(t, 12.0, w.HeuresRestantes)
	require.Equal(t, []compliance.Rule{compliance.RuleWeeklyThreshold}, rules(w.Alerts))
	assert.Equal(t, compliance.Orange, w.Alerts[0].Level)
	assert.Equal(t, compliance.Orange, w.OverallStatus)
}

func TestWeekCapThresholdsDisabled(t *testing.T) {
	s := settings.Defaults()
	s.AlertesActives = false
	entries := append(fullDays(0, 4), shift(5, "08:00", "12:00"))
	w := compliance.ComputeWeekSummary(entries, weekStart, s)

	assert.Empty(t, w.Alerts)
	assert.Equal(t, compliance.Vert, w.OverallStatus)
}

func TestWeekCapExceeded(t *testing.T) {
	var entries []model.ShiftEntry
	for i := 0; i <= 5; i++ {
		entries = append(entries, shift(i, "08:00", "18:00"))
	}
	w := compliance.ComputeWeekSummary(entries, weekStart, settings.Defaults())

	assert.Equal(t, 66.0, w.TotalHours)
	assert.Zero(t, w.HeuresRestantes)
	assert.True(t, w.HasRule(compliance.RuleWeeklyCap))
	assert.False(t, w.HasRule(compliance.RuleWeeklyThreshold))
	assert.False(t, w.HasRule(compliance.RuleDailyCap))
	assert.Equal(t, compliance.Rouge, w.OverallStatus)
}

func TestWeekDailyCapPropagates(t *testing.T) {
	w := compliance.ComputeWeekSummary([]model.ShiftEntry{shift(2, "06:00", "18:00")}, weekStart, settings.Defaults())

	require.Equal(t, []compliance.Rule{compliance.RuleDailyCap}, rules(w.Alerts))
	assert.Len(t, w.Days[2].Alerts, 1)
	assert.Equal(t, compliance.Rouge, w.OverallStatus)
}

func TestWeekDailyRest(t *testing.T) {
	t.Run("fifteen hours is enough", func(t *testing.T) {
		w := compliance.ComputeWeekSummary([]model.ShiftEntry{
			shift(1, "08:00", "16:45"),
			shift(2, "08:00", "16:45"),
		}, weekStart, settings.Defaults())
		assert.False(t, w.HasRule(compliance.RuleDailyRest))
		assert.True(t, w.ReposQuotidienOk)
	})

	t.Run("eight and a quarter hours", func(t *testing.T) {
		w := compliance.ComputeWeekSummary([]model.ShiftEntry{
			shift(1, "08:00", "16:45"),
			shift(2, "01:00", "05:00"),
		}, weekStart, settings.Defaults())

		require.True(t, w.HasRule(compliance.RuleDailyRest))
		assert.False(t, w.ReposQuotidienOk)
		var a compliance.Alert
		for _, al := range w.Alerts {
			if al.Rule == compliance.RuleDailyRest {
				a = al
			}
		}
		assert.Equal(t, compliance.Orange, a.Level)
		assert.Equal(t, dayKey(1), a.DateKey())
		assert.Contains(t, a.Message, "8.25h")
		require.Len(t, w.Days[1].Alerts, 1)
		assert.Equal(t, compliance.RuleDailyRest, w.Days[1].Alerts[0].Rule)
		assert.Empty(t, w.Days[2].Alerts)
	})

	t.Run("overnight shift counts its extended end", func(t *testing.T) {
		w := compliance.ComputeWeekSummary([]model.ShiftEntry{
			shift(1, "21:00", "05:00"),
			shift(2, "14:00", "18:00"),
		}, weekStart, settings.Defaults())
		// (1440 - 1740) + 840 = 540 minutes.
		assert.True(t, w.HasRule(compliance.RuleDailyRest))
	})

	t.Run("pair skipped when a day is empty", func(t *testing.T) {
		w := compliance.ComputeWeekSummary([]model.ShiftEntry{
			shift(1, "16:00", "23:00"),
			shift(3, "01:00", "05:00"),
		}, weekStart, settings.Defaults())
		assert.False(t, w.HasRule(compliance.RuleDailyRest))
	})
}

func TestWeekWeeklyRest(t *testing.T) {
	t.Run("rest day after friday is enough", func(t *testing.T) {
		entries := append(fullDays(0, 4), shift(5, "08:00", "12:00"))
		w := compliance.ComputeWeekSummary(entries, weekStart, settings.Defaults())
		assert.False(t, w.HasRule(compliance.RuleWeeklyRest))
		assert.Equal(t, 2160, w.MaxReposMinutes)
	})

	t.Run("rest day shortened by overnight shift", func(t *testing.T) {
		entries := append(fullDays(0, 4), shift(5, "21:00", "05:00"))
		w := compliance.ComputeWeekSummary(entries, weekStart, settings.Defaults())
		assert.True(t, w.HasRule(compliance.RuleWeeklyRest))
		assert.False(t, w.HasRule(compliance.RuleRestDay))
		assert.False(t, w.ReposHebdoOk)
		assert.Equal(t, compliance.Rouge, w.OverallStatus)
	})

	t.Run("timeline gap spanning two days", func(t *testing.T) {
		entries := []model.ShiftEntry{shift(0, "00:00", "01:00"), shift(1, "23:00", "23:30")}
		for i := 2; i <= 6; i++ {
			entries = append(entries, shift(i, "08:00", "09:00"))
		}
		w := compliance.ComputeWeekSummary(entries, weekStart, settings.Defaults())

		assert.False(t, w.HasRule(compliance.RuleWeeklyRest))
		assert.True(t, w.HasRule(compliance.RuleRestDay))
		assert.False(t, w.ReposHebdoOk)
	})

	t.Run("overlapping slots", func(t *testing.T) {
		entries := []model.ShiftEntry{
			shift(3, "08:00", "20:00"),
			shift(3, "09:00", "10:00"),
		}
		w := compliance.ComputeWeekSummary(entries, weekStart, settings.Defaults())
		// The inner slot must not pull the reach back to 10:00, which
		// would make the trailing gap 5160.
		assert.Equal(t, 4800, w.MaxReposMinutes)
	})
}

func TestWeekRestDayOnlyCountsQualifyingEntries(t *testing.T) {
	entries := fullDays(0, 5)
	entries = append(entries, shift(6, "08:00", "16:45", sansIntervention))
	w := compliance.ComputeWeekSummary(entries, weekStart, settings.Defaults())
	assert.False(t, w.HasRule(compliance.RuleRestDay))
}

func TestWeekRestBank(t *testing.T) {
	low := 5.0
	high := 20.0

	tests := []struct {
		name    string
		solde   *float64
		enabled bool
		want    bool
	}{
		{"not tracked", nil, true, false},
		{"below threshold", &low, true, true},
		{"above threshold", &high, true, false},
		{"alerts disabled", &low, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := settings.Defaults()
			s.SoldeRE = tt.solde
			s.AlertesActives = tt.enabled
			w := compliance.ComputeWeekSummary(nil, weekStart, s)
			assert.Equal(t, tt.want, w.HasRule(compliance.RuleRestBank))
			if tt.want {
				assert.Equal(t, compliance.Rouge, w.OverallStatus)
			}
		})
	}

	t.Run("at threshold", func(t *testing.T) {
		s := settings.Defaults()
		at := settings.DefaultSeuilRECritique
		s.SoldeRE = &at
		w := compliance.ComputeWeekSummary(nil, weekStart, s)
		assert.True(t, w.HasRule(compliance.RuleRestBank))
	})
}

func TestWeekExclusionInvariant(t *testing.T) {
	base := append(fullDays(0, 4), shift(5, "08:00", "12:00"))
	reference := compliance.ComputeWeekSummary(base, weekStart, settings.Defaults())

	spans := [][2]string{{"00:00", "23:59"}, {"21:00", "05:00"}, {"12:00", "12:00"}, {"03:00", "04:00"}}
	for _, sp := range spans {
		for d := 0; d < 7; d++ {
			entries := append(append([]model.ShiftEntry{}, base...), shift(d, sp[0], sp[1], sansIntervention))
			w := compliance.ComputeWeekSummary(entries, weekStart, settings.Defaults())

			for i := range w.Days {
				assert.Equal(t, reference.Days[i].HoursWorked, w.Days[i].HoursWorked)
				assert.Equal(t, reference.Days[i].HabillageHours, w.Days[i].HabillageHours)
			}
			assert.Equal(t, reference.HasRule(compliance.RuleDailyRest), w.HasRule(compliance.RuleDailyRest))
			assert.Equal(t, reference.HasRule(compliance.RuleWeeklyRest), w.HasRule(compliance.RuleWeeklyRest))
			assert.Equal(t, reference.HasRule(compliance.RuleRestDay), w.HasRule(compliance.RuleRestDay))
			assert.Equal(t, reference.MaxReposMinutes, w.MaxReposMinutes)
		}
	}
}

func TestWeekIdempotent(t *testing.T) {
	entries := append(fullDays(0, 4), shift(5, "21:00", "05:00"), shift(2, "01:00", "02:00"))
	s := settings.Defaults()
	first := compliance.ComputeWeekSummary(entries, weekStart, s)
	second := compliance.ComputeWeekSummary(entries, weekStart, s)
	assert.Equal(t, first, second)
}

func TestWeekDoesNotMutateInputs(t *testing.T) {
	entries := []model.ShiftEntry{shift(1, "08:00", "16:45"), shift(2, "01:00", "05:00")}
	snapshot := append([]model.ShiftEntry{}, entries...)
	compliance.ComputeWeekSummary(entries, weekStart, settings.Defaults())
	assert.Equal(t, snapshot, entries)
}

func TestWeekConcurrentCalls(t *testing.T) {
	entries := append(fullDays(0, 5), shift(6, "01:00", "03:00"))
	e := compliance.New(settings.Defaults())
	want := e.Week(entries, weekStart)

	var wg sync.WaitGroup
	results := make([]compliance.WeekSummary, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.Week(entries, weekStart)
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestWeekSeverityMonotonic(t *testing.T) {
	weeks := [][]model.ShiftEntry{
		nil,
		fullDays(0, 3),
		append(fullDays(0, 3), shift(4, "08:00", "12:00")),
		append(fullDays(0, 4), shift(5, "08:00", "12:00")),
		append(fullDays(0, 5), shift(6, "08:00", "09:00")),
		{shift(1, "08:00", "16:45"), shift(2, "01:00", "05:00")},
		{shift(1, "06:00", "18:00"), shift(2, "01:00", "05:00")},
	}
	for _, entries := range weeks {
		w := compliance.ComputeWeekSummary(entries, weekStart, settings.Defaults())
		hasRouge, hasOrange := false, false
		for _, a := range w.Alerts {
			hasRouge = hasRouge || a.Level == compliance.Rouge
			hasOrange = hasOrange || a.Level == compliance.Orange
		}
		switch {
		case hasRouge:
			assert.Equal(t, compliance.Rouge, w.OverallStatus)
		case hasOrange:
			assert.Equal(t, compliance.Orange, w.OverallStatus)
		default:
			assert.Equal(t, compliance.Vert, w.OverallStatus)
		}
	}
}

type flatOvertime struct{ seen float64 }

func (f *flatOvertime) Details(w compliance.WeekSummary) []compliance.OvertimeLine {
	f.seen = w.TotalHours
	return []compliance.OvertimeLine{{Label: "all", Hours: w.TotalHours, Multiplier: 1}}
}

func TestWeekOvertimeStep(t *testing.T) {
	step := &flatOvertime{}
	e := compliance.Engine{Settings: settings.Defaults(), Overtime: step}
	w := e.Week(fullDays(0, 1), weekStart)

	assert.Equal(t, 18.0, step.seen)
	require.Len(t, w.OvertimeDetails, 1)
	assert.Equal(t, 18.0, w.OvertimeDetails[0].Hours)
}
