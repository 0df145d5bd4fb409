package timecalc_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Tiliavir/astreinte-tracker/internal/timecalc"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"08:00", 480, false},
		{"16:45", 1005, false},
		{"23:59", 1439, false},
		{" 12:30 ", 750, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"8:00", 0, true},
		{"0800", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := timecalc.ParseClock(tt.input)
		if tt.wantErr {
			if !errors.Is(err, timecalc.ErrInvalidTimeFormat) {
				t.Errorf("ParseClock(%q) err = %v, want ErrInvalidTimeFormat", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestMustClockPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustClock on malformed input did not panic")
		}
	}()
	timecalc.MustClock("25:00")
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "00:00"},
		{480, "08:00"},
		{1005, "16:45"},
		{1740, "05:00"},
	}
	for _, tt := range tests {
		if got := timecalc.FormatClock(tt.minutes); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestEffectiveSpan(t *testing.T) {
	tests := []struct {
		start, end         int
		wantStart, wantEnd int
	}{
		{480, 1005, 480, 1005},
		{1260, 300, 1260, 1740},
		{600, 600, 600, 2040},
		{0, 0, 0, 1440},
	}
	for _, tt := range tests {
		s, e := timecalc.EffectiveSpan(tt.start, tt.end)
		if s != tt.wantStart || e != tt.wantEnd {
			t.Errorf("EffectiveSpan(%d, %d) = (%d, %d), want (%d, %d)",
				tt.start, tt.end, s, e, tt.wantStart, tt.wantEnd)
		}
	}
}

func TestCoversMidday(t *testing.T) {
	tests := []struct {
		start, end string
		want       bool
	}{
		{"08:00", "16:45", true},
		{"12:00", "12:45", true},
		{"12:01", "16:00", false},
		{"08:00", "12:44", false},
		{"21:00", "05:00", false},
		{"11:00", "11:00", true},
		{"13:00", "12:50", false},
	}
	for _, tt := range tests {
		got := timecalc.CoversMidday(timecalc.MustClock(tt.start), timecalc.MustClock(tt.end))
		if got != tt.want {
			t.Errorf("CoversMidday(%s, %s) = %v, want %v", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := timecalc.ParseDate("2026-02-27")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if !d.Equal(time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseDate = %v", d)
	}
	if _, err := timecalc.ParseDate("27/02/2026"); !errors.Is(err, timecalc.ErrInvalidDateFormat) {
		t.Errorf("ParseDate bad input err = %v, want ErrInvalidDateFormat", err)
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h 00m"},
		{495, "8h 15m"},
		{-30, "-30m"},
	}
	for _, tt := range tests {
		if got := timecalc.FormatMinutes(tt.minutes); got != tt.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestWeekRange(t *testing.T) {
	// 2026-02-27 is a Friday.
	fri := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	sunday, saturday := timecalc.WeekRange(fri)

	wantSunday := time.Date(2026, 2, 22, 0, 0, 0, 0, time.UTC)
	wantSaturday := time.Date(2026, 2, 28, 23, 59, 59, 0, time.UTC)

	if !sunday.Equal(wantSunday) {
		t.Errorf("WeekRange sunday = %v, want %v", sunday, wantSunday)
	}
	if !saturday.Equal(wantSaturday) {
		t.Errorf("WeekRange saturday = %v, want %v", saturday, wantSaturday)
	}
}

func TestWeekStartOnSunday(t *testing.T) {
	sun := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	got := timecalc.WeekStart(sun)
	want := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("WeekStart(sunday) = %v, want %v", got, want)
	}
}

func TestWeekDays(t *testing.T) {
	start := time.Date(2026, 2, 22, 0, 0, 0, 0, time.UTC)
	days := timecalc.WeekDays(start)
	if days[0].Weekday() != time.Sunday || days[6].Weekday() != time.Saturday {
		t.Errorf("WeekDays = %v .. %v", days[0].Weekday(), days[6].Weekday())
	}
	if timecalc.DateKey(days[6]) != "2026-02-28" {
		t.Errorf("last day = %s", timecalc.DateKey(days[6]))
	}
}

func TestWeekLabel(t *testing.T) {
	sun := time.Date(2026, 2, 22, 0, 0, 0, 0, time.UTC)
	if got := timecalc.WeekLabel(sun); got != "2026-W09" {
		t.Errorf("WeekLabel = %q, want %q", got, "2026-W09")
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	b := time.Date(2026, 2, 27, 23, 59, 59, 0, time.UTC)
	c := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	if !timecalc.SameDay(a, b) {
		t.Error("SameDay: expected same day for a and b")
	}
	if timecalc.SameDay(a, c) {
		t.Error("SameDay: expected different day for a and c")
	}
}
