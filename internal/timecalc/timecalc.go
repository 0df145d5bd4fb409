package timecalc

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	MinutesPerDay  = 24 * 60
	MinutesPerWeek = 7 * MinutesPerDay

	// MiddayStart and MiddayEnd bound the meal window [12:00, 12:45).
	MiddayStart = 12 * 60
	MiddayEnd   = 12*60 + 45

	// DateLayout is the calendar-day format used by entries and day files.
	DateLayout = "2006-01-02"
)

var (
	ErrInvalidTimeFormat = errors.New("invalid time format")
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// ParseClock converts an "HH:MM" wall-clock string into minutes since 00:00.
func ParseClock(s string) (int, error) {
	s = strings.TrimSpace(s)
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q (want HH:MM)", ErrInvalidTimeFormat, s)
	}
	h, ok1 := twoDigits(s[0:2])
	m, ok2 := twoDigits(s[3:5])
	if !ok1 || !ok2 || h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: %q (want HH:MM)", ErrInvalidTimeFormat, s)
	}
	return h*60 + m, nil
}

// MustClock is ParseClock for values already validated at construction
// time. It panics on malformed input.
func MustClock(s string) int {
	m, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return m
}

func twoDigits(s string) (int, bool) {
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

// FormatClock renders minutes since midnight as "HH:MM", wrapping past 24h.
func FormatClock(minutes int) string {
	minutes = ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// EffectiveSpan returns the shift bounds in minutes, pushing the end past
// midnight when it is not after the start.
func EffectiveSpan(start, end int) (int, int) {
	if end <= start {
		return start, end + MinutesPerDay
	}
	return start, end
}

// CoversMidday reports whether the effective span fully contains the
// meal window.
func CoversMidday(start, end int) bool {
	s, e := EffectiveSpan(start, end)
	return s <= MiddayStart && e >= MiddayEnd
}

// ParseDate parses a YYYY-MM-DD calendar day in UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidDateFormat, s)
	}
	return d, nil
}

// DateKey formats the calendar day of t.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatMinutes formats a duration in minutes like "8h 15m" or "45m".
func FormatMinutes(minutes int) string {
	neg := ""
	if minutes < 0 {
		neg = "-"
		minutes = -minutes
	}
	h := minutes / 60
	m := minutes % 60
	if h > 0 {
		return fmt.Sprintf("%s%dh %02dm", neg, h, m)
	}
	return fmt.Sprintf("%s%dm", neg, m)
}

// FormatHours formats decimal hours with two decimals, e.g. "8.25h".
func FormatHours(h float64) string {
	return fmt.Sprintf("%.2fh", h)
}

// WeekRange returns the Sunday and Saturday of the week containing t.
// The Saturday bound is 23:59:59.
func WeekRange(t time.Time) (time.Time, time.Time) {
	sunday := WeekStart(t)
	saturday := sunday.AddDate(0, 0, 6)
	return sunday, EndOfDay(saturday)
}

// WeekStart returns 00:00 of the Sunday on or before t.
func WeekStart(t time.Time) time.Time {
	d := StartOfDay(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// WeekDays returns the seven calendar days starting at start.
func WeekDays(start time.Time) [7]time.Time {
	var days [7]time.Time
	s := StartOfDay(start)
	for i := range days {
		days[i] = s.AddDate(0, 0, i)
	}
	return days
}

// WeekLabel returns the ISO label of the Monday following the given
// Sunday, e.g. "2026-W09".
func WeekLabel(weekStart time.Time) string {
	year, week := weekStart.AddDate(0, 0, 1).ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59 of the same day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
