package compliance

import (
	"fmt"
	"time"

	"github.com/Tiliavir/astreinte-tracker/internal/timecalc"
)

// Level is the severity of an alert or of a whole week.
type Level int

const (
	Vert Level = iota
	Orange
	Rouge
)

func (l Level) String() string {
	switch l {
	case Vert:
		return "vert"
	case Orange:
		return "orange"
	case Rouge:
		return "rouge"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// MarshalText encodes the level as its lowercase name.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText accepts "vert", "orange" or "rouge".
func (l *Level) UnmarshalText(b []byte) error {
	switch string(b) {
	case "vert":
		*l = Vert
	case "orange":
		*l = Orange
	case "rouge":
		*l = Rouge
	default:
		return fmt.Errorf("unknown level %q", b)
	}
	return nil
}

// Rule identifies the labor-time rule an alert was raised for.
type Rule int

const (
	// RuleDailyCap: more than 10 worked hours on one day.
	RuleDailyCap Rule = iota + 1
	// RuleWeeklyCap: weekly total above the allowed ceiling.
	RuleWeeklyCap
	// RuleWeeklyThreshold: remaining weekly hours under the orange/red threshold.
	RuleWeeklyThreshold
	// RuleDailyRest: less than 11h between two consecutive days.
	RuleDailyRest
	// RuleWeeklyRest: no uninterrupted 35h rest in the week.
	RuleWeeklyRest
	// RuleRestDay: no calendar day without work.
	RuleRestDay
	// RuleRestBank: rest-bank balance at or below its critical threshold.
	RuleRestBank
)

var ruleCodes = map[Rule]string{
	RuleDailyCap:        "R_JOUR",
	RuleWeeklyCap:       "R1",
	RuleWeeklyThreshold: "R1_SEUIL",
	RuleDailyRest:       "R2",
	RuleWeeklyRest:      "R3",
	RuleRestDay:         "R3b",
	RuleRestBank:        "RE",
}

// Rules lists every rule in evaluation order.
func Rules() []Rule {
	return []Rule{RuleDailyCap, RuleWeeklyCap, RuleWeeklyThreshold, RuleDailyRest, RuleWeeklyRest, RuleRestDay, RuleRestBank}
}

// Code returns the short rule code, e.g. "R1_SEUIL".
func (r Rule) Code() string {
	if c, ok := ruleCodes[r]; ok {
		return c
	}
	return fmt.Sprintf("Rule(%d)", int(r))
}

func (r Rule) String() string { return r.Code() }

// MarshalText encodes the rule as its code. Unknown rules are an error.
func (r Rule) MarshalText() ([]byte, error) {
	if _, ok := ruleCodes[r]; !ok {
		return nil, fmt.Errorf("unknown rule %d", int(r))
	}
	return []byte(r.Code()), nil
}

// UnmarshalText parses a rule code such as "R3b".
func (r *Rule) UnmarshalText(b []byte) error {
	for rule, code := range ruleCodes {
		if code == string(b) {
			*r = rule
			return nil
		}
	}
	return fmt.Errorf("unknown rule %q", b)
}

// Alert is an immutable compliance finding. Date is set only for
// day-scoped rules.
type Alert struct {
	Rule    Rule       `json:"rule"`
	Level   Level      `json:"level"`
	Message string     `json:"message"`
	Date    *time.Time `json:"date,omitempty"`
}

// DateKey returns the alert's day as YYYY-MM-DD, or "" for week-scoped
// alerts.
func (a Alert) DateKey() string {
	if a.Date == nil {
		return ""
	}
	return timecalc.DateKey(*a.Date)
}

func newAlert(rule Rule, level Level, msg string) Alert {
	return Alert{Rule: rule, Level: level, Message: msg}
}

func newDatedAlert(rule Rule, level Level, day time.Time, msg string) Alert {
	d := day
	return Alert{Rule: rule, Level: level, Message: msg, Date: &d}
}

// OverallStatus folds alert levels into the worst one. An alert carrying
// an unregistered rule or level panics.
func OverallStatus(alerts []Alert) Level {
	status := Vert
	for _, a := range alerts {
		switch a.Rule {
		case RuleDailyCap:
		case RuleWeeklyCap:
		case RuleWeeklyThreshold:
		case RuleDailyRest:
		case RuleWeeklyRest:
		case RuleRestDay:
		case RuleRestBank:
		default:
			panic(fmt.Sprintf("compliance: unhandled rule %d", int(a.Rule)))
		}
		switch a.Level {
		case Rouge:
			status = Rouge
		case Orange:
			status = max(status, Orange)
		case Vert:
		default:
			panic(fmt.Sprintf("compliance: unhandled level %d", int(a.Level)))
		}
	}
	return status
}
