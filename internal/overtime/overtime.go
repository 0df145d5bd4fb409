// Package overtime splits the hours of a week above a contractual base
// into rate tiers.
package overtime

import (
	"errors"
	"fmt"

	"github.com/Tiliavir/astreinte-tracker/internal/compliance"
)

// Tier covers weekly hours up to UpTo. A zero UpTo means no ceiling and
// is only allowed on the last tier.
type Tier struct {
	UpTo       float64 `json:"up_to"`
	Multiplier float64 `json:"multiplier"`
}

// Tiered is a user-supplied overtime table.
type Tiered struct {
	BaseHours float64 `json:"base_hours"`
	Tiers     []Tier  `json:"tiers"`
}

// Validate checks that ceilings increase and sit above the base.
func (t Tiered) Validate() error {
	if t.BaseHours <= 0 {
		return errors.New("overtime: base_hours must be positive")
	}
	if len(t.Tiers) == 0 {
		return errors.New("overtime: at least one tier is required")
	}
	prev := t.BaseHours
	for i, tier := range t.Tiers {
		if tier.Multiplier <= 0 {
			return fmt.Errorf("overtime: tier %d: multiplier must be positive", i+1)
		}
		if tier.UpTo == 0 {
			if i != len(t.Tiers)-1 {
				return fmt.Errorf("overtime: tier %d: only the last tier may be unbounded", i+1)
			}
			continue
		}
		if tier.UpTo <= prev {
			return fmt.Errorf("overtime: tier %d: up_to %.2f must exceed %.2f", i+1, tier.UpTo, prev)
		}
		prev = tier.UpTo
	}
	return nil
}

// Details implements compliance.OvertimeStep. Hours beyond the last
// bounded tier are dropped.
func (t Tiered) Details(w compliance.WeekSummary) []compliance.OvertimeLine {
	lines := []compliance.OvertimeLine{}
	floor := t.BaseHours
	for _, tier := range t.Tiers {
		if w.TotalHours <= floor {
			break
		}
		ceil := w.TotalHours
		if tier.UpTo > 0 {
			ceil = min(ceil, tier.UpTo)
		}
		lines = append(lines, compliance.OvertimeLine{
			Label:      label(floor, tier.UpTo),
			Hours:      ceil - floor,
			Multiplier: tier.Multiplier,
		})
		if tier.UpTo == 0 {
			break
		}
		floor = tier.UpTo
	}
	return lines
}

func label(from, to float64) string {
	if to == 0 {
		return fmt.Sprintf("> %gh", from)
	}
	return fmt.Sprintf("%gh-%gh", from, to)
}
