package compliance

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Tiliavir/astreinte-tracker/internal/model"
	"github.com/Tiliavir/astreinte-tracker/internal/settings"
	"github.com/Tiliavir/astreinte-tracker/internal/timecalc"
)

const (
	// MiddayDeduction is removed from effective time when the midday
	// break is suppressed.
	MiddayDeduction = 45

	// Posted hours used by the mileage check, on raw clock time.
	postedStart = 8 * 60
	postedEnd   = 16*60 + 45
)

var ErrInvalidFPCHours = errors.New("fpc hours must be 7 or 8")

// fpcHours maps an FPC duration to its canonical clock times.
var fpcHours = map[int][2]string{
	7: {"08:00", "15:45"},
	8: {"08:00", "16:45"},
}

// Prepare validates an entry at construction time and normalizes it:
// FPC entries get canonical hours with the midday break removed, and a
// missing ID is generated. Aggregation assumes prepared entries.
func Prepare(e model.ShiftEntry) (model.ShiftEntry, error) {
	if _, err := timecalc.ParseDate(e.Date); err != nil {
		return e, err
	}
	if e.IsFPC {
		canon, ok := fpcHours[e.FPCHeures]
		if !ok {
			return e, fmt.Errorf("%w: got %d", ErrInvalidFPCHours, e.FPCHeures)
		}
		e.StartTime, e.EndTime = canon[0], canon[1]
		e.SuppressionMidi = true
	} else {
		e.FPCHeures = 0
	}
	if _, err := timecalc.ParseClock(e.StartTime); err != nil {
		return e, fmt.Errorf("start time: %w", err)
	}
	if _, err := timecalc.ParseClock(e.EndTime); err != nil {
		return e, fmt.Errorf("end time: %w", err)
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.NoteTags == nil {
		e.NoteTags = []string{}
	}
	if e.Source == "" {
		e.Source = "manual"
	}
	e.AutoComments = nil
	return e, nil
}

// clock returns the raw start and end minutes of a prepared entry.
func clock(e model.ShiftEntry) (int, int) {
	return timecalc.MustClock(e.StartTime), timecalc.MustClock(e.EndTime)
}

// span returns the effective span of a prepared entry.
func span(e model.ShiftEntry) (int, int) {
	return timecalc.EffectiveSpan(clock(e))
}

// EffectiveMinutes is the worked time an entry contributes. On-call
// availability without intervention contributes nothing.
func EffectiveMinutes(e model.ShiftEntry) int {
	if !e.Counts() {
		return 0
	}
	start, end := span(e)
	minutes := end - start
	if e.SuppressionMidi && timecalc.CoversMidday(clock(e)) {
		minutes -= MiddayDeduction
	}
	return max(minutes, 0)
}

func triggersPrimeRepas(e model.ShiftEntry) bool {
	return e.Counts() && !e.SuppressionMidi && timecalc.CoversMidday(clock(e))
}

// triggersIK compares raw clock times without the midnight extension,
// so a 21:00–05:00 shift is flagged for its 05:00 end before 08:00.
func triggersIK(e model.ShiftEntry) bool {
	if !e.Counts() {
		return false
	}
	start, end := clock(e)
	return outsidePosted(start) || outsidePosted(end)
}

func outsidePosted(m int) bool {
	return m < postedStart || m > postedEnd
}

// AutoComments derives the automatic annotations of an entry.
func AutoComments(e model.ShiftEntry, s settings.Settings) []model.AutoComment {
	var comments []model.AutoComment
	if triggersPrimeRepas(e) {
		comments = append(comments, model.AutoComment{
			Kind:   model.CommentPrimeRepas,
			Text:   fmt.Sprintf("Prime repas : %.2f €", s.PrimeRepas),
			Amount: s.PrimeRepas,
		})
	}
	if triggersIK(e) {
		comments = append(comments, model.AutoComment{
			Kind: model.CommentIKVerifier,
			Text: fmt.Sprintf("IK à vérifier (hors %s–%s)",
				timecalc.FormatClock(postedStart), timecalc.FormatClock(postedEnd)),
		})
	}
	return comments
}

// Annotate returns a copy of e with AutoComments recomputed.
func Annotate(e model.ShiftEntry, s settings.Settings) model.ShiftEntry {
	e.AutoComments = AutoComments(e, s)
	return e
}
