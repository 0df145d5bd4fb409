package model

// ShiftEntry is one logged work interval. Date is a YYYY-MM-DD calendar
// day; StartTime and EndTime are HH:MM clock times, with EndTime <= StartTime
// meaning the shift runs past midnight.
type ShiftEntry struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`

	IsAstreinteSansIntervention bool    `json:"isAstreinteSansIntervention"`
	IsFormation                 bool    `json:"isFormation"`
	IsInterventionAstreinte     bool    `json:"isInterventionAstreinte"`
	TypeAstreinte               *string `json:"typeAstreinte"`
	IsFPC                       bool    `json:"isFPC"`
	FPCHeures                   int     `json:"fpcHeures,omitempty"`
	SuppressionMidi             bool    `json:"suppressionMidi"`

	Note     string   `json:"note,omitempty"`
	NoteTags []string `json:"noteTags"`

	// ExternalID links entries imported from a calendar.
	ExternalID string `json:"externalId,omitempty"`
	Source     string `json:"source"`

	// AutoComments are derived from the other fields and never persisted.
	AutoComments []AutoComment `json:"-"`
}

// Counts reports whether the entry takes part in worked-time and rest
// computations. On-call availability without intervention never does.
func (e ShiftEntry) Counts() bool {
	return !e.IsAstreinteSansIntervention
}

// AutoCommentKind identifies a derived annotation.
type AutoCommentKind string

const (
	CommentPrimeRepas AutoCommentKind = "prime_repas"
	CommentIKVerifier AutoCommentKind = "ik_a_verifier"
)

// AutoComment is a derived annotation attached to an entry.
type AutoComment struct {
	Kind   AutoCommentKind `json:"kind"`
	Text   string          `json:"text"`
	Amount float64         `json:"amount,omitempty"`
}

// DayFile is the top-level structure stored in each daily JSON file.
type DayFile struct {
	Date    string       `json:"date"`
	Entries []ShiftEntry `json:"entries"`
}
