package suggestion

import (
	"time"
)

// Suggestion types
const (
	TypeAppend  = "append"  // text proposed for the end of the document
	TypeComment = "comment" // feedback tied to a document span
)

// Reactions. The empty string means no reaction has been recorded yet.
const (
	ReactionAbsent = ""
	ReactionLike   = "like"
	ReactionApply  = "apply"
	ReactionReject = "reject"
)

// Lifecycle states derived from the (is_accepted, reaction) pair
const (
	StatePending  = "pending"
	StateAccepted = "accepted"
	StateRejected = "rejected"
	StateLiked    = "liked"
	StateApplied  = "applied"
)

// Suggestion is one operator intervention sent to a writer. is_accepted is
// tri-state: nil while pending, then true/false. reaction is a finer-grained
// outcome tag set alongside or instead of is_accepted. The pair
// (nil, absent) is the only pending combination; every other combination is
// terminal and the row is never touched again.
type Suggestion struct {
	ID              uint64    `json:"id"`
	Content         string    `json:"content"`
	WizardSessionID string    `json:"wizard_session_id"`
	UserID          uint64    `json:"user_id" gorm:"index"`
	IsAccepted      *bool     `json:"is_accepted"`
	Type            string    `json:"type"`
	Position        *int      `json:"position,omitempty"`
	EndPosition     *int      `json:"end_position,omitempty"`
	SelectedText    *string   `json:"selected_text,omitempty"`
	Reaction        string    `json:"reaction,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Pending reports whether the suggestion still awaits a writer decision
func (s *Suggestion) Pending() bool {
	return s.IsAccepted == nil && s.Reaction == ReactionAbsent
}

// State maps the (is_accepted, reaction) pair to a display state
func (s *Suggestion) State() string {
	switch {
	case s.Pending():
		return StatePending
	case s.IsAccepted != nil && *s.IsAccepted && s.Reaction == ReactionApply:
		return StateApplied
	case s.IsAccepted != nil && *s.IsAccepted:
		return StateAccepted
	case s.IsAccepted != nil:
		return StateRejected
	case s.Reaction == ReactionLike:
		return StateLiked
	default:
		return StateApplied
	}
}
