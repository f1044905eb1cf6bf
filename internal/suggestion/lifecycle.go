package suggestion

import (
	"sort"

	"wizard-writing-study/internal/errors"
)

// Outcome is the storage effect of a lifecycle transition together with the
// resulting document text. DocumentText is nil when the transition leaves the
// document untouched (reject, like, partial/accept on comment suggestions).
type Outcome struct {
	IsAccepted   *bool
	Reaction     string
	DocumentText *string
}

func boolPtr(b bool) *bool { return &b }

// Accept resolves a pending append suggestion in full: the suggestion content
// is appended to the document and the row becomes (true, apply).
func Accept(s *Suggestion, documentText string) (*Outcome, error) {
	if !s.Pending() {
		return nil, errors.ErrConflict(nil).WithMessage("Suggestion already resolved")
	}

	out := &Outcome{IsAccepted: boolPtr(true), Reaction: ReactionApply}
	if s.Type == TypeAppend {
		newText := documentText + s.Content
		out.DocumentText = &newText
	}
	return out, nil
}

// PartialAccept resolves a pending suggestion with writer-edited text. For
// append suggestions the edited substring is appended instead of the original
// content; the stored outcome fields are the same as a full accept.
func PartialAccept(s *Suggestion, documentText string, partialText string) (*Outcome, error) {
	if !s.Pending() {
		return nil, errors.ErrConflict(nil).WithMessage("Suggestion already resolved")
	}

	out := &Outcome{IsAccepted: boolPtr(true), Reaction: ReactionApply}
	if s.Type == TypeAppend {
		newText := documentText + partialText
		out.DocumentText = &newText
	}
	return out, nil
}

// Reject resolves a pending suggestion without touching the document.
func Reject(s *Suggestion) (*Outcome, error) {
	if !s.Pending() {
		return nil, errors.ErrConflict(nil).WithMessage("Suggestion already resolved")
	}
	return &Outcome{IsAccepted: boolPtr(false), Reaction: ReactionReject}, nil
}

// Like records a positive reaction. is_accepted stays null, but the
// suggestion is terminal from here on: (null, like) is not a pending pair.
func Like(s *Suggestion) (*Outcome, error) {
	if !s.Pending() {
		return nil, errors.ErrConflict(nil).WithMessage("Suggestion already resolved")
	}
	return &Outcome{IsAccepted: nil, Reaction: ReactionLike}, nil
}

// Apply resolves a pending suggestion and edits the document. Append
// suggestions append their content. Comment suggestions with a recorded span
// replace [position, end_position) with the content; with only a position the
// content is inserted there. A comment without any position is rejected with
// 422 instead of silently resolving the row with no text effect.
func Apply(s *Suggestion, documentText string) (*Outcome, error) {
	if !s.Pending() {
		return nil, errors.ErrConflict(nil).WithMessage("Suggestion already resolved")
	}

	out := &Outcome{IsAccepted: boolPtr(true), Reaction: ReactionApply}

	switch s.Type {
	case TypeAppend:
		newText := documentText + s.Content
		out.DocumentText = &newText
	case TypeComment:
		if s.Position == nil {
			return nil, errors.ErrUnprocessableEntity(nil).WithMessage("Comment suggestion has no position to apply at")
		}
		newText := spliceText(documentText, s.Content, *s.Position, s.EndPosition)
		out.DocumentText = &newText
	default:
		return nil, errors.ErrUnprocessableEntity(nil).WithMessage("Unknown suggestion type")
	}

	return out, nil
}

// spliceText replaces text[position:endPosition] with content, or inserts at
// position when endPosition is nil. Offsets are rune offsets, clamped to the
// text bounds.
func spliceText(text string, content string, position int, endPosition *int) string {
	runes := []rune(text)

	start := position
	if start < 0 {
		start = 0
	}
	if start > len(runes) {
		start = len(runes)
	}

	end := start
	if endPosition != nil {
		end = *endPosition
		if end < start {
			end = start
		}
		if end > len(runes) {
			end = len(runes)
		}
	}

	return string(runes[:start]) + content + string(runes[end:])
}

// SelectActive picks the suggestion surfaced in the writer's primary action
// slot: the most recently created pending append suggestion, or nil. Comment
// suggestions and resolved rows are listed but never occupy the slot.
func SelectActive(suggestions []Suggestion) *Suggestion {
	sorted := make([]Suggestion, len(suggestions))
	copy(sorted, suggestions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	for i := range sorted {
		if sorted[i].Type == TypeAppend && sorted[i].Pending() {
			return &sorted[i]
		}
	}
	return nil
}
