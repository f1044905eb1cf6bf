package suggestion

import (
	defError "errors"

	"wizard-writing-study/internal/document"
	"wizard-writing-study/internal/errors"
	"wizard-writing-study/internal/realtime"

	"gorm.io/gorm"
)

type Service interface {
	Send(s *Suggestion) error
	ListForUser(userID uint64) (*Refresh, error)
	Accept(userID uint64, suggestionID uint64) (*Refresh, error)
	PartialAccept(userID uint64, suggestionID uint64, partialText string) (*Refresh, error)
	Reject(userID uint64, suggestionID uint64) (*Refresh, error)
	Like(userID uint64, suggestionID uint64) (*Refresh, error)
	Apply(userID uint64, suggestionID uint64) (*Refresh, error)
}

// DocumentProvider is the slice of the document service the lifecycle needs
type DocumentProvider interface {
	GetByUser(userID uint64) (*document.Document, error)
}

// Refresh is the recomputed view after any read or transition: the full
// suggestion list plus the active slot selection. Transitions never patch
// state incrementally; they write, refetch, and recompute from scratch, the
// same path a realtime notification triggers on the client.
type Refresh struct {
	Suggestions []Suggestion `json:"suggestions"`
	Active      *Suggestion  `json:"active"`
}

type DefaultService struct {
	repository SuggestionRepository
	documents  DocumentProvider
	notifier   realtime.Notifier
}

func NewService(repository SuggestionRepository, documents DocumentProvider, notifier realtime.Notifier) Service {
	return &DefaultService{
		repository: repository,
		documents:  documents,
		notifier:   notifier,
	}
}

// Send inserts a new pending suggestion from the operator panel
func (s *DefaultService) Send(sg *Suggestion) error {
	if sg.Type != TypeAppend && sg.Type != TypeComment {
		return errors.ErrUnprocessableEntity(nil).WithMessage("Unknown suggestion type")
	}
	if sg.Type == TypeAppend && sg.Position != nil {
		return errors.ErrUnprocessableEntity(nil).WithMessage("Append suggestions carry no span")
	}

	// new suggestions always start pending
	sg.IsAccepted = nil
	sg.Reaction = ReactionAbsent

	if err := s.repository.Create(sg); err != nil {
		return err
	}
	s.notifier.Notify(realtime.ChangeEvent{Table: "suggestions", Op: realtime.OpInsert, UserID: sg.UserID})

	return nil
}

// ListForUser refetches the full list and recomputes the active slot
func (s *DefaultService) ListForUser(userID uint64) (*Refresh, error) {
	suggestions, err := s.repository.ListByUserID(userID)
	if err != nil {
		return nil, err
	}
	return &Refresh{
		Suggestions: suggestions,
		Active:      SelectActive(suggestions),
	}, nil
}

type transitionFunc func(sg *Suggestion, documentText string) (*Outcome, error)

func (s *DefaultService) Accept(userID uint64, suggestionID uint64) (*Refresh, error) {
	return s.transition(userID, suggestionID, Accept)
}

func (s *DefaultService) PartialAccept(userID uint64, suggestionID uint64, partialText string) (*Refresh, error) {
	return s.transition(userID, suggestionID, func(sg *Suggestion, documentText string) (*Outcome, error) {
		return PartialAccept(sg, documentText, partialText)
	})
}

func (s *DefaultService) Reject(userID uint64, suggestionID uint64) (*Refresh, error) {
	return s.transition(userID, suggestionID, func(sg *Suggestion, _ string) (*Outcome, error) {
		return Reject(sg)
	})
}

func (s *DefaultService) Like(userID uint64, suggestionID uint64) (*Refresh, error) {
	return s.transition(userID, suggestionID, func(sg *Suggestion, _ string) (*Outcome, error) {
		return Like(sg)
	})
}

func (s *DefaultService) Apply(userID uint64, suggestionID uint64) (*Refresh, error) {
	return s.transition(userID, suggestionID, Apply)
}

// transition runs one lifecycle step: load the pending row, compute the
// outcome against the current document text, commit suggestion and document
// together, notify both change feeds, then refetch and recompute.
func (s *DefaultService) transition(userID uint64, suggestionID uint64, fn transitionFunc) (*Refresh, error) {
	sg, err := s.repository.FindByID(suggestionID)
	if err != nil {
		if defError.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound(err).WithMessage("Suggestion not found")
		}
		return nil, err
	}

	if sg.UserID != userID {
		return nil, errors.ErrForbidden(nil).WithMessage("Suggestion belongs to another writer")
	}

	doc, err := s.documents.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	outcome, err := fn(sg, doc.Content)
	if err != nil {
		return nil, err
	}

	if err := s.repository.Resolve(sg.ID, outcome, doc.ID); err != nil {
		return nil, err
	}

	s.notifier.Notify(realtime.ChangeEvent{Table: "suggestions", Op: realtime.OpUpdate, UserID: userID})
	if outcome.DocumentText != nil {
		s.notifier.Notify(realtime.ChangeEvent{Table: "documents", Op: realtime.OpUpdate, UserID: userID})
	}

	return s.ListForUser(userID)
}
