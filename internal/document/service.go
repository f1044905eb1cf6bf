package document

import (
	defError "errors"

	"wizard-writing-study/internal/errors"
	"wizard-writing-study/internal/realtime"

	"gorm.io/gorm"
)

type Service interface {
	EnsureForUser(userID uint64) (*Document, error)
	GetByUser(userID uint64) (*Document, error)
	ListByUser(userID uint64) ([]Document, error)
	Save(docID uint64, userID uint64, content string) error
}

type DefaultService struct {
	repository DocumentRepository
	notifier   realtime.Notifier
}

func NewService(repository DocumentRepository, notifier realtime.Notifier) Service {
	return &DefaultService{repository: repository, notifier: notifier}
}

// EnsureForUser returns the user's document, lazily creating an empty one on
// first login
func (s *DefaultService) EnsureForUser(userID uint64) (*Document, error) {
	doc, err := s.repository.FindByUserID(userID)
	if err == nil {
		return doc, nil
	}
	if !defError.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	doc = &Document{UserID: userID, Content: ""}
	if err := s.repository.Create(doc); err != nil {
		return nil, err
	}
	s.notifier.Notify(realtime.ChangeEvent{Table: "documents", Op: realtime.OpInsert, UserID: userID})

	return doc, nil
}

func (s *DefaultService) GetByUser(userID uint64) (*Document, error) {
	doc, err := s.repository.FindByUserID(userID)
	if err != nil {
		if defError.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound(err).WithMessage("Document not found")
		}
		return nil, err
	}
	return doc, nil
}

func (s *DefaultService) ListByUser(userID uint64) ([]Document, error) {
	return s.repository.ListByUserID(userID)
}

// Save overwrites the document content. Only the owning writer may save; the
// operator surface never writes document rows.
func (s *DefaultService) Save(docID uint64, userID uint64, content string) error {
	doc, err := s.repository.FindByID(docID)
	if err != nil {
		if defError.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrNotFound(err).WithMessage("Document not found")
		}
		return err
	}

	if doc.UserID != userID {
		return errors.ErrForbidden(nil).WithMessage("Document belongs to another writer")
	}

	if err := s.repository.UpdateContent(docID, content); err != nil {
		return err
	}
	s.notifier.Notify(realtime.ChangeEvent{Table: "documents", Op: realtime.OpUpdate, UserID: userID})

	return nil
}
