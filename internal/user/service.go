package user

import (
	"wizard-writing-study/internal/realtime"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines the interface for user business logic
type Service interface {
	LoginOrRegister(name string) (*User, bool, error)
	GetUserByID(id uint64) (*User, error)
	ListUsers() ([]User, error)
}

// DefaultService implements Service
type DefaultService struct {
	repository UserRepository
	notifier   realtime.Notifier
}

// NewService creates a new user service
func NewService(repository UserRepository, notifier realtime.Notifier) Service {
	return &DefaultService{repository: repository, notifier: notifier}
}

// LoginOrRegister finds a user by display name, creating one on first login.
// Either way the session token rotates. The second return value reports
// whether the user was newly created.
func (s *DefaultService) LoginOrRegister(name string) (*User, bool, error) {
	sessionID := "user-" + uuid.NewString()

	existing, err := s.repository.FindByName(name)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	if existing != nil {
		if err := s.repository.UpdateSessionID(existing.ID, sessionID); err != nil {
			return nil, false, err
		}
		existing.SessionID = sessionID
		s.notifier.Notify(realtime.ChangeEvent{Table: "users", Op: realtime.OpUpdate})
		return existing, false, nil
	}

	newUser := &User{
		Name:      name,
		SessionID: sessionID,
	}
	if err := s.repository.Create(newUser); err != nil {
		return nil, false, err
	}
	s.notifier.Notify(realtime.ChangeEvent{Table: "users", Op: realtime.OpInsert})

	return newUser, true, nil
}

// GetUserByID gets a user by ID
func (s *DefaultService) GetUserByID(id uint64) (*User, error) {
	return s.repository.FindByID(id)
}

// ListUsers returns every registered user for the operator panel and the
// login dropdown
func (s *DefaultService) ListUsers() ([]User, error) {
	return s.repository.ListAll()
}
