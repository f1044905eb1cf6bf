package suggestion

import (
	"time"

	"gorm.io/gorm"
)

type SuggestionRepository interface {
	Create(s *Suggestion) error
	FindByID(id uint64) (*Suggestion, error)
	ListByUserID(userID uint64) ([]Suggestion, error)
	Resolve(id uint64, outcome *Outcome, documentID uint64) error
}

type SuggestionRepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new suggestion repository
func NewRepository(db *gorm.DB) SuggestionRepository {
	return &SuggestionRepositoryImpl{db: db}
}

func (r *SuggestionRepositoryImpl) Create(s *Suggestion) error {
	s.CreatedAt = time.Now().UTC()
	return r.db.Create(s).Error
}

func (r *SuggestionRepositoryImpl) FindByID(id uint64) (*Suggestion, error) {
	var s Suggestion
	err := r.db.First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByUserID returns every suggestion for a user, most recent first. This
// is the read every surface recomputes from; there is no incremental path.
func (r *SuggestionRepositoryImpl) ListByUserID(userID uint64) ([]Suggestion, error) {
	var suggestions []Suggestion
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&suggestions).Error
	return suggestions, err
}

// Resolve writes a transition outcome. The suggestion fields and the document
// edit commit in one transaction so a failed write never leaves the stored
// document and the suggestion row disagreeing.
func (r *SuggestionRepositoryImpl) Resolve(id uint64, outcome *Outcome, documentID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Suggestion{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"is_accepted": outcome.IsAccepted,
				"reaction":    outcome.Reaction,
			}).Error; err != nil {
			return err
		}

		if outcome.DocumentText != nil {
			if err := tx.Table("documents").
				Where("id = ?", documentID).
				Updates(map[string]interface{}{
					"content":    *outcome.DocumentText,
					"updated_at": time.Now().UTC(),
				}).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
