package document

import (
	"time"

	"gorm.io/gorm"
)

type DocumentRepository interface {
	Create(document *Document) error
	FindByID(id uint64) (*Document, error)
	FindByUserID(userID uint64) (*Document, error)
	ListByUserID(userID uint64) ([]Document, error)
	UpdateContent(id uint64, content string) error
}

type DocumentRepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new document repository
func NewRepository(db *gorm.DB) DocumentRepository {
	return &DocumentRepositoryImpl{db: db}
}

func (r *DocumentRepositoryImpl) Create(document *Document) error {
	now := time.Now().UTC() // Use UTC for consistency
	document.CreatedAt = now
	document.UpdatedAt = now
	return r.db.Create(document).Error
}

func (r *DocumentRepositoryImpl) FindByID(id uint64) (*Document, error) {
	var doc Document
	err := r.db.First(&doc, id).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// FindByUserID returns the user's document, most recently updated first in
// case legacy rows predate the one-document-per-user constraint
func (r *DocumentRepositoryImpl) FindByUserID(userID uint64) (*Document, error) {
	var doc Document
	err := r.db.Where("user_id = ?", userID).
		Order("updated_at DESC").
		First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepositoryImpl) ListByUserID(userID uint64) ([]Document, error) {
	var docs []Document
	err := r.db.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&docs).Error
	return docs, err
}

func (r *DocumentRepositoryImpl) UpdateContent(id uint64, content string) error {
	return r.db.Model(&Document{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"content":    content,
			"updated_at": time.Now().UTC(),
		}).Error
}
