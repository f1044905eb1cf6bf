package document

import (
	"time"
)

// Document is a writer's working text. The schema enforces one document per
// user, which makes the single-writer-per-document assumption explicit: only
// the owning writer mutates content, the operator surface reads it.
type Document struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id" gorm:"uniqueIndex"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
