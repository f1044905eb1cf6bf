package snapshot

import "gorm.io/gorm"

type SnapshotRepository interface {
	Create(snapshot *WritingSnapshot) error
	Latest(userID uint64, sessionID string) (*WritingSnapshot, error)
	ListByUserID(userID uint64) ([]WritingSnapshot, error)
}

type SnapshotRepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new snapshot repository
func NewRepository(db *gorm.DB) SnapshotRepository {
	return &SnapshotRepositoryImpl{db: db}
}

func (r *SnapshotRepositoryImpl) Create(snapshot *WritingSnapshot) error {
	return r.db.Create(snapshot).Error
}

// Latest returns the most recent snapshot of a writing session
func (r *SnapshotRepositoryImpl) Latest(userID uint64, sessionID string) (*WritingSnapshot, error) {
	var snapshot WritingSnapshot
	err := r.db.Where("user_id = ? AND session_id = ?", userID, sessionID).
		Order("timestamp DESC").
		First(&snapshot).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *SnapshotRepositoryImpl) ListByUserID(userID uint64) ([]WritingSnapshot, error) {
	var snapshots []WritingSnapshot
	err := r.db.Where("user_id = ?", userID).
		Order("timestamp ASC").
		Find(&snapshots).Error
	return snapshots, err
}
