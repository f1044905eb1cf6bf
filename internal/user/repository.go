package user

import "gorm.io/gorm"

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *User) error
	FindByName(name string) (*User, error)
	FindByID(id uint64) (*User, error)
	UpdateSessionID(id uint64, sessionID string) error
	ListAll() ([]User, error)
}

// UserRepositoryImpl implements UserRepository
type UserRepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new user repository
func NewRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create creates a new user
func (r *UserRepositoryImpl) Create(user *User) error {
	return r.db.Create(user).Error
}

// FindByName finds a user by display name
func (r *UserRepositoryImpl) FindByName(name string) (*User, error) {
	var user User
	err := r.db.Where("name = ?", name).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, err
}

// FindByID finds a user by ID
func (r *UserRepositoryImpl) FindByID(id uint64) (*User, error) {
	var user User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateSessionID rotates the session token for an existing user
func (r *UserRepositoryImpl) UpdateSessionID(id uint64, sessionID string) error {
	return r.db.Model(&User{}).Where("id = ?", id).Update("session_id", sessionID).Error
}

// ListAll returns every user, most recent first
func (r *UserRepositoryImpl) ListAll() ([]User, error) {
	var users []User
	err := r.db.Order("created_at DESC").Find(&users).Error
	return users, err
}
