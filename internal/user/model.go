package user

import (
	"time"
)

// User represents a study participant (writer). Users are created at first
// login and immutable afterwards except for the session token, which rotates
// on every login.
type User struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name" gorm:"uniqueIndex"`
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicUser is the shape exposed to the login dropdown
type PublicUser struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

func (u *User) ToPublicUser() PublicUser {
	return PublicUser{
		ID:   u.ID,
		Name: u.Name,
	}
}
