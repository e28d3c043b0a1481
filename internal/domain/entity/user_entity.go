package entity

import (
	"time"
)

// User is the aggregate root for the identity domain.
// Password holds a bcrypt hash and is never serialized outward.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
