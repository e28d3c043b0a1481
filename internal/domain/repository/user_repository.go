package repository

import (
	"errors"

	"github.com/devconnector/devconnector-api/internal/domain/entity"
)

// Store-level sentinels shared by all repository implementations. Services
// translate these into the apperr taxonomy.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository defines the interface for user-related database operations.
// Emails are stored lowercased; callers normalize before lookup.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Delete(id string) error
}
