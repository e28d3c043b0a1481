package repository

import "github.com/devconnector/devconnector-api/internal/domain/entity"

// ProfileRepository defines the interface for profile database operations.
// A user has at most one profile, keyed by user id.
type ProfileRepository interface {
	Upsert(p *entity.Profile) error
	GetByUserID(userID string) (*entity.Profile, error)
	List() ([]*entity.Profile, error)
	DeleteByUserID(userID string) error
}
