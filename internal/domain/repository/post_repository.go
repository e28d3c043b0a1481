package repository

import "github.com/devconnector/devconnector-api/internal/domain/entity"

// PostRepository defines the interface for post database operations.
type PostRepository interface {
	Create(p *entity.Post) error
	GetByID(id string) (*entity.Post, error)
	List() ([]*entity.Post, error)
	Delete(id string) error
}
