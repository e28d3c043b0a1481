package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devconnector/devconnector-api/internal/domain/entity"
	"github.com/devconnector/devconnector-api/internal/domain/repository"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func (r *PostRepository) Create(p *entity.Post) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (user_id, text, name, avatar)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, p.UserID, p.Text, p.Name, p.Avatar)

	return row.Scan(&p.ID, &p.CreatedAt)
}

func (r *PostRepository) GetByID(id string) (*entity.Post, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}

	ctx := context.Background()
	p := &entity.Post{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, text, name, avatar, created_at
		FROM posts
		WHERE id = $1
	`, id)

	if err := row.Scan(&p.ID, &p.UserID, &p.Text, &p.Name, &p.Avatar, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return p, nil
}

func (r *PostRepository) List() ([]*entity.Post, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, text, name, avatar, created_at
		FROM posts
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.Post, 0)
	for rows.Next() {
		p := &entity.Post{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.Text, &p.Name, &p.Avatar, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostRepository) Delete(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return repository.ErrNotFound
	}

	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
