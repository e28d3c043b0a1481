package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devconnector/devconnector-api/internal/domain/entity"
	"github.com/devconnector/devconnector-api/internal/domain/repository"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(u *entity.User) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, avatar_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Password, u.Name, u.AvatarURL)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	// A malformed id cannot match any row; report it as not found rather
	// than letting the cast error surface as a server failure.
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}

	ctx := context.Background()
	u := &entity.User{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, name, avatar_url, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)

	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.AvatarURL,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return u, nil
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	ctx := context.Background()
	u := &entity.User{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, name, avatar_url, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)

	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.AvatarURL,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return u, nil
}

// Delete removes the user row. The profile goes with it via FK cascade;
// posts deliberately survive (no FK on posts.user_id).
func (r *UserRepository) Delete(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return repository.ErrNotFound
	}

	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
