package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devconnector/devconnector-api/internal/domain/entity"
	"github.com/devconnector/devconnector-api/internal/domain/repository"
)

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// Upsert creates the user's profile or overwrites its mutable fields.
// The owner reference never changes once set.
func (r *ProfileRepository) Upsert(p *entity.Profile) error {
	ctx := context.Background()
	p.UpdatedAt = time.Now()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO profiles (user_id, company, website, location, status, skills,
			bio, github_username, experience, education, social, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id) DO UPDATE SET
			company = EXCLUDED.company,
			website = EXCLUDED.website,
			location = EXCLUDED.location,
			status = EXCLUDED.status,
			skills = EXCLUDED.skills,
			bio = EXCLUDED.bio,
			github_username = EXCLUDED.github_username,
			experience = EXCLUDED.experience,
			education = EXCLUDED.education,
			social = EXCLUDED.social,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`, p.UserID, p.Company, p.Website, p.Location, p.Status, p.Skills,
		p.Bio, p.GithubUsername, p.Experience, p.Education, p.Social, p.UpdatedAt)

	return row.Scan(&p.ID, &p.CreatedAt)
}

const profileSelect = `
	SELECT p.id, p.user_id, p.company, p.website, p.location, p.status, p.skills,
		p.bio, p.github_username, p.experience, p.education, p.social,
		p.created_at, p.updated_at,
		u.name, u.avatar_url
	FROM profiles p
	JOIN users u ON u.id = p.user_id
`

func scanProfile(row pgx.Row) (*entity.Profile, error) {
	p := &entity.Profile{}
	if err := row.Scan(&p.ID, &p.UserID, &p.Company, &p.Website, &p.Location,
		&p.Status, &p.Skills, &p.Bio, &p.GithubUsername,
		&p.Experience, &p.Education, &p.Social,
		&p.CreatedAt, &p.UpdatedAt,
		&p.User.Name, &p.User.Avatar); err != nil {
		return nil, err
	}
	p.User.ID = p.UserID
	return p, nil
}

func (r *ProfileRepository) GetByUserID(userID string) (*entity.Profile, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, repository.ErrNotFound
	}

	ctx := context.Background()
	row := r.pool.QueryRow(ctx, profileSelect+` WHERE p.user_id = $1`, userID)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProfileRepository) List() ([]*entity.Profile, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, profileSelect+` ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProfileRepository) DeleteByUserID(userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return repository.ErrNotFound
	}

	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
