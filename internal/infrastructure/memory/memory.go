// Package memory holds in-memory repository implementations backing unit
// tests and local runs without Postgres. Semantics mirror the postgres
// package: not-found and duplicate sentinels, case-exact lookups on
// pre-normalized emails, newest-first post listing.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/devconnector/devconnector-api/internal/domain/entity"
	"github.com/devconnector/devconnector-api/internal/domain/repository"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]entity.User // by id
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]entity.User)}
}

func (r *UserRepository) Create(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.users[u.ID] = *u
	return nil
}

func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)

// ProfileRepository keys profiles by owner id and joins owner name/avatar
// from the user repository on reads, like the SQL implementation does.
type ProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]entity.Profile // by user id
	users    *UserRepository
}

func NewProfileRepository(users *UserRepository) *ProfileRepository {
	return &ProfileRepository{profiles: make(map[string]entity.Profile), users: users}
}

func (r *ProfileRepository) Upsert(p *entity.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	if existing, ok := r.profiles[p.UserID]; ok {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	} else {
		p.ID = uuid.NewString()
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	r.profiles[p.UserID] = *p
	return nil
}

func (r *ProfileRepository) join(p entity.Profile) *entity.Profile {
	p.User = entity.ProfileOwner{ID: p.UserID}
	if u, err := r.users.GetByID(p.UserID); err == nil {
		p.User.Name = u.Name
		p.User.Avatar = u.AvatarURL
	}
	return &p
}

func (r *ProfileRepository) GetByUserID(userID string) (*entity.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.join(p), nil
}

func (r *ProfileRepository) List() ([]*entity.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, r.join(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ProfileRepository) DeleteByUserID(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[userID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.profiles, userID)
	return nil
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)

type PostRepository struct {
	mu    sync.RWMutex
	posts map[string]entity.Post // by id
	seq   int
}

func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[string]entity.Post)}
}

func (r *PostRepository) Create(p *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = uuid.NewString()
	// Monotonic nudge so same-instant posts still sort deterministically.
	r.seq++
	p.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Microsecond)
	r.posts[p.ID] = *p
	return nil
}

func (r *PostRepository) GetByID(id string) (*entity.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *PostRepository) List() ([]*entity.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Post, 0, len(r.posts))
	for _, p := range r.posts {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *PostRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
