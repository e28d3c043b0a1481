package application

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/devconnector/devconnector-api/internal/domain/apperr"
	"github.com/devconnector/devconnector-api/internal/domain/entity"
	"github.com/devconnector/devconnector-api/internal/domain/repository"
	"github.com/devconnector/devconnector-api/pkg/helpers"
)

const postsCacheKey = "cache:posts:all"

// PostService handles post CRUD. Deletion is restricted to the post's owner;
// the check runs strictly before any write reaches the store.
type PostService struct {
	Posts    repository.PostRepository
	Users    repository.UserRepository
	Redis    *redis.Client
	CacheTTL time.Duration // zero disables list caching
	Logger   *logrus.Logger
}

func NewPostService(posts repository.PostRepository, users repository.UserRepository, rdb *redis.Client, cacheTTL time.Duration, logger *logrus.Logger) *PostService {
	return &PostService{Posts: posts, Users: users, Redis: rdb, CacheTTL: cacheTTL, Logger: logger}
}

// Create stores a new post owned by userID, denormalizing the author's
// name and avatar.
func (s *PostService) Create(ctx context.Context, userID, text string) (*entity.Post, error) {
	u, err := s.Users.GetByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("User")
		}
		s.Logger.WithError(err).Error("user lookup failed")
		return nil, err
	}

	p := &entity.Post{
		UserID: u.ID,
		Text:   text,
		Name:   u.Name,
		Avatar: u.AvatarURL,
	}
	if err := s.Posts.Create(p); err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Error("post create failed")
		return nil, err
	}
	s.invalidateList(ctx)
	return p, nil
}

// List returns all posts, newest first.
func (s *PostService) List(ctx context.Context) ([]*entity.Post, error) {
	if s.Redis != nil && s.CacheTTL > 0 {
		var cached []*entity.Post
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, postsCacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}

	posts, err := s.Posts.List()
	if err != nil {
		s.Logger.WithError(err).Error("post list failed")
		return nil, err
	}

	if s.Redis != nil && s.CacheTTL > 0 {
		if err := helpers.RedisSetJSON(ctx, s.Redis, postsCacheKey, posts, s.CacheTTL); err != nil {
			s.Logger.WithError(err).Warn("post cache write failed")
		}
	}
	return posts, nil
}

// Get returns a single post by id.
func (s *PostService) Get(ctx context.Context, id string) (*entity.Post, error) {
	p, err := s.Posts.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Post")
		}
		s.Logger.WithError(err).Error("post lookup failed")
		return nil, err
	}
	return p, nil
}

// Delete removes a post if and only if userID owns it.
func (s *PostService) Delete(ctx context.Context, userID, id string) error {
	p, err := s.Posts.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Post")
		}
		s.Logger.WithError(err).Error("post lookup failed")
		return err
	}
	if p.UserID != userID {
		return apperr.ErrForbidden
	}

	if err := s.Posts.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Post")
		}
		s.Logger.WithError(err).WithField("post_id", id).Error("post delete failed")
		return err
	}
	s.invalidateList(ctx)
	return nil
}

func (s *PostService) invalidateList(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, postsCacheKey); err != nil {
		s.Logger.WithError(err).Warn("post cache invalidation failed")
	}
}
