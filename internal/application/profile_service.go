package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/devconnector/devconnector-api/internal/domain/apperr"
	"github.com/devconnector/devconnector-api/internal/domain/entity"
	"github.com/devconnector/devconnector-api/internal/domain/repository"
	"github.com/devconnector/devconnector-api/pkg/helpers"
)

const profilesCacheKey = "cache:profiles:all"

// ProfileService handles profile reads/writes and account deletion. The
// profile is always keyed by the authenticated user, so ownership holds by
// construction; only account deletion touches other aggregates.
type ProfileService struct {
	Profiles repository.ProfileRepository
	Users    repository.UserRepository
	Redis    *redis.Client
	CacheTTL time.Duration // zero disables list caching
	Logger   *logrus.Logger
}

func NewProfileService(profiles repository.ProfileRepository, users repository.UserRepository, rdb *redis.Client, cacheTTL time.Duration, logger *logrus.Logger) *ProfileService {
	return &ProfileService{Profiles: profiles, Users: users, Redis: rdb, CacheTTL: cacheTTL, Logger: logger}
}

type ProfileInput struct {
	Company        string
	Website        string
	Location       string
	Status         string
	Skills         string // comma-separated, as submitted by clients
	Bio            string
	GithubUsername string
	Experience     []entity.Experience
	Education      []entity.Education
	Youtube        string
	Twitter        string
	Instagram      string
	Linkedin       string
	Facebook       string
}

func splitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Me returns the authenticated user's own profile.
func (s *ProfileService) Me(ctx context.Context, userID string) (*entity.Profile, error) {
	p, err := s.Profiles.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Profile")
		}
		s.Logger.WithError(err).Error("profile lookup failed")
		return nil, err
	}
	return p, nil
}

// Upsert creates or replaces the caller's profile.
func (s *ProfileService) Upsert(ctx context.Context, userID string, in ProfileInput) (*entity.Profile, error) {
	p := &entity.Profile{
		UserID:         userID,
		Company:        in.Company,
		Website:        in.Website,
		Location:       in.Location,
		Status:         in.Status,
		Skills:         splitSkills(in.Skills),
		Bio:            in.Bio,
		GithubUsername: in.GithubUsername,
		Experience:     in.Experience,
		Education:      in.Education,
		Social: entity.Social{
			Youtube:   in.Youtube,
			Twitter:   in.Twitter,
			Instagram: in.Instagram,
			Linkedin:  in.Linkedin,
			Facebook:  in.Facebook,
		},
	}
	if p.Experience == nil {
		p.Experience = []entity.Experience{}
	}
	if p.Education == nil {
		p.Education = []entity.Education{}
	}

	if err := s.Profiles.Upsert(p); err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Error("profile upsert failed")
		return nil, err
	}
	s.invalidateList(ctx)

	// Re-read through the repository so the response carries the joined
	// owner name/avatar.
	return s.Me(ctx, userID)
}

// List returns all profiles, read through the cache when one is configured.
func (s *ProfileService) List(ctx context.Context) ([]*entity.Profile, error) {
	if s.Redis != nil && s.CacheTTL > 0 {
		var cached []*entity.Profile
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, profilesCacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}

	profiles, err := s.Profiles.List()
	if err != nil {
		s.Logger.WithError(err).Error("profile list failed")
		return nil, err
	}

	if s.Redis != nil && s.CacheTTL > 0 {
		if err := helpers.RedisSetJSON(ctx, s.Redis, profilesCacheKey, profiles, s.CacheTTL); err != nil {
			s.Logger.WithError(err).Warn("profile cache write failed")
		}
	}
	return profiles, nil
}

// DeleteAccount removes the caller's profile and identity. Posts
// intentionally remain, matching the behavior clients already rely on.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID string) error {
	// Having no profile is fine; the account still goes away.
	if err := s.Profiles.DeleteByUserID(userID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.Logger.WithError(err).WithField("user_id", userID).Error("profile delete failed")
		return err
	}
	if err := s.Users.Delete(userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("User")
		}
		s.Logger.WithError(err).WithField("user_id", userID).Error("account delete failed")
		return err
	}
	s.invalidateList(ctx)
	return nil
}

func (s *ProfileService) invalidateList(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, profilesCacheKey); err != nil {
		s.Logger.WithError(err).Warn("profile cache invalidation failed")
	}
}
