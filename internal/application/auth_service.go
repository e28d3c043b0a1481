package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/devconnector/devconnector-api/internal/domain/apperr"
	"github.com/devconnector/devconnector-api/internal/domain/entity"
	"github.com/devconnector/devconnector-api/internal/domain/repository"
	"github.com/devconnector/devconnector-api/pkg/helpers"
)

// AuthService orchestrates registration, login and identity resolution.
// Tokens are stateless: nothing is recorded server-side at issuance.
type AuthService struct {
	Users  repository.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(users repository.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Logger: logger}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// normalizeEmail lowercases so uniqueness and lookup are case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an identity and issues its first session token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, *entity.User, error) {
	email := normalizeEmail(in.Email)

	if _, err := s.Users.GetByEmail(email); err == nil {
		return "", nil, apperr.ErrDuplicateUser
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.Logger.WithError(err).Error("user lookup failed")
		return "", nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		s.Logger.WithError(err).Error("password hash failed")
		return "", nil, err
	}

	u := &entity.User{
		Email:     email,
		Password:  hash,
		Name:      in.Name,
		AvatarURL: helpers.GravatarURL(email),
	}
	if err := s.Users.Create(u); err != nil {
		// Concurrent registration may slip past the pre-check; the unique
		// index still holds the invariant.
		if errors.Is(err, repository.ErrDuplicate) {
			return "", nil, apperr.ErrDuplicateUser
		}
		s.Logger.WithError(err).Error("user create failed")
		return "", nil, err
	}

	token, _, err := s.JWT.Generate(u.ID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("token generation failed")
		return "", nil, err
	}
	return token, u, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.Users.GetByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperr.ErrInvalidCredentials
		}
		s.Logger.WithError(err).Error("user lookup failed")
		return "", err
	}

	ok, err := helpers.CheckPassword(u.Password, password)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("password verification failed")
		return "", err
	}
	if !ok {
		return "", apperr.ErrInvalidCredentials
	}

	token, _, err := s.JWT.Generate(u.ID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("token generation failed")
		return "", err
	}
	return token, nil
}

// CurrentUser resolves the authenticated identity's record.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("User")
		}
		s.Logger.WithError(err).Error("user lookup failed")
		return nil, err
	}
	return u, nil
}
