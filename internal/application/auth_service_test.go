package application

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnector/devconnector-api/internal/domain/apperr"
	"github.com/devconnector/devconnector-api/internal/infrastructure/memory"
	"github.com/devconnector/devconnector-api/pkg/helpers"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newAuthService() (*AuthService, *memory.UserRepository, *helpers.JWTManager) {
	users := memory.NewUserRepository()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	return NewAuthService(users, jwt, testLogger()), users, jwt
}

func TestRegister_IssuesVerifiableToken(t *testing.T) {
	svc, _, jwt := newAuthService()

	token, u, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Alice",
		Email:    "Alice@X.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jwt.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.User.ID)

	// Email normalized, avatar derived, hash never the plaintext.
	assert.Equal(t, "alice@x.com", u.Email)
	assert.Contains(t, u.AvatarURL, "gravatar.com")
	assert.NotEqual(t, "secret1", u.Password)
	assert.True(t, strings.HasPrefix(u.Password, "$2"))
}

func TestRegister_DuplicateEmailCaseInsensitive(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, RegisterInput{Name: "Mallory", Email: "ALICE@x.com", Password: "other66"})
	assert.ErrorIs(t, err, apperr.ErrDuplicateUser)
}

func TestLogin_Success(t *testing.T) {
	svc, _, jwt := newAuthService()
	ctx := context.Background()

	_, u, err := svc.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	token, err := svc.Login(ctx, "Alice@X.com", "secret1")
	require.NoError(t, err)

	claims, err := jwt.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.User.ID)
}

func TestLogin_BadCredentialsAreUniform(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	// Wrong password and unknown email must be indistinguishable.
	_, err = svc.Login(ctx, "alice@x.com", "wrongpass")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@x.com", "secret1")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestLogin_DoesNotMutateStoredRecord(t *testing.T) {
	svc, users, _ := newAuthService()
	ctx := context.Background()

	_, u, err := svc.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	before, err := users.GetByID(u.ID)
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice@x.com", "secret1")
	require.NoError(t, err)

	after, err := users.GetByID(u.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCurrentUser_NotFound(t *testing.T) {
	svc, _, _ := newAuthService()

	_, err := svc.CurrentUser(context.Background(), "1e9f4f5e-0000-0000-0000-000000000000")
	assert.True(t, apperr.IsNotFound(err))
}
