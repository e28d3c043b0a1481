package helpers

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, exp, err := m.Generate("user-123")
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.User.ID)
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)

	token, _, err := m.Generate("user-123")
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTManager_Tampered(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, _, err := m.Generate("user-123")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Flip one character of the signature.
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = m.Parse(tampered)
	assert.ErrorIs(t, err, ErrTokenBadSignature)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret-a", time.Hour)
	verifier := NewJWTManager("secret-b", time.Hour)

	token, _, err := issuer.Generate("user-123")
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, ErrTokenBadSignature)
}

func TestJWTManager_Malformed(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	for _, tok := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := m.Parse(tok)
		assert.ErrorIs(t, err, ErrTokenMalformed, "token %q", tok)
	}
}
