package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures, one per rejection reason. The middleware collapses
// them into a single 401 for clients.
var (
	ErrTokenMalformed    = errors.New("token malformed")
	ErrTokenBadSignature = errors.New("token signature invalid")
	ErrTokenExpired      = errors.New("token expired")
)

// JWTManager handles generation and validation of JWT session tokens.
// The secret is set once at construction and read-only afterwards, so it is
// safe for concurrent use. It must never be logged or written to a response.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

var defaultManager *JWTManager

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	m := &JWTManager{secret: []byte(secret), ttl: ttl}
	defaultManager = m
	return m
}

// DefaultJWT returns the last constructed JWTManager (used for auto-wiring routes)
func DefaultJWT() *JWTManager { return defaultManager }

// TokenUser is the single identity claim carried by a session token.
type TokenUser struct {
	ID string `json:"id"`
}

// Claims matches the wire payload {"user":{"id":...}} plus iat/exp.
type Claims struct {
	User TokenUser `json:"user"`
	jwt.RegisteredClaims
}

// Generate issues a signed HS256 token asserting userID, valid for the
// manager's TTL.
func (m *JWTManager) Generate(userID string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.ttl)
	claims := &Claims{
		User: TokenUser{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.secret)
	return s, exp, err
}

// Parse verifies signature and expiry (no clock skew tolerated) and returns
// the claims. Rejections map to the Err* sentinels above.
func (m *JWTManager) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenBadSignature
		default:
			return nil, err
		}
	}
	if !tkn.Valid {
		return nil, ErrTokenBadSignature
	}
	return claims, nil
}
