package helpers

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes the plain text password using bcrypt. Each call salts
// with fresh randomness, so hashing the same password twice never yields the
// same string.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword compares a bcrypt hash with a plain password. A mismatch is
// (false, nil); any other bcrypt failure (corrupt hash, bad cost) is returned
// as an error so callers never mistake a crypto failure for a wrong password.
func CheckPassword(hash string, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
