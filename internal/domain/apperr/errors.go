// Package apperr is the closed set of error kinds the API can surface.
// Every collaborator failure is mapped onto one of these at the handler
// boundary; the transport translation lives in pkg/response.
package apperr

import "errors"

var (
	// ErrDuplicateUser signals a registration with an email already taken.
	ErrDuplicateUser = errors.New("user already exists")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	// Callers must not distinguish the two (anti-enumeration).
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden signals a mutation attempted by a non-owner.
	ErrForbidden = errors.New("user not authorized")
)

// NotFoundError carries the resource name so the response can say which
// resource was missing ("Post Not Found", "Profile Not Found", ...).
type NotFoundError struct {
	Resource string
}

// NotFound builds a NotFoundError for the named resource.
func NotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
