package domain

import (
	"errors"
	"strings"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrRatingNotFound     = errors.New("rating not found")
	ErrEventNotFound      = errors.New("event not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password, so
	// a failed login never reveals which check failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError aggregates every violation found in a request. Registration
// is required to report all failures together rather than stopping at the
// first one.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, "; ")
}

// NewValidationError returns nil when there are no violations.
func NewValidationError(violations []string) error {
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}
