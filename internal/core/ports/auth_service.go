package ports

import (
	"context"
	"time"

	"github.com/awesomeeats/restaurant-api/internal/core/domain"
)

// RegisterInput carries a registration request.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// LoginResult is the issued credential: the encoded token string and its
// expiry timestamp.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthService implements registration and login.
type AuthService interface {
	// Register validates all fields and uniqueness, collecting every
	// violation into a single *domain.ValidationError.
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)

	// Login verifies the credential and issues a signed token. Any failure
	// surfaces as domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}
