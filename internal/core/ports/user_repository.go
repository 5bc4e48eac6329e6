package ports

import (
	"context"

	"github.com/awesomeeats/restaurant-api/internal/core/domain"
)

// UserRepository defines the interface for identity persistence.
type UserRepository interface {
	// FindByEmail looks up a user by normalized (lowercased) email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// Create persists a new identity. Returns domain.ErrUserExists when the
	// email is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
