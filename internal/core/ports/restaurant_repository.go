package ports

import (
	"context"

	"github.com/awesomeeats/restaurant-api/internal/core/domain"
)

// RestaurantRepository defines persistence operations for restaurants. The
// public API surface is read-only; Insert backs the admin create route.
type RestaurantRepository interface {
	CountAll(ctx context.Context) (int64, error)

	// FindPage returns restaurants ordered by name ascending, skipping skip
	// records and returning at most limit records.
	FindPage(ctx context.Context, skip, limit int64) ([]domain.Restaurant, error)

	FindByID(ctx context.Context, id string) (*domain.Restaurant, error)

	// Exists reports whether a restaurant with the given id is persisted.
	Exists(ctx context.Context, id string) (bool, error)

	Insert(ctx context.Context, restaurant *domain.Restaurant) (string, error)
}
