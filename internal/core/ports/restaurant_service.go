package ports

import (
	"context"

	"github.com/awesomeeats/restaurant-api/internal/core/domain"
)

// CreateRestaurantInput carries a new catalogue entry. Creation is an
// admin-only maintenance operation; the public API surface is read-only.
type CreateRestaurantInput struct {
	Name    string
	Address domain.Address
}

// RestaurantService defines use-case operations for restaurants.
type RestaurantService interface {
	List(ctx context.Context, pageIndex, itemsPerPage int) (*ListResult[domain.Restaurant], error)
	Get(ctx context.Context, id string) (*domain.Restaurant, error)
	Create(ctx context.Context, input CreateRestaurantInput) (*domain.Restaurant, error)
}
