package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/awesomeeats/restaurant-api/internal/core/domain"
	"github.com/awesomeeats/restaurant-api/internal/core/ports"
)

// RestaurantService serves the read-only restaurant catalogue.
type RestaurantService struct {
	repo   ports.RestaurantRepository
	logger zerolog.Logger
}

func NewRestaurantService(repo ports.RestaurantRepository, logger zerolog.Logger) *RestaurantService {
	return &RestaurantService{repo: repo, logger: logger}
}

// List returns one page of restaurants ordered by name, using the same
// bounded-overfetch pattern as the ratings listing.
func (s *RestaurantService) List(ctx context.Context, pageIndex, itemsPerPage int) (*ports.ListResult[domain.Restaurant], error) {
	totalCount, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	skip := int64(pageIndex) * int64(itemsPerPage)
	restaurants, err := s.repo.FindPage(ctx, skip, int64(itemsPerPage)+1)
	if err != nil {
		return nil, err
	}

	hasMore := len(restaurants) > itemsPerPage
	if hasMore {
		restaurants = restaurants[:itemsPerPage]
	}

	return &ports.ListResult[domain.Restaurant]{
		Items:      restaurants,
		TotalCount: totalCount,
		HasMore:    hasMore,
	}, nil
}

func (s *RestaurantService) Get(ctx context.Context, id string) (*domain.Restaurant, error) {
	return s.repo.FindByID(ctx, id)
}

// Create adds a catalogue entry. Reached only through the admin-guarded
// route.
func (s *RestaurantService) Create(ctx context.Context, input ports.CreateRestaurantInput) (*domain.Restaurant, error) {
	restaurant := &domain.Restaurant{
		Name:    input.Name,
		Address: input.Address,
	}

	id, err := s.repo.Insert(ctx, restaurant)
	if err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create restaurant")
		return nil, err
	}
	restaurant.ID = id

	s.logger.Info().Str("restaurant_id", id).Str("name", input.Name).Msg("restaurant created")
	return restaurant, nil
}
