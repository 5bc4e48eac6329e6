package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/awesomeeats/restaurant-api/internal/core/domain"
	"github.com/awesomeeats/restaurant-api/internal/core/ports"
)

// RatingService implements listing, lookup and submission of ratings.
type RatingService struct {
	ratings     ports.RatingRepository
	restaurants ports.RestaurantRepository
	logger      zerolog.Logger
}

func NewRatingService(ratings ports.RatingRepository, restaurants ports.RestaurantRepository, logger zerolog.Logger) *RatingService {
	return &RatingService{ratings: ratings, restaurants: restaurants, logger: logger}
}

// List returns one page of ratings for a restaurant, newest first, along with
// the exact total and a has-more flag.
//
// The repository is asked for itemsPerPage+1 records: when the extra record
// comes back there is a next page, and the extra record is dropped before
// returning. The separate count query is deliberate: UIs need the true
// total, not just a has-more flag, so this pays for two queries per call.
func (s *RatingService) List(ctx context.Context, restaurantID string, pageIndex, itemsPerPage int) (*ports.ListResult[ports.RatingView], error) {
	totalCount, err := s.ratings.CountByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	skip := int64(pageIndex) * int64(itemsPerPage)
	records, err := s.ratings.FindPage(ctx, restaurantID, skip, int64(itemsPerPage)+1)
	if err != nil {
		return nil, err
	}

	hasMore := len(records) > itemsPerPage
	if hasMore {
		records = records[:itemsPerPage]
	}

	items := make([]ports.RatingView, 0, len(records))
	for _, r := range records {
		items = append(items, toRatingView(r))
	}

	s.logger.Debug().
		Str("restaurant_id", restaurantID).
		Int64("total", totalCount).
		Int("page", pageIndex).
		Bool("has_more", hasMore).
		Msg("ratings listed")

	return &ports.ListResult[ports.RatingView]{
		Items:      items,
		TotalCount: totalCount,
		HasMore:    hasMore,
	}, nil
}

// Get returns a single rating scoped to its restaurant. A rating stored
// under a different restaurant is reported as not found.
func (s *RatingService) Get(ctx context.Context, restaurantID, ratingID string) (*ports.RatingView, error) {
	record, err := s.ratings.FindByID(ctx, restaurantID, ratingID)
	if err != nil {
		return nil, err
	}
	view := toRatingView(*record)
	return &view, nil
}

// Submit persists a new rating and returns the recomputed average for the
// restaurant.
//
// The average is always a fresh aggregate over every persisted score, not an
// incremental running value, so the returned figure is consistent with some
// committed state at read time. Concurrent submitters may each observe a
// slightly different snapshot; no locking is added here.
func (s *RatingService) Submit(ctx context.Context, input ports.SubmitRatingInput) (*ports.NewRatingResult, error) {
	exists, err := s.restaurants.Exists(ctx, input.RestaurantID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrRestaurantNotFound
	}

	rating := &domain.Rating{
		RestaurantID: input.RestaurantID,
		Score:        input.Score,
		Comment:      input.Comment,
		CreatedAt:    time.Now().UTC(),
		UserID:       input.UserID,
	}

	id, err := s.ratings.Insert(ctx, rating)
	if err != nil {
		s.logger.Error().Err(err).Str("restaurant_id", input.RestaurantID).Msg("failed to insert rating")
		return nil, err
	}

	average, err := s.ratings.AverageScore(ctx, input.RestaurantID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("rating_id", id).
		Str("restaurant_id", input.RestaurantID).
		Float64("score", input.Score).
		Msg("rating submitted")

	return &ports.NewRatingResult{
		RestaurantID: input.RestaurantID,
		AverageScore: roundScore(average),
	}, nil
}

// roundScore rounds to 2 decimals, half away from zero.
func roundScore(v float64) float64 {
	return math.Round(v*100) / 100
}

func toRatingView(r ports.RatingRecord) ports.RatingView {
	return ports.RatingView{
		ID:        r.Rating.ID,
		Score:     r.Rating.Score,
		Comment:   r.Rating.Comment,
		CreatedAt: r.Rating.CreatedAt,
		Author:    strings.TrimSpace(r.AuthorFirstName + " " + r.AuthorLastName),
	}
}
