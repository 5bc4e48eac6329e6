package ports

import (
	"context"

	"github.com/awesomeeats/restaurant-api/internal/core/domain"
)

// RatingRecord is a rating joined with its author's name fields. The join is
// read-only and exists solely to derive a display name.
type RatingRecord struct {
	Rating          domain.Rating
	AuthorFirstName string
	AuthorLastName  string
}

// RatingRepository defines persistence operations for ratings.
type RatingRepository interface {
	// CountByRestaurant returns the total number of ratings for the
	// restaurant, independent of any page window.
	CountByRestaurant(ctx context.Context, restaurantID string) (int64, error)

	// FindPage returns ratings for the restaurant ordered by creation time
	// descending, skipping skip records and returning at most limit records.
	// Callers pass limit = pageSize+1 to detect a next page.
	FindPage(ctx context.Context, restaurantID string, skip, limit int64) ([]RatingRecord, error)

	// FindByID performs a parent-scoped lookup: a rating that exists under a
	// different restaurant is indistinguishable from a missing one.
	FindByID(ctx context.Context, restaurantID, ratingID string) (*RatingRecord, error)

	// Insert persists a new rating and returns its server-assigned id.
	Insert(ctx context.Context, rating *domain.Rating) (string, error)

	// AverageScore computes the arithmetic mean over all scores for the
	// restaurant via a fresh aggregate query.
	AverageScore(ctx context.Context, restaurantID string) (float64, error)
}
