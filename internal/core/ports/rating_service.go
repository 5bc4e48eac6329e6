package ports

import (
	"context"
	"time"
)

// RatingView is the public projection of a rating. Author is the writer's
// first and last name joined and trimmed; a blank name yields an empty
// string, never null.
type RatingView struct {
	ID        string    `json:"id"`
	Score     float64   `json:"score"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Author    string    `json:"author"`
}

// SubmitRatingInput carries a new rating from the transport layer. UserID
// comes from the verified token, never from the request body.
type SubmitRatingInput struct {
	RestaurantID string
	Score        float64
	Comment      string
	UserID       string
}

// NewRatingResult is returned after a successful submission. AverageScore is
// recomputed from all persisted scores and rounded to 2 decimals.
type NewRatingResult struct {
	RestaurantID string  `json:"restaurant_id"`
	AverageScore float64 `json:"average_score"`
}

// RatingService defines use-case operations for ratings.
type RatingService interface {
	List(ctx context.Context, restaurantID string, pageIndex, itemsPerPage int) (*ListResult[RatingView], error)
	Get(ctx context.Context, restaurantID, ratingID string) (*RatingView, error)
	Submit(ctx context.Context, input SubmitRatingInput) (*NewRatingResult, error)
}
