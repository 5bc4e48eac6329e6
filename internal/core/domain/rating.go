package domain

import "time"

// Rating is a single user's score for a restaurant. RestaurantID, UserID and
// CreatedAt are immutable once persisted; ratings are never updated or
// deleted.
type Rating struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	RestaurantID string    `json:"restaurant_id" bson:"restaurant_id"`
	Score        float64   `json:"score" bson:"score"`
	Comment      string    `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UserID       string    `json:"-" bson:"user_id"`
}
