package ports

import (
	"context"

	"github.com/awesomeeats/restaurant-api/internal/core/domain"
)

// EventFeed stores the capped recent-events feed.
type EventFeed interface {
	// Append adds an event to the head of the feed, trimming it to
	// domain.RecentEventsLimit entries.
	Append(ctx context.Context, event *domain.Event) error

	// Recent returns up to limit events, newest first.
	Recent(ctx context.Context, limit int64) ([]domain.Event, error)

	// FindByID returns the event or domain.ErrEventNotFound.
	FindByID(ctx context.Context, id string) (*domain.Event, error)
}
