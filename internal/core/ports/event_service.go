package ports

import (
	"context"
	"time"

	"github.com/awesomeeats/restaurant-api/internal/core/domain"
)

// EventInput is the DTO passed from the transport layer to EventService. ID
// is assigned by the handler before enqueueing so the caller can be told the
// id while the write completes asynchronously.
type EventInput struct {
	ID       string
	Name     string
	StartAt  time.Time
	Priority string
}

// EventService processes published events and serves the feed.
type EventService interface {
	// Process persists a single event into the feed. Called by dispatcher
	// workers, not by handlers directly.
	Process(ctx context.Context, event EventInput) error

	// Recent returns the feed, newest first, capped at
	// domain.RecentEventsLimit.
	Recent(ctx context.Context) ([]domain.Event, error)

	Get(ctx context.Context, id string) (*domain.Event, error)
}
