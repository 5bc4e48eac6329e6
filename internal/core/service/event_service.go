package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/awesomeeats/restaurant-api/internal/core/domain"
	"github.com/awesomeeats/restaurant-api/internal/core/ports"
)

type eventService struct {
	feed ports.EventFeed
	log  zerolog.Logger
}

// NewEventService returns an EventService backed by the capped feed store.
func NewEventService(feed ports.EventFeed, log zerolog.Logger) ports.EventService {
	return &eventService{feed: feed, log: log}
}

// Process persists a single published event into the feed. Invoked by
// dispatcher workers after the HTTP layer has already accepted the request.
func (s *eventService) Process(ctx context.Context, in ports.EventInput) error {
	event := &domain.Event{
		ID:       in.ID,
		Name:     in.Name,
		StartAt:  in.StartAt,
		Priority: domain.EventPriority(in.Priority),
	}
	if event.Priority == "" {
		event.Priority = domain.PriorityStandard
	}

	if err := s.feed.Append(ctx, event); err != nil {
		return fmt.Errorf("process event: %w", err)
	}

	s.log.Info().
		Str("event_id", event.ID).
		Str("name", event.Name).
		Str("priority", string(event.Priority)).
		Msg("event published")

	return nil
}

func (s *eventService) Recent(ctx context.Context) ([]domain.Event, error) {
	return s.feed.Recent(ctx, domain.RecentEventsLimit)
}

func (s *eventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	return s.feed.FindByID(ctx, id)
}
