package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/awesomeeats/restaurant-api/internal/core/domain"
	"github.com/awesomeeats/restaurant-api/internal/core/ports"
)

type stubEventFeed struct {
	events []domain.Event
}

func (f *stubEventFeed) Append(_ context.Context, event *domain.Event) error {
	// Newest first, trimmed like the Redis list.
	f.events = append([]domain.Event{*event}, f.events...)
	if len(f.events) > domain.RecentEventsLimit {
		f.events = f.events[:domain.RecentEventsLimit]
	}
	return nil
}

func (f *stubEventFeed) Recent(_ context.Context, limit int64) ([]domain.Event, error) {
	if int64(len(f.events)) > limit {
		return f.events[:limit], nil
	}
	return f.events, nil
}

func (f *stubEventFeed) FindByID(_ context.Context, id string) (*domain.Event, error) {
	for _, e := range f.events {
		if e.ID == id {
			clone := e
			return &clone, nil
		}
	}
	return nil, domain.ErrEventNotFound
}

func TestEventService_Process_DefaultsPriority(t *testing.T) {
	feed := &stubEventFeed{}
	svc := NewEventService(feed, zerolog.Nop())

	err := svc.Process(context.Background(), ports.EventInput{
		ID:      "e1",
		Name:    "opening night",
		StartAt: time.Date(2024, 6, 1, 19, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	event, err := svc.Get(context.Background(), "e1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if event.Priority != domain.PriorityStandard {
		t.Fatalf("expected standard priority, got %q", event.Priority)
	}
}

func TestEventService_Recent_CappedAndNewestFirst(t *testing.T) {
	feed := &stubEventFeed{}
	svc := NewEventService(feed, zerolog.Nop())

	for i := 0; i < domain.RecentEventsLimit+10; i++ {
		if err := svc.Process(context.Background(), ports.EventInput{
			ID:       fmt.Sprintf("e%d", i),
			Name:     "event",
			StartAt:  time.Now(),
			Priority: "low",
		}); err != nil {
			t.Fatalf("Process: %v", err)
		}
	}

	events, err := svc.Recent(context.Background())
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(events) != domain.RecentEventsLimit {
		t.Fatalf("expected feed capped at %d, got %d", domain.RecentEventsLimit, len(events))
	}
}

func TestEventService_Get_NotFound(t *testing.T) {
	svc := NewEventService(&stubEventFeed{}, zerolog.Nop())

	if _, err := svc.Get(context.Background(), "missing"); err != domain.ErrEventNotFound {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}
