package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/awesomeeats/restaurant-api/internal/core/domain"
)

const (
	feedKey     = "events:feed"
	eventKeyFmt = "events:item:%s"
	// eventTTL keeps lookup keys alive well past the point where the feed
	// list has trimmed them away.
	eventTTL = 7 * 24 * time.Hour
)

// EventFeed stores the capped recent-events feed in Redis: a trimmed list for
// the feed itself plus one key per event for id lookups.
type EventFeed struct {
	client *redis.Client
}

func NewEventFeed(client *redis.Client) *EventFeed {
	return &EventFeed{client: client}
}

// Append pushes the event to the head of the feed and trims the list to
// domain.RecentEventsLimit entries.
func (f *EventFeed) Append(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	pipe := f.client.TxPipeline()
	pipe.LPush(ctx, feedKey, payload)
	pipe.LTrim(ctx, feedKey, 0, domain.RecentEventsLimit-1)
	pipe.Set(ctx, fmt.Sprintf(eventKeyFmt, event.ID), payload, eventTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (f *EventFeed) Recent(ctx context.Context, limit int64) ([]domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	entries, err := f.client.LRange(ctx, feedKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}

	events := make([]domain.Event, 0, len(entries))
	for _, entry := range entries {
		var event domain.Event
		if err := json.Unmarshal([]byte(entry), &event); err != nil {
			return nil, fmt.Errorf("decode feed entry: %w", err)
		}
		events = append(events, event)
	}
	return events, nil
}

// FindByID returns the event or domain.ErrEventNotFound.
func (f *EventFeed) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	payload, err := f.client.Get(ctx, fmt.Sprintf(eventKeyFmt, id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("read event: %w", err)
	}

	var event domain.Event
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	return &event, nil
}
