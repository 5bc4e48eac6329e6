package domain

import "time"

// EventPriority classifies how prominently an event is surfaced in the feed.
type EventPriority string

const (
	PriorityLow      EventPriority = "low"
	PriorityStandard EventPriority = "standard"
	PriorityHigh     EventPriority = "high"
)

// Event is an announcement shown on the recent-events feed. The feed is
// transient state capped at RecentEventsLimit entries; it is not a system of
// record.
type Event struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	StartAt  time.Time     `json:"start_at"`
	Priority EventPriority `json:"priority"`
}

// RecentEventsLimit bounds the feed returned by the events listing.
const RecentEventsLimit = 42
