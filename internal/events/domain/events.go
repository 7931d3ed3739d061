package domain

import "time"

// EventCreatedEvent is emitted after an event definition is persisted.
type EventCreatedEvent struct {
	EventID   string    `json:"event_id"`
	Name      string    `json:"name"`
	Type      EventType `json:"type"`
	Priority  int       `json:"priority"`
	Timestamp time.Time `json:"timestamp"`
}

// EventUpdatedEvent is emitted after an event definition is replaced.
type EventUpdatedEvent struct {
	EventID   string    `json:"event_id"`
	Name      string    `json:"name"`
	Type      EventType `json:"type"`
	Priority  int       `json:"priority"`
	Timestamp time.Time `json:"timestamp"`
}

// EventDeletedEvent is emitted after an event definition is removed.
type EventDeletedEvent struct {
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
}
