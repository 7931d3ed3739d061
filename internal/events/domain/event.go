package domain

import "time"

type EventType string

const (
	EventTypeCrosspromo EventType = "crosspromo"
	EventTypeLiveops    EventType = "liveops"
	EventTypeApp        EventType = "app"
	EventTypeAds        EventType = "ads"
)

// Valid reports whether t is one of the known event types.
func (t EventType) Valid() bool {
	switch t {
	case EventTypeCrosspromo, EventTypeLiveops, EventTypeApp, EventTypeAds:
		return true
	}
	return false
}

// Event is an analytics event definition. The id is a UUID assigned at
// creation; timestamps are store-managed.
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Type        EventType `json:"type"`
	Priority    int       `json:"priority"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
