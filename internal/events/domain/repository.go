package domain

import "context"

type EventRepository interface {
	Save(ctx context.Context, event *Event) error
	FindAll(ctx context.Context) ([]*Event, error)
	// FindByID returns (nil, nil) when no event exists for id.
	FindByID(ctx context.Context, id string) (*Event, error)
	Update(ctx context.Context, event *Event) error
	// DeleteByID returns the number of rows removed.
	DeleteByID(ctx context.Context, id string) (int64, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}
