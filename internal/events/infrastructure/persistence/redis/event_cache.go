package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/events7/events7-api/internal/events/domain"
)

// EventCache stores point-read copies of events keyed by id. List reads
// always go to the primary store.
type EventCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewEventCache(client redis.UniversalClient) *EventCache {
	return &EventCache{
		client: client,
		prefix: "event:",
		ttl:    time.Hour,
	}
}

func (c *EventCache) Set(ctx context.Context, event *domain.Event) error {
	if event == nil {
		return nil
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(event.ID), data, c.ttl).Err()
}

// Get returns (nil, nil) on a cache miss.
func (c *EventCache) Get(ctx context.Context, id string) (*domain.Event, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var event domain.Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *EventCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *EventCache) key(id string) string {
	return c.prefix + id
}
