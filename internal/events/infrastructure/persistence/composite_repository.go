package persistence

import (
	"context"

	"github.com/events7/events7-api/internal/events/domain"
)

// Cache is the subset of cache behavior the composite repository needs.
type Cache interface {
	Set(ctx context.Context, event *domain.Event) error
	Get(ctx context.Context, id string) (*domain.Event, error)
	Delete(ctx context.Context, id string) error
}

type compositeEventRepository struct {
	store domain.EventRepository
	cache Cache
}

// NewCompositeEventRepository layers a read-through cache over the primary
// store. Cache failures never fail the underlying operation.
func NewCompositeEventRepository(store domain.EventRepository, cache Cache) domain.EventRepository {
	return &compositeEventRepository{store: store, cache: cache}
}

func (r *compositeEventRepository) Save(ctx context.Context, event *domain.Event) error {
	if err := r.store.Save(ctx, event); err != nil {
		return err
	}
	_ = r.cache.Set(ctx, event)
	return nil
}

func (r *compositeEventRepository) FindAll(ctx context.Context) ([]*domain.Event, error) {
	// List queries bypass the cache; there is no index key to serve them.
	return r.store.FindAll(ctx)
}

func (r *compositeEventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	if event, err := r.cache.Get(ctx, id); err == nil && event != nil {
		return event, nil
	}

	event, err := r.store.FindByID(ctx, id)
	if err != nil || event == nil {
		return event, err
	}

	_ = r.cache.Set(ctx, event)
	return event, nil
}

func (r *compositeEventRepository) Update(ctx context.Context, event *domain.Event) error {
	if err := r.store.Update(ctx, event); err != nil {
		return err
	}
	_ = r.cache.Set(ctx, event)
	return nil
}

func (r *compositeEventRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	affected, err := r.store.DeleteByID(ctx, id)
	if err != nil {
		return 0, err
	}
	_ = r.cache.Delete(ctx, id)
	return affected, nil
}
