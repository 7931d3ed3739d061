package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/events7/events7-api/internal/events/domain"
)

// EventService wraps the event repository with the CRUD use cases and
// publishes lifecycle notifications on successful mutations.
type EventService struct {
	repo      domain.EventRepository
	publisher domain.EventPublisher
	logger    *slog.Logger
}

func NewEventService(repo domain.EventRepository, publisher domain.EventPublisher, logger *slog.Logger) *EventService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventService{repo: repo, publisher: publisher, logger: logger}
}

type CreateEventCommand struct {
	Name        string
	Description string
	Type        domain.EventType
	Priority    int
}

func (s *EventService) Create(ctx context.Context, cmd *CreateEventCommand) (*domain.Event, error) {
	event := &domain.Event{
		Name:        cmd.Name,
		Description: cmd.Description,
		Type:        cmd.Type,
		Priority:    cmd.Priority,
	}
	if err := s.repo.Save(ctx, event); err != nil {
		return nil, err
	}

	s.publish(ctx, event.ID, &domain.EventCreatedEvent{
		EventID:   event.ID,
		Name:      event.Name,
		Type:      event.Type,
		Priority:  event.Priority,
		Timestamp: time.Now(),
	})
	return event, nil
}

func (s *EventService) List(ctx context.Context) ([]*domain.Event, error) {
	return s.repo.FindAll(ctx)
}

// Get returns (nil, nil) when no event exists for id.
func (s *EventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	return s.repo.FindByID(ctx, id)
}

type UpdateEventCommand struct {
	Name        string
	Description string
	Type        domain.EventType
	Priority    int
}

// Update replaces the editable fields of an existing event wholesale.
func (s *EventService) Update(ctx context.Context, id string, cmd *UpdateEventCommand) (*domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}

	event.Name = cmd.Name
	event.Description = cmd.Description
	event.Type = cmd.Type
	event.Priority = cmd.Priority
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}

	s.publish(ctx, event.ID, &domain.EventUpdatedEvent{
		EventID:   event.ID,
		Name:      event.Name,
		Type:      event.Type,
		Priority:  event.Priority,
		Timestamp: time.Now(),
	})
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	affected, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrEventNotFound
	}

	s.publish(ctx, id, &domain.EventDeletedEvent{
		EventID:   id,
		Timestamp: time.Now(),
	})
	return nil
}

// publish is best-effort: a broker outage must not fail the API call.
func (s *EventService) publish(ctx context.Context, key string, event any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, key, event); err != nil {
		s.logger.Error("failed to publish lifecycle event", "key", key, "error", err)
	}
}
