package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/events7/events7-api/internal/events/domain"
)

// Postgres SQLSTATEs surfaced by the store that the API boundary reports
// as client errors.
const (
	sqlstateUniqueViolation = "23505"
	sqlstateInvalidText     = "22P02"
)

type EventPO struct {
	ID          string    `gorm:"column:id;type:uuid;primaryKey"`
	Name        string    `gorm:"column:name;type:varchar(255);uniqueIndex;not null"`
	Description string    `gorm:"column:description;type:text;not null"`
	Type        string    `gorm:"column:type;type:varchar(20);not null"`
	Priority    int       `gorm:"column:priority;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (EventPO) TableName() string { return "events" }

type GormEventRepository struct {
	db *gorm.DB
}

func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

func (r *GormEventRepository) Save(ctx context.Context, event *domain.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	po := toEventPO(event)
	if err := r.db.WithContext(ctx).Create(po).Error; err != nil {
		return translateError(err)
	}
	event.CreatedAt = po.CreatedAt
	event.UpdatedAt = po.UpdatedAt
	return nil
}

func (r *GormEventRepository) FindAll(ctx context.Context) ([]*domain.Event, error) {
	var pos []EventPO
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&pos).Error; err != nil {
		return nil, translateError(err)
	}
	events := make([]*domain.Event, len(pos))
	for i := range pos {
		events[i] = toEvent(&pos[i])
	}
	return events, nil
}

func (r *GormEventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	var po EventPO
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&po).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translateError(err)
	}
	return toEvent(&po), nil
}

func (r *GormEventRepository) Update(ctx context.Context, event *domain.Event) error {
	po := toEventPO(event)
	if err := r.db.WithContext(ctx).Save(po).Error; err != nil {
		return translateError(err)
	}
	event.UpdatedAt = po.UpdatedAt
	return nil
}

func (r *GormEventRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&EventPO{})
	if res.Error != nil {
		return 0, translateError(res.Error)
	}
	return res.RowsAffected, nil
}

// translateError maps store-level constraint violations onto domain errors
// so the HTTP boundary can report them as client errors.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlstateUniqueViolation:
			return domain.ErrNameTaken
		case sqlstateInvalidText:
			return domain.ErrInvalidID
		}
	}
	return err
}

func toEventPO(e *domain.Event) *EventPO {
	return &EventPO{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Type:        string(e.Type),
		Priority:    e.Priority,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toEvent(po *EventPO) *domain.Event {
	return &domain.Event{
		ID:          po.ID,
		Name:        po.Name,
		Description: po.Description,
		Type:        domain.EventType(po.Type),
		Priority:    po.Priority,
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
	}
}
