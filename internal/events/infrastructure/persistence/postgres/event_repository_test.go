package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/events7/events7-api/internal/events/domain"
)

func TestTranslateError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "unique violation becomes name taken",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "idx_events_name"},
			want: domain.ErrNameTaken,
		},
		{
			name: "invalid text representation becomes invalid id",
			err:  &pgconn.PgError{Code: "22P02"},
			want: domain.ErrInvalidID,
		},
		{
			name: "wrapped pg error is still translated",
			err:  errors.Join(errors.New("query failed"), &pgconn.PgError{Code: "22P02"}),
			want: domain.ErrInvalidID,
		},
		{
			name: "unrelated pg error passes through",
			err:  &pgconn.PgError{Code: "40001"},
		},
		{
			name: "non-pg error passes through",
			err:  errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := translateError(tt.err)
			if tt.want != nil {
				if !errors.Is(got, tt.want) {
					t.Fatalf("expected %v, got %v", tt.want, got)
				}
				return
			}
			if !errors.Is(got, tt.err) {
				t.Fatalf("expected original error %v, got %v", tt.err, got)
			}
		})
	}
}

func TestEventPOConversionRoundTrip(t *testing.T) {
	t.Parallel()

	event := &domain.Event{
		ID:          "7a9c8a2e-46a5-4b6e-9d4a-0d31f1b3f0aa",
		Name:        "user-signup",
		Description: "Fires on registration",
		Type:        domain.EventTypeApp,
		Priority:    7,
	}

	got := toEvent(toEventPO(event))
	if *got != *event {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, event)
	}
}
