package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrAppointmentNotFound = errors.New("appointment not found")

// Repository contains all DB interactions needed by the service and the
// digest job. The repository exclusively owns the storage lifecycle; callers
// never touch the appointments table directly.
type Repository interface {
	// Create performs one durable insert, stamping created_at at call time.
	Create(ctx context.Context, appt NewAppointment) (*Appointment, error)

	// FindCreatedSince returns records with created_at >= threshold,
	// ascending by appointment date. No pagination.
	FindCreatedSince(ctx context.Context, threshold time.Time) ([]Appointment, error)

	// MarkNotified records that both booking emails went out.
	MarkNotified(ctx context.Context, id uuid.UUID) error
}
