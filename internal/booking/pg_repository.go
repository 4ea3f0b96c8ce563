package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repository needs. Satisfied by
// *pgxpool.Pool in production and by pgxmock in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PgRepository struct {
	db DB
}

func NewPgRepository(db DB) *PgRepository {
	return &PgRepository{db: db}
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment

	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.Phone,
		&a.Date,
		&a.Department,
		&a.Therapist,
		&a.Message,
		&a.Notified,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *PgRepository) Create(ctx context.Context, appt NewAppointment) (*Appointment, error) {
	id := uuid.New()

	row := r.db.QueryRow(ctx, `
		INSERT INTO appointments (id, name, email, phone, date, department, therapist, message, notified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, now())
		RETURNING id, name, email, phone, date, department, therapist, message, notified, created_at
	`, id, appt.Name, appt.Email, appt.Phone, appt.Date, appt.Department, appt.Therapist, appt.Message)

	created, err := scanAppointment(row)
	if err != nil {
		return nil, &StorageError{Op: "insert appointment", Err: err}
	}

	return created, nil
}

func (r *PgRepository) FindCreatedSince(ctx context.Context, threshold time.Time) ([]Appointment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, email, phone, date, department, therapist, message, notified, created_at
		FROM appointments
		WHERE created_at >= $1
		ORDER BY date ASC
	`, threshold)
	if err != nil {
		return nil, &StorageError{Op: "query appointments", Err: err}
	}
	defer rows.Close()

	var result []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, &StorageError{Op: "scan appointment", Err: err}
		}
		result = append(result, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "query appointments", Err: err}
	}

	return result, nil
}

func (r *PgRepository) MarkNotified(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE appointments
		SET notified = true
		WHERE id = $1
	`, id)
	if err != nil {
		return &StorageError{Op: "mark appointment notified", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}
