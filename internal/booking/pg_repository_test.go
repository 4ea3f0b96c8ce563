package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

var appointmentColumns = []string{
	"id", "name", "email", "phone", "date", "department", "therapist", "message", "notified", "created_at",
}

func TestPgRepositoryCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	date := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	created := time.Now()
	id := uuid.New()

	mock.ExpectQuery("INSERT INTO appointments").
		WithArgs(pgxmock.AnyArg(), "A", "a@x.com", "555", date, "Physio", "Dr. B", "").
		WillReturnRows(pgxmock.NewRows(appointmentColumns).
			AddRow(id, "A", "a@x.com", "555", date, "Physio", "Dr. B", "", false, created))

	repo := NewPgRepository(mock)
	appt, err := repo.Create(context.Background(), NewAppointment{
		Name:       "A",
		Email:      "a@x.com",
		Phone:      "555",
		Date:       date,
		Department: "Physio",
		Therapist:  "Dr. B",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if appt.ID != id {
		t.Errorf("expected id %s, got %s", id, appt.ID)
	}
	if !appt.CreatedAt.Equal(created) {
		t.Errorf("expected createdAt %s, got %s", created, appt.CreatedAt)
	}
	if appt.Notified {
		t.Error("expected new record unnotified")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPgRepositoryCreate_StorageError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO appointments").
		WillReturnError(errors.New("connection refused"))

	repo := NewPgRepository(mock)
	_, err = repo.Create(context.Background(), NewAppointment{Name: "A"})

	var sErr *StorageError
	if !errors.As(err, &sErr) {
		t.Fatalf("expected StorageError, got %v", err)
	}
	if sErr.Op != "insert appointment" {
		t.Errorf("unexpected op %q", sErr.Op)
	}
}

func TestPgRepositoryFindCreatedSince(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	threshold := time.Date(2030, 1, 1, 0, 0, 0, 0, time.Local)
	early := time.Date(2030, 1, 2, 9, 0, 0, 0, time.UTC)
	late := time.Date(2030, 1, 2, 15, 0, 0, 0, time.UTC)
	now := time.Now()

	mock.ExpectQuery("FROM appointments").
		WithArgs(threshold).
		WillReturnRows(pgxmock.NewRows(appointmentColumns).
			AddRow(uuid.New(), "A", "a@x.com", "555", early, "Physio", "Dr. B", "", true, now).
			AddRow(uuid.New(), "C", "c@x.com", "556", late, "Rehab", "Dr. D", "knee pain", false, now))

	repo := NewPgRepository(mock)
	appts, err := repo.FindCreatedSince(context.Background(), threshold)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(appts) != 2 {
		t.Fatalf("expected 2 records, got %d", len(appts))
	}
	if !appts[0].Date.Equal(early) || !appts[1].Date.Equal(late) {
		t.Errorf("expected ascending date order, got %s then %s", appts[0].Date, appts[1].Date)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPgRepositoryFindCreatedSince_Empty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("FROM appointments").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(appointmentColumns))

	repo := NewPgRepository(mock)
	appts, err := repo.FindCreatedSince(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(appts) != 0 {
		t.Fatalf("expected empty result, got %d", len(appts))
	}
}

func TestPgRepositoryMarkNotified(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	id := uuid.New()
	mock.ExpectExec("UPDATE appointments").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewPgRepository(mock)
	if err := repo.MarkNotified(context.Background(), id); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPgRepositoryMarkNotified_Missing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec("UPDATE appointments").
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewPgRepository(mock)
	err = repo.MarkNotified(context.Background(), uuid.New())
	if !errors.Is(err, ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
	}
}
