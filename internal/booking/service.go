package booking

import (
	"context"
	"fmt"
	"log"
)

// Notifier dispatches the two booking emails. Implemented by notify.Notifier.
type Notifier interface {
	StaffRequest(ctx context.Context, appt *Appointment) error
	PatientConfirmation(ctx context.Context, appt *Appointment) error
}

type Service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
	}
}

// Submit runs one booking request through the pipeline:
// validate -> persist -> staff email -> patient email -> mark notified.
// Each step blocks on the previous one and none runs after a failure. A
// record persisted before a failed notification stays in storage with
// notified=false; there is no rollback.
func (s *Service) Submit(ctx context.Context, sub Submission) (*Appointment, error) {
	appt, err := sub.Normalize()
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, appt)
	if err != nil {
		return nil, fmt.Errorf("persist appointment: %w", err)
	}

	if err := s.notifier.StaffRequest(ctx, created); err != nil {
		log.Printf("staff notification failed appointment=%s: %v", created.ID, err)
		return nil, fmt.Errorf("notify staff: %w", err)
	}

	if err := s.notifier.PatientConfirmation(ctx, created); err != nil {
		log.Printf("patient notification failed appointment=%s: %v", created.ID, err)
		return nil, fmt.Errorf("notify patient: %w", err)
	}

	// Both emails are out; a failure here is bookkeeping only.
	if err := s.repo.MarkNotified(ctx, created.ID); err != nil {
		log.Printf("failed to mark appointment %s notified: %v", created.ID, err)
	} else {
		created.Notified = true
	}

	return created, nil
}
