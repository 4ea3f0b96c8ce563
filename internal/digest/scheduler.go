package digest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/legoephysio/clinic-booking/internal/booking"
)

// Repository is the read side the digest needs.
type Repository interface {
	FindCreatedSince(ctx context.Context, threshold time.Time) ([]booking.Appointment, error)
}

// Notifier sends the rendered digest email.
type Notifier interface {
	Digest(ctx context.Context, appts []booking.Appointment, asOf time.Time) error
}

// Claimer decides whether this process owns today's digest. A nil Claimer
// means always fire (single-instance deployments, one-shot runs).
type Claimer interface {
	ClaimDaily(ctx context.Context, day string) (bool, error)
}

type Config struct {
	Hour       int           // local wall-clock hour to fire, 0-23
	RunTimeout time.Duration // per-firing deadline
}

// Scheduler fires the daily digest at a fixed local wall-clock hour. Each
// firing is independent: no state carries between firings, and a firing
// missed while the process was down is simply lost.
type Scheduler struct {
	repo       Repository
	notifier   Notifier
	claimer    Claimer
	hour       int
	runTimeout time.Duration
	now        func() time.Time
}

func NewScheduler(repo Repository, notifier Notifier, claimer Claimer, cfg Config) *Scheduler {
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = 30 * time.Second
	}
	return &Scheduler{
		repo:       repo,
		notifier:   notifier,
		claimer:    claimer,
		hour:       cfg.Hour,
		runTimeout: cfg.RunTimeout,
		now:        time.Now,
	}
}

// Run blocks until ctx is canceled, firing once per day at the configured
// hour. Owned by the process lifecycle: cancellation drops any pending
// trigger.
func (s *Scheduler) Run(ctx context.Context) {
	log.Printf("digest scheduler running, fires daily at %02d:00 local", s.hour)

	for {
		next := nextFiring(s.now(), s.hour)
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			log.Println("digest scheduler stopping")
			return
		case <-timer.C:
			s.fire(ctx)
		}
	}
}

// fire runs one trigger. Every failure is logged and swallowed: the digest
// has no caller to report to and never retries.
func (s *Scheduler) fire(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	if s.claimer != nil {
		day := s.now().Format("2006-01-02")
		ok, err := s.claimer.ClaimDaily(runCtx, day)
		if err != nil {
			log.Printf("digest claim error: %v", err)
			return
		}
		if !ok {
			log.Printf("digest for %s already claimed by another instance, skipping", day)
			return
		}
	}

	if err := s.RunOnce(runCtx); err != nil {
		log.Printf("digest run error: %v", err)
	}
}

// RunOnce queries today's bookings and sends the digest. Sends nothing when
// no record was created since local midnight.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	asOf := s.now()
	appts, err := s.repo.FindCreatedSince(ctx, startOfDay(asOf))
	if err != nil {
		return fmt.Errorf("load today's appointments: %w", err)
	}

	if len(appts) == 0 {
		log.Println("digest: no appointments today, skipping send")
		return nil
	}

	if err := s.notifier.Digest(ctx, appts, asOf); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}

	log.Printf("digest sent appointments=%d", len(appts))
	return nil
}

// nextFiring returns today's firing time if it is still ahead, otherwise
// tomorrow's.
func nextFiring(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// startOfDay is local midnight of t's day.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
