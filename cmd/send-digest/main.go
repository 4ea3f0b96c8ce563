package main

import (
	"context"
	"log"
	"time"

	"github.com/legoephysio/clinic-booking/internal/booking"
	"github.com/legoephysio/clinic-booking/internal/config"
	"github.com/legoephysio/clinic-booking/internal/db"
	"github.com/legoephysio/clinic-booking/internal/digest"
	"github.com/legoephysio/clinic-booking/internal/notify"
)

// One-shot digest run for operators. Bypasses the per-day Redis claim, so a
// manual run can re-send a digest the scheduler already sent.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("send-digest starting")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pgPool, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("postgres connection error: %v", err)
	}
	defer pgPool.Close()

	var sender notify.EmailSender
	if cfg.EmailDisabled {
		log.Println("email disabled, using stub sender")
		sender = notify.NewStubEmailSender()
	} else {
		sender = notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.NotifyInbox,
			FromName:  cfg.FromName,
		})
	}
	notifier := notify.NewNotifier(sender, cfg.NotifyInbox, cfg.ContactEmail)

	repo := booking.NewPgRepository(pgPool)
	scheduler := digest.NewScheduler(repo, notifier, nil, digest.Config{Hour: cfg.DigestHour})

	if err := scheduler.RunOnce(ctx); err != nil {
		log.Fatalf("digest run error: %v", err)
	}

	log.Println("send-digest complete")
}
