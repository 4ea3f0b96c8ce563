package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/legoephysio/clinic-booking/internal/api"
	"github.com/legoephysio/clinic-booking/internal/booking"
	"github.com/legoephysio/clinic-booking/internal/config"
	"github.com/legoephysio/clinic-booking/internal/db"
	"github.com/legoephysio/clinic-booking/internal/digest"
	"github.com/legoephysio/clinic-booking/internal/notify"
	redisclient "github.com/legoephysio/clinic-booking/internal/redis"
)

const version = "1.0.0"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("api-server starting up")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	log.Printf("running in env=%s http_port=%s digest_hour=%d", cfg.Env, cfg.HTTPPort, cfg.DigestHour)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect Postgres
	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		log.Fatalf("postgres connection error: %v", err)
	}
	defer pgPool.Close()
	log.Println("connected to Postgres")

	// Connect Redis
	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("redis connection error: %v", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Printf("error closing redis: %v", err)
		}
	}()
	log.Println("connected to Redis")

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
	svc := booking.NewService(repo, notifier)

	claimer := redisclient.NewDigestClaimer(rdb, cfg.DigestClaimTTL)
	scheduler := digest.NewScheduler(repo, notifier, claimer, digest.Config{Hour: cfg.DigestHour})
	go scheduler.Run(rootCtx)

	router := api.NewRouter(api.RouterConfig{
		Service: svc,
		PgPool:  pgPool,
		Redis:   rdb,
		Env:     cfg.Env,
		Version: version,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-rootCtx.Done()

	log.Println("shutting down api-server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
}
