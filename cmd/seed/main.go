package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/legoephysio/clinic-booking/internal/booking"
	"github.com/legoephysio/clinic-booking/internal/config"
	"github.com/legoephysio/clinic-booking/internal/db"
)

// Seeds fake booking requests for local development, so the digest and the
// staff inbox views have something to show.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	count := 50
	if v := os.Getenv("SEED_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid SEED_COUNT: %v", err)
		}
		count = n
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	if err := seedAppointments(ctx, booking.NewPgRepository(pool), count); err != nil {
		log.Fatalf("seed appointments: %v", err)
	}

	log.Println("seed complete")
}

func seedAppointments(ctx context.Context, repo *booking.PgRepository, count int) error {
	log.Printf("seeding %d appointment requests", count)

	departments := []string{
		"Physiotherapy",
		"Sports Rehab",
		"Massage Therapy",
		"Chiropractic",
		"Acupuncture",
		"Pediatric Physio",
	}

	for i := 0; i < count; i++ {
		appt := booking.NewAppointment{
			Name:       gofakeit.Name(),
			Email:      gofakeit.Email(),
			Phone:      gofakeit.Phone(),
			Date:       time.Now().Add(time.Duration(gofakeit.Number(1, 21*24)) * time.Hour).Truncate(time.Minute),
			Department: departments[gofakeit.Number(0, len(departments)-1)],
			Therapist:  fmt.Sprintf("Dr. %s", gofakeit.LastName()),
		}
		if gofakeit.Bool() {
			appt.Message = gofakeit.Sentence(8)
		}

		if _, err := repo.Create(ctx, appt); err != nil {
			return err
		}
	}

	log.Println("appointment requests seeded")
	return nil
}
