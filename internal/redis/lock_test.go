package redisclient

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestClaimDaily_FirstClaimWins(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	claimer := NewDigestClaimer(client, 48*time.Hour)

	ok, err := claimer.ClaimDaily(context.Background(), "2026-03-10")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !ok {
		t.Fatal("expected first claim to be granted")
	}

	ok, err = claimer.ClaimDaily(context.Background(), "2026-03-10")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ok {
		t.Fatal("expected second claim for the same day to be denied")
	}
}

func TestClaimDaily_DifferentDaysAreIndependent(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	claimer := NewDigestClaimer(client, 48*time.Hour)

	for _, day := range []string{"2026-03-10", "2026-03-11"} {
		ok, err := claimer.ClaimDaily(context.Background(), day)
		if err != nil {
			t.Fatalf("claim %s: %v", day, err)
		}
		if !ok {
			t.Fatalf("expected claim for %s to be granted", day)
		}
	}
}

func TestClaimDaily_ClaimExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	claimer := NewDigestClaimer(client, time.Minute)

	if _, err := claimer.ClaimDaily(context.Background(), "2026-03-10"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	mr.FastForward(2 * time.Minute)

	ok, err := claimer.ClaimDaily(context.Background(), "2026-03-10")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !ok {
		t.Fatal("expected claim to be grantable again after expiry")
	}
}
