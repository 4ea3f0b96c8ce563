package redisclient

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Claimer lets exactly one process claim a given day's digest. When several
// instances hit the daily trigger, the losers skip the send silently.
type Claimer interface {
	ClaimDaily(ctx context.Context, day string) (bool, error)
}

type redisDigestClaimer struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDigestClaimer creates a claimer backed by a per-day Redis key.
func NewDigestClaimer(client *redis.Client, ttl time.Duration) Claimer {
	return &redisDigestClaimer{
		client: client,
		ttl:    ttl,
	}
}

func (c *redisDigestClaimer) ClaimDaily(ctx context.Context, day string) (bool, error) {
	key := fmt.Sprintf("digest:sent:%s", day)

	// The value is informational only; the claim is never released, it
	// expires after the TTL.
	holder, _ := os.Hostname()

	ok, err := c.client.SetNX(ctx, key, holder, c.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim digest day: %w", err)
	}

	return ok, nil
}
