package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const guardTTL = 5 * time.Minute

// ResetGuard suppresses repeated password-reset emails for the same address
// inside a short window, backed by Redis.
// Key format: pwreset:<email>
type ResetGuard struct {
	client *redis.Client
}

// NewResetGuard creates a ResetGuard wrapping the given Redis client.
func NewResetGuard(client *redis.Client) *ResetGuard {
	return &ResetGuard{client: client}
}

// RecentlyRequested reports whether a reset email went out for this address
// inside the guard window.
func (g *ResetGuard) RecentlyRequested(ctx context.Context, email string) (bool, error) {
	n, err := g.client.Exists(ctx, g.key(email)).Result()
	if err != nil {
		return false, fmt.Errorf("reset guard check: %w", err)
	}
	return n > 0, nil
}

// Mark records that a reset email was sent (expires after guardTTL).
func (g *ResetGuard) Mark(ctx context.Context, email string) error {
	return g.client.Set(ctx, g.key(email), "1", guardTTL).Err()
}

func (g *ResetGuard) key(email string) string {
	return "pwreset:" + email
}
