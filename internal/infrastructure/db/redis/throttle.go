package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 10
	defaultWindow      = 15 * time.Minute
)

// LoginThrottle counts login attempts per normalized username in Redis.
// Key format: login_attempts:<normalized_username>
type LoginThrottle struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
// Non-positive maxAttempts or window fall back to defaults.
func NewLoginThrottle(client *redis.Client, maxAttempts int64, window time.Duration) *LoginThrottle {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginThrottle{client: client, maxAttempts: maxAttempts, window: window}
}

// Allow increments the attempt counter and reports whether the account is
// still inside the allowed window. The TTL starts on the first attempt.
func (t *LoginThrottle) Allow(ctx context.Context, normalized string) (bool, error) {
	key := t.key(normalized)

	n, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("throttle incr: %w", err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
			return false, fmt.Errorf("throttle expire: %w", err)
		}
	}
	return n <= t.maxAttempts, nil
}

// Reset clears the attempt counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, normalized string) error {
	return t.client.Del(ctx, t.key(normalized)).Err()
}

func (t *LoginThrottle) key(normalized string) string {
	return fmt.Sprintf("login_attempts:%s", normalized)
}
