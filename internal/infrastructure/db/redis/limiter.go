package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	attemptWindow = time.Minute
	maxAttempts   = 10
)

// LoginLimiter throttles login attempts per email using a fixed window
// counter in Redis. Key format: login_attempts:<email>
type LoginLimiter struct {
	client *redis.Client
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
func NewLoginLimiter(client *redis.Client) *LoginLimiter {
	return &LoginLimiter{client: client}
}

// Allow reports whether another attempt for this email is permitted. The
// window starts on the first attempt and expires after attemptWindow.
func (l *LoginLimiter) Allow(ctx context.Context, email string) (bool, error) {
	key := l.key(email)

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("login limiter incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, attemptWindow).Err(); err != nil {
			return false, fmt.Errorf("login limiter expire: %w", err)
		}
	}

	return n <= maxAttempts, nil
}

func (l *LoginLimiter) key(email string) string {
	return fmt.Sprintf("login_attempts:%s", email)
}
