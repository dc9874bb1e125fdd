package cache

import (
	"context"
	"time"
)

// ResetLimiter counts password-reset attempts per email in a fixed window.
// Fail-open: any Redis failure allows the attempt.
type ResetLimiter struct {
	redis  *Redis
	max    int
	window time.Duration
}

func NewResetLimiter(r *Redis, maxAttempts int, window time.Duration) *ResetLimiter {
	return &ResetLimiter{redis: r, max: maxAttempts, window: window}
}

func (l *ResetLimiter) Allow(ctx context.Context, email string) (bool, error) {
	if l == nil || l.redis.isUnavailable() || l.max <= 0 {
		return true, nil
	}

	key := "reset:attempts:" + email
	n, err := l.redis.client.Incr(ctx, key).Result()
	if err != nil {
		l.redis.warnUnavailableOnce(err)
		return true, err
	}
	if n == 1 {
		if err := l.redis.client.Expire(ctx, key, l.window).Err(); err != nil {
			l.redis.warnUnavailableOnce(err)
		}
	}
	return n <= int64(l.max), nil
}
