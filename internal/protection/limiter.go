package protection

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// rateLimiter is a fixed-window counter backed by Redis.
//
// The first increment in a window sets the key TTL; the remaining TTL is the
// reset time reported in deny decisions. Redis being unavailable surfaces as
// an error rather than an open gate: write actions should fail closed.
type rateLimiter struct {
	redis  *redis.Client
	max    int64
	window time.Duration
}

func newRateLimiter(redisClient *redis.Client, max int64, window time.Duration) *rateLimiter {
	return &rateLimiter{
		redis:  redisClient,
		max:    max,
		window: window,
	}
}

// Take consumes cost units of quota for key and returns the decision.
//
// The counter is incremented before the limit check, so a denied request
// still burns its attempt, matching how hosted limiters meter refused calls.
func (l *rateLimiter) Take(ctx context.Context, key string, cost int64) (Decision, error) {
	redisKey := limiterKey(key)

	count, err := l.redis.IncrBy(ctx, redisKey, cost).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limiter redis unavailable: %w", err)
	}

	// First hit in the window starts the clock.
	if count == cost {
		if err := l.redis.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return Decision{}, fmt.Errorf("rate limiter redis unavailable: %w", err)
		}
	}

	ttl, err := l.redis.TTL(ctx, redisKey).Result()
	if err != nil || ttl < 0 {
		ttl = l.window
	}
	reset := time.Now().Add(ttl)

	remaining := l.max - count
	if remaining < 0 {
		remaining = 0
	}

	if count > l.max {
		return Decision{
			Reason:    ReasonRateLimit,
			RuleID:    "rate_limit:" + key,
			Remaining: remaining,
			Reset:     reset,
		}, nil
	}

	return Decision{
		Allowed:   true,
		Remaining: remaining,
		Reset:     reset,
	}, nil
}

func limiterKey(key string) string {
	return "rl:" + key
}
