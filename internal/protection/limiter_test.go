package protection

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, max int64, window time.Duration) (*rateLimiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return newRateLimiter(client, max, window), mr
}

func TestLimiterAllowsWithinQuota(t *testing.T) {
	limiter, _ := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		decision, err := limiter.Take(ctx, "account-create:user_1", 1)
		require.NoError(t, err)

		assert.True(t, decision.Allowed)
		assert.Equal(t, int64(3-i), decision.Remaining)
	}
}

func TestLimiterDeniesWhenQuotaExhausted(t *testing.T) {
	limiter, _ := newTestLimiter(t, 2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		decision, err := limiter.Take(ctx, "account-create:user_1", 1)
		require.NoError(t, err)
		require.True(t, decision.Allowed)
	}

	decision, err := limiter.Take(ctx, "account-create:user_1", 1)
	require.NoError(t, err)

	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonRateLimit, decision.Reason)
	assert.Equal(t, "rate_limit:account-create:user_1", decision.RuleID)
	assert.Equal(t, int64(0), decision.Remaining)
	assert.False(t, decision.Reset.IsZero())
}

func TestLimiterIsolatesKeys(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	decision, err := limiter.Take(ctx, "account-create:user_1", 1)
	require.NoError(t, err)
	require.True(t, decision.Allowed)

	decision, err = limiter.Take(ctx, "account-create:user_1", 1)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)

	// A different identity has its own window.
	decision, err = limiter.Take(ctx, "account-create:user_2", 1)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestLimiterWindowExpiry(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	decision, err := limiter.Take(ctx, "account-create:user_1", 1)
	require.NoError(t, err)
	require.True(t, decision.Allowed)

	decision, err = limiter.Take(ctx, "account-create:user_1", 1)
	require.NoError(t, err)
	require.False(t, decision.Allowed)

	// Advance past the window; the key expires and quota refills.
	mr.FastForward(time.Minute + time.Second)

	decision, err = limiter.Take(ctx, "account-create:user_1", 1)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestLimiterFailsClosedWhenRedisDown(t *testing.T) {
	limiter, mr := newTestLimiter(t, 5, time.Minute)
	ctx := context.Background()

	mr.Close()

	decision, err := limiter.Take(ctx, "account-create:user_1", 1)

	assert.Error(t, err)
	assert.False(t, decision.Allowed)
}
