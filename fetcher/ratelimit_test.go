package fetcher

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterSpacesCalls(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimiter(50 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, limiter.Wait(ctx))
	assert.Less(t, time.Since(start), 40*time.Millisecond, "first call is not delayed")

	require.NoError(t, limiter.Wait(ctx))
	require.NoError(t, limiter.Wait(ctx))
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestRateLimiterZeroIntervalNeverBlocks(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimiter(0)
	for i := 0; i < 100; i++ {
		require.NoError(t, limiter.Wait(context.Background()))
	}
}

func TestRateLimiterHonoursContext(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimiter(time.Hour)
	require.NoError(t, limiter.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNilRateLimiter(t *testing.T) {
	t.Parallel()

	var limiter *RateLimiter
	assert.NoError(t, limiter.Wait(context.Background()))
}
