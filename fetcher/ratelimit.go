package fetcher

import (
	"context"
	"sync"
	"time"
)

// RateLimiter spaces out requests to the random image endpoint.
// The first Wait returns immediately; later calls block until interval has
// passed since the previous one. A zero interval disables limiting.
//
// Example usage:
//
//	limiter := fetcher.NewRateLimiter(time.Second)
//	if err := limiter.Wait(ctx); err != nil {
//	    return err
//	}
//	// ... perform rate-limited request ...
type RateLimiter struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

// NewRateLimiter creates a new rate limiter with the specified interval.
//
// Parameters:
//   - interval: Minimum time between requests (e.g., 1 * time.Second)
//
// Returns:
//   - *RateLimiter: A new rate limiter instance
func NewRateLimiter(interval time.Duration) *RateLimiter {
	return &RateLimiter{interval: interval}
}

// Wait blocks until the caller may send the next request or ctx is done.
// Callers that give up on ctx do not consume a slot.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl == nil || rl.interval <= 0 {
		return ctx.Err()
	}

	rl.mu.Lock()
	now := time.Now()
	slot := rl.next
	if slot.Before(now) {
		slot = now
	}
	prev := rl.next
	rl.next = slot.Add(rl.interval)
	rl.mu.Unlock()

	delay := time.Until(slot)
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		rl.mu.Lock()
		// Give the slot back if nobody queued behind us
		if rl.next.Equal(slot.Add(rl.interval)) {
			rl.next = prev
		}
		rl.mu.Unlock()
		return ctx.Err()
	}
}
