package utils

import (
	"context"
	"math/rand"
	"time"
)

// Sleep waits for d or until ctx is done. Non-positive durations return immediately.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RandomDelay sleeps for a random duration in [min, max).
func RandomDelay(ctx context.Context, min, max time.Duration) error {
	return Sleep(ctx, Jitter(min, max))
}

// Jitter picks a duration in [min, max); it returns min when the range is empty.
func Jitter(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}
