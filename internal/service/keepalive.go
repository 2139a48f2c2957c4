package service

import (
	"context"
	"time"
)

// KeepAlive blocks for d so launched apps stay reachable for a viewer.
// It returns early when ctx is cancelled. A non-positive d returns immediately.
func KeepAlive(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
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
