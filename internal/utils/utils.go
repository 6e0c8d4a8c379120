// Package utils holds small context-aware helpers shared across packages.
package utils

import (
	"context"
	"time"
)

// WaitFor blocks for d unless the context is canceled first, in which case
// the context error is returned. Non-positive durations return immediately.
func WaitFor(ctx context.Context, d time.Duration) error {
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
