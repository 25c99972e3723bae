package util

import (
	"context"
	"time"
)

// Retry calls fn until it succeeds, up to maxAttempts times, doubling the
// delay between attempts from baseDelay. Venue cancel and submit paths use
// it so a transient API error does not abort recovery. Returns the last
// error when every attempt fails; ctx is checked between attempts.
func Retry(ctx context.Context, maxAttempts int, baseDelay time.Duration, fn func() error) error {
	delay := baseDelay
	var lastErr error
	for attempt := 1; ; attempt++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if attempt >= maxAttempts {
			return lastErr
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}
