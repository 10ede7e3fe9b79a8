package retry

import (
	"context"
	"time"
)

// Policy is a bounded retry loop with linear backoff. The gateway and the
// repos share it instead of carrying their own sleep loops.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	// Retryable decides whether the loop keeps going. A nil classifier
	// retries every error.
	Retryable func(error) bool
}

// Do runs op until it succeeds, the error is not retryable, the attempt
// budget runs out, or ctx is done. It returns the last error observed.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(lastErr) {
			return lastErr
		}
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * p.BaseDelay):
		}
	}
	return lastErr
}
