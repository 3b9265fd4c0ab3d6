package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Retry defaults for external model calls
const (
	defaultMaxAttempts = 3
	defaultBackoffBase = 500 * time.Millisecond
)

// RetryPolicy bounds the attempts made against an external capability
type RetryPolicy struct {
	MaxAttempts int
	BackoffBase time.Duration
}

// DefaultRetryPolicy returns three attempts with 500ms exponential backoff
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: defaultMaxAttempts, BackoffBase: defaultBackoffBase}
}

func (p RetryPolicy) attempts() int {
	if p.MaxAttempts <= 0 {
		return defaultMaxAttempts
	}
	return p.MaxAttempts
}

// exponentialBackoff returns the wait before the attempt after the given one
func exponentialBackoff(base time.Duration, attempt int) time.Duration {
	if base <= 0 || attempt < 1 {
		return 0
	}
	return base * time.Duration(1<<(attempt-1))
}

// run calls fn until it succeeds, attempts run out or ctx is done.
// It returns the last error.
func (p RetryPolicy) run(ctx context.Context, logger zerolog.Logger, op string, fn func(ctx context.Context) error) error {
	var lastErr error
	maxAttempts := p.attempts()

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		logger.Warn().
			Err(lastErr).
			Str("op", op).
			Int("attempt", attempt).
			Int("max_attempts", maxAttempts).
			Msg("external call failed")

		if attempt == maxAttempts {
			break
		}

		wait := exponentialBackoff(p.BackoffBase, attempt)
		if wait == 0 {
			continue
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return lastErr
}
