package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		base    time.Duration
		attempt int
		want    time.Duration
	}{
		{500 * time.Millisecond, 1, 500 * time.Millisecond},
		{500 * time.Millisecond, 2, time.Second},
		{500 * time.Millisecond, 3, 2 * time.Second},
		{0, 3, 0},
		{time.Second, 0, 0},
	}

	for _, tt := range tests {
		if got := exponentialBackoff(tt.base, tt.attempt); got != tt.want {
			t.Errorf("exponentialBackoff(%v, %d) = %v, want %v", tt.base, tt.attempt, got, tt.want)
		}
	}
}

func TestRetryPolicy_Run(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name      string
		policy    RetryPolicy
		failures  int
		wantCalls int
		wantErr   error
	}{
		{name: "succeeds first time", policy: RetryPolicy{MaxAttempts: 3}, failures: 0, wantCalls: 1},
		{name: "succeeds on last attempt", policy: RetryPolicy{MaxAttempts: 3}, failures: 2, wantCalls: 3},
		{name: "gives up after max attempts", policy: RetryPolicy{MaxAttempts: 3}, failures: 5, wantCalls: 3, wantErr: errBoom},
		{name: "zero attempts means default", policy: RetryPolicy{}, failures: 5, wantCalls: 3, wantErr: errBoom},
		{name: "single attempt", policy: RetryPolicy{MaxAttempts: 1}, failures: 5, wantCalls: 1, wantErr: errBoom},
		{name: "with backoff", policy: RetryPolicy{MaxAttempts: 2, BackoffBase: time.Millisecond}, failures: 1, wantCalls: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := tt.policy.run(context.Background(), zerolog.Nop(), "test", func(ctx context.Context) error {
				calls++
				if calls <= tt.failures {
					return errBoom
				}
				return nil
			})

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("run() error = %v, want %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryPolicy_RunCancelled(t *testing.T) {
	t.Run("cancelled before first attempt", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		calls := 0
		err := DefaultRetryPolicy().run(ctx, zerolog.Nop(), "test", func(ctx context.Context) error {
			calls++
			return nil
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("run() error = %v, want context.Canceled", err)
		}
		if calls != 0 {
			t.Errorf("calls = %d, want 0", calls)
		}
	})

	t.Run("cancelled during backoff", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		policy := RetryPolicy{MaxAttempts: 3, BackoffBase: time.Hour}

		calls := 0
		err := policy.run(ctx, zerolog.Nop(), "test", func(ctx context.Context) error {
			calls++
			cancel()
			return errors.New("boom")
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("run() error = %v, want context.Canceled", err)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})
}
