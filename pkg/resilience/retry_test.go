package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastPolicy(attempts int, retryable func(error) bool) RetryPolicy {
	return RetryPolicy{
		Name:           "test-retry",
		MaxAttempts:    attempts,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
		Multiplier:     2,
		Retryable:      retryable,
	}
}

func TestRetryRecoversFromTransientFailure(t *testing.T) {
	calls := 0
	got, err := Retry(context.Background(), fastPolicy(3, nil), func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("connection reset")
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Fatalf("expected ok, got %q", got)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestRetryReturnsLastErrorWhenAttemptsRunOut(t *testing.T) {
	last := errors.New("still down")
	calls := 0
	_, err := Retry(context.Background(), fastPolicy(2, nil), func(context.Context) (int, error) {
		calls++
		return 0, last
	})
	if !errors.Is(err, last) {
		t.Fatalf("expected last error, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestRetryStopsOnNonRetryableError(t *testing.T) {
	permanent := errors.New("syntax error")
	calls := 0
	_, err := Retry(context.Background(), fastPolicy(5, func(err error) bool {
		return !errors.Is(err, permanent)
	}), func(context.Context) (int, error) {
		calls++
		return 0, permanent
	})
	if !errors.Is(err, permanent) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single call, got %d", calls)
	}
}

func TestRetryNeverRetriesOpenBreakerOrContextErrors(t *testing.T) {
	for _, cause := range []error{ErrCircuitOpen, context.DeadlineExceeded, context.Canceled} {
		calls := 0
		_, err := Retry(context.Background(), fastPolicy(3, func(error) bool { return true }), func(context.Context) (int, error) {
			calls++
			return 0, cause
		})
		if !errors.Is(err, cause) {
			t.Fatalf("expected %v, got %v", cause, err)
		}
		if calls != 1 {
			t.Fatalf("%v: expected a single call, got %d", cause, calls)
		}
	}
}

func TestRetryHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := Retry(ctx, fastPolicy(3, nil), func(context.Context) (int, error) {
		calls++
		return 1, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("operation should not run on a cancelled context, ran %d times", calls)
	}
}

func TestRetryGivesUpWhenDeadlinePassesDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	policy := RetryPolicy{Name: "slow", MaxAttempts: 5, InitialBackoff: time.Second, MaxBackoff: time.Second}
	start := time.Now()
	_, err := Retry(ctx, policy, func(context.Context) (int, error) {
		return 0, errors.New("timeout")
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Fatalf("retry waited past the context deadline")
	}
}

func TestRetryPolicyBackoff(t *testing.T) {
	p := RetryPolicy{InitialBackoff: 10 * time.Millisecond, MaxBackoff: 30 * time.Millisecond, Multiplier: 2}

	want := []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 30 * time.Millisecond, 30 * time.Millisecond}
	for i, w := range want {
		if got := p.backoff(i + 1); got != w {
			t.Fatalf("attempt %d: expected %v, got %v", i+1, w, got)
		}
	}

	p.Jitter = true
	for i := 0; i < 20; i++ {
		if got := p.backoff(3); got < 0 || got >= 30*time.Millisecond {
			t.Fatalf("jittered backoff out of range: %v", got)
		}
	}
}

func TestRetryRejectsNilOperation(t *testing.T) {
	if _, err := Retry[int](context.Background(), fastPolicy(1, nil), nil); err == nil {
		t.Fatalf("expected error for nil operation")
	}
}
