package resilience

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/richxcame/ridematch/pkg/logger"
	"go.uber.org/zap"
)

// RetryPolicy describes how a named operation is retried.
type RetryPolicy struct {
	// Name labels log lines and metrics.
	Name string
	// MaxAttempts counts the first call. Values below 1 mean a single attempt.
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	// Multiplier grows the backoff between attempts. Values below 1 keep it flat.
	Multiplier float64
	// Jitter spreads each backoff uniformly over [0, backoff).
	Jitter bool
	// Retryable classifies errors. Nil retries everything except context
	// errors and ErrCircuitOpen.
	Retryable func(error) bool
}

// StorePolicy fits a read against the ride store. The tier timeout bounds the
// total wait, so the backoff stays short.
func StorePolicy(name string, retryable func(error) bool) RetryPolicy {
	return RetryPolicy{
		Name:           name,
		MaxAttempts:    3,
		InitialBackoff: 50 * time.Millisecond,
		MaxBackoff:     400 * time.Millisecond,
		Multiplier:     2,
		Jitter:         true,
		Retryable:      retryable,
	}
}

// CachePolicy fits a shared cache call where a miss is always acceptable.
func CachePolicy(name string, retryable func(error) bool) RetryPolicy {
	return RetryPolicy{
		Name:           name,
		MaxAttempts:    2,
		InitialBackoff: 20 * time.Millisecond,
		MaxBackoff:     100 * time.Millisecond,
		Multiplier:     2,
		Jitter:         true,
		Retryable:      retryable,
	}
}

// Retry runs op until it succeeds, returns a non-retryable error, runs out of
// attempts or ctx ends. The last error is returned as is.
func Retry[T any](ctx context.Context, policy RetryPolicy, op func(context.Context) (T, error)) (T, error) {
	var zero T
	if op == nil {
		return zero, errors.New("operation cannot be nil")
	}

	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	name := policy.Name
	if name == "" {
		name = "unnamed"
	}

	start := time.Now()
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			recordRetryOutcome(name, time.Since(start), attempt, false)
			return zero, err
		}

		result, err := op(ctx)
		if err == nil {
			recordRetryAttempt(name, true)
			recordRetryOutcome(name, time.Since(start), attempt, true)
			if attempt > 1 {
				logger.InfoContext(ctx, "operation recovered after retry",
					zap.String("operation", name),
					zap.Int("attempt", attempt),
				)
			}
			return result, nil
		}

		recordRetryAttempt(name, false)
		lastErr = err

		if !policy.retryable(err) {
			recordRetryOutcome(name, time.Since(start), attempt, false)
			return zero, err
		}
		if attempt == attempts {
			logger.WarnContext(ctx, "operation failed after retries",
				zap.String("operation", name),
				zap.Int("attempts", attempt),
				zap.Error(err),
			)
			break
		}

		wait := policy.backoff(attempt)
		recordRetryBackoff(name, wait)
		logger.DebugContext(ctx, "retrying operation",
			zap.String("operation", name),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", wait),
			zap.Error(err),
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			recordRetryOutcome(name, time.Since(start), attempt, false)
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	recordRetryOutcome(name, time.Since(start), attempts, false)
	return zero, lastErr
}

// backoff returns the wait after the given failed attempt.
func (p RetryPolicy) backoff(attempt int) time.Duration {
	multiplier := p.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}
	wait := float64(p.InitialBackoff) * math.Pow(multiplier, float64(attempt-1))
	if p.MaxBackoff > 0 && wait > float64(p.MaxBackoff) {
		wait = float64(p.MaxBackoff)
	}

	d := time.Duration(wait)
	if p.Jitter && d > 0 {
		d = time.Duration(rand.Int63n(int64(d)))
	}
	return d
}

func (p RetryPolicy) retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrCircuitOpen) {
		return false
	}
	if p.Retryable != nil {
		return p.Retryable(err)
	}
	return true
}
