package redis

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/richxcame/ridematch/pkg/resilience"
)

// RetryingClient retries transient failures of the wrapped client under the
// cache retry policy. Missing keys are returned on the first attempt.
type RetryingClient struct {
	inner ClientInterface
}

var _ ClientInterface = (*RetryingClient)(nil)

// WithRetry wraps client so its calls retry transient failures
func WithRetry(client ClientInterface) *RetryingClient {
	return &RetryingClient{inner: client}
}

func retryable[T any](ctx context.Context, name string, op func(context.Context) (T, error)) (T, error) {
	return resilience.Retry(ctx, resilience.CachePolicy(name, IsRetryable), op)
}

func (c *RetryingClient) HGetString(ctx context.Context, key, field string) (string, error) {
	return retryable(ctx, "redis.hget", func(ctx context.Context) (string, error) {
		return c.inner.HGetString(ctx, key, field)
	})
}

func (c *RetryingClient) HSetString(ctx context.Context, key, field, value string) error {
	_, err := retryable(ctx, "redis.hset", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.inner.HSetString(ctx, key, field, value)
	})
	return err
}

func (c *RetryingClient) Delete(ctx context.Context, keys ...string) error {
	_, err := retryable(ctx, "redis.del", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.inner.Delete(ctx, keys...)
	})
	return err
}

// Ping is not retried so readiness reports the current state.
func (c *RetryingClient) Ping(ctx context.Context) error {
	return c.inner.Ping(ctx)
}

func (c *RetryingClient) Close() error {
	return c.inner.Close()
}

// IsRetryable reports whether a redis error is transient.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, redis.Nil) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	msg := strings.ToLower(err.Error())
	for _, permanent := range []string{
		"wrongtype",
		"err syntax",
		"err invalid",
		"noauth",
		"wrongpass",
		"noperm",
		"err unknown",
		"execabort",
	} {
		if strings.Contains(msg, permanent) {
			return false
		}
	}
	for _, transient := range []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"no such host",
		"network is unreachable",
		"i/o timeout",
		"pool timeout",
		"server closed",
		"unexpected eof",
		"loading",
		"busy",
		"masterdown",
		"tryagain",
		"clusterdown",
	} {
		if strings.Contains(msg, transient) {
			return true
		}
	}
	return false
}
