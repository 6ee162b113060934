package redis

import (
	"context"
)

// ClientInterface defines the Redis operations used by the service
type ClientInterface interface {
	HGetString(ctx context.Context, key, field string) (string, error)
	HSetString(ctx context.Context, key, field, value string) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}

// Ensure Client implements ClientInterface
var _ ClientInterface = (*Client)(nil)
