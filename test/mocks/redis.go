package mocks

import (
	"context"

	redisClient "github.com/richxcame/ridematch/pkg/redis"
	"github.com/stretchr/testify/mock"
)

// MockRedisClient is a mock implementation of the Redis client
type MockRedisClient struct {
	mock.Mock
}

// Ensure MockRedisClient implements ClientInterface
var _ redisClient.ClientInterface = (*MockRedisClient)(nil)

// HGetString mocks reading a hash field
func (m *MockRedisClient) HGetString(ctx context.Context, key, field string) (string, error) {
	args := m.Called(ctx, key, field)
	return args.String(0), args.Error(1)
}

// HSetString mocks writing a hash field
func (m *MockRedisClient) HSetString(ctx context.Context, key, field, value string) error {
	args := m.Called(ctx, key, field, value)
	return args.Error(0)
}

// Delete mocks deleting keys
func (m *MockRedisClient) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

// Ping mocks the connectivity check
func (m *MockRedisClient) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close mocks closing the client
func (m *MockRedisClient) Close() error {
	args := m.Called()
	return args.Error(0)
}
