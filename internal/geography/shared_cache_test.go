package geography_test

import (
	"context"
	"errors"
	"testing"

	"github.com/richxcame/ridematch/internal/geography"
	"github.com/richxcame/ridematch/pkg/redis"
	"github.com/richxcame/ridematch/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestResolverWithUnavailableSharedCache(t *testing.T) {
	ctx := context.Background()
	down := errors.New("redis: connection refused")

	client := new(mocks.MockRedisClient)
	client.On("HGetString", mock.Anything, geography.DefaultRedisCacheKey, "beira").Return("", down)
	client.On("HSetString", mock.Anything, geography.DefaultRedisCacheKey, "beira", "sofala").Return(down)
	client.On("Delete", mock.Anything, []string{geography.DefaultRedisCacheKey}).Return(down)

	store := new(mocks.MockProvinceStore)
	store.On("LookupProvince", mock.Anything, "beira").Return(geography.Unknown, nil).Once()

	cache := geography.NewLayeredCache(geography.NewMemoryCache(), geography.NewRedisCache(client, ""))
	r := geography.NewResolver(store, cache, geography.ResolverConfig{})

	p, source := r.ResolveWithSource(ctx, "Beira")
	assert.Equal(t, geography.Sofala, p)
	assert.Equal(t, geography.SourceDictionary, source)

	p, source = r.ResolveWithSource(ctx, "BEIRA")
	assert.Equal(t, geography.Sofala, p)
	assert.Equal(t, geography.SourceCache, source)

	assert.NotPanics(t, func() { r.ClearCache(ctx) })

	store.AssertExpectations(t)
	client.AssertExpectations(t)
}

func TestResolverSharesResolutionsThroughRedis(t *testing.T) {
	ctx := context.Background()

	client := new(mocks.MockRedisClient)
	client.On("HGetString", mock.Anything, geography.DefaultRedisCacheKey, "chimoio").Return("manica", nil).Once()

	store := new(mocks.MockProvinceStore)
	cache := geography.NewLayeredCache(geography.NewMemoryCache(), geography.NewRedisCache(client, ""))
	r := geography.NewResolver(store, cache, geography.ResolverConfig{})

	p, source := r.ResolveWithSource(ctx, "Chimoio")
	assert.Equal(t, geography.Manica, p)
	assert.Equal(t, geography.SourceCache, source)

	// backfilled into process memory
	p, _ = r.ResolveWithSource(ctx, "chimoio")
	assert.Equal(t, geography.Manica, p)

	store.AssertNotCalled(t, "LookupProvince", mock.Anything, mock.Anything)
	client.AssertExpectations(t)
}

func TestRedisCacheRetriesTransientFailures(t *testing.T) {
	ctx := context.Background()
	reset := errors.New("read tcp 10.0.0.5:6379: connection reset by peer")

	client := new(mocks.MockRedisClient)
	client.On("HGetString", mock.Anything, geography.DefaultRedisCacheKey, "inhambane").Return("", reset).Once()
	client.On("HGetString", mock.Anything, geography.DefaultRedisCacheKey, "inhambane").Return("inhambane", nil).Once()

	cache := geography.NewRedisCache(redis.WithRetry(client), "")

	p, ok := cache.Get(ctx, "inhambane")
	assert.True(t, ok)
	assert.Equal(t, geography.Inhambane, p)
	client.AssertExpectations(t)
}
