package geography

import (
	"context"
	"sync"

	"github.com/richxcame/ridematch/pkg/logger"
	"github.com/richxcame/ridematch/pkg/redis"
	"go.uber.org/zap"
)

// DefaultRedisCacheKey is the hash holding shared province resolutions.
const DefaultRedisCacheKey = "ridematch:province-cache"

// Cache memoizes normalized address -> province. Entries never expire; Clear
// is the only invalidation. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (Province, bool)
	Put(ctx context.Context, key string, province Province)
	Clear(ctx context.Context)
}

// MemoryCache is a process-local Cache. Concurrent puts of the same key are
// last-write-wins.
type MemoryCache struct {
	entries sync.Map
}

// NewMemoryCache creates an empty process-local cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

func (c *MemoryCache) Get(_ context.Context, key string) (Province, bool) {
	v, ok := c.entries.Load(key)
	if !ok {
		return "", false
	}
	return v.(Province), true
}

func (c *MemoryCache) Put(_ context.Context, key string, province Province) {
	c.entries.Store(key, province)
}

func (c *MemoryCache) Clear(_ context.Context) {
	c.entries.Clear()
}

// Len returns the number of cached entries.
func (c *MemoryCache) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// RedisCache shares resolutions between replicas through a single redis hash.
// Redis errors degrade to cache misses.
type RedisCache struct {
	client redis.ClientInterface
	key    string
}

// NewRedisCache creates a redis-backed cache under hashKey
func NewRedisCache(client redis.ClientInterface, hashKey string) *RedisCache {
	if hashKey == "" {
		hashKey = DefaultRedisCacheKey
	}
	return &RedisCache{client: client, key: hashKey}
}

func (c *RedisCache) Get(ctx context.Context, key string) (Province, bool) {
	value, err := c.client.HGetString(ctx, c.key, key)
	if err != nil {
		if !redis.IsNil(err) {
			logger.WarnContext(ctx, "province cache read failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return Province(value), true
}

func (c *RedisCache) Put(ctx context.Context, key string, province Province) {
	if err := c.client.HSetString(ctx, c.key, key, string(province)); err != nil {
		logger.WarnContext(ctx, "province cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *RedisCache) Clear(ctx context.Context) {
	if err := c.client.Delete(ctx, c.key); err != nil {
		logger.WarnContext(ctx, "province cache clear failed", zap.Error(err))
	}
}

// LayeredCache reads through a local cache in front of a shared one.
type LayeredCache struct {
	local  Cache
	shared Cache
}

// NewLayeredCache combines a local and a shared cache
func NewLayeredCache(local, shared Cache) *LayeredCache {
	return &LayeredCache{local: local, shared: shared}
}

func (c *LayeredCache) Get(ctx context.Context, key string) (Province, bool) {
	if p, ok := c.local.Get(ctx, key); ok {
		return p, true
	}
	p, ok := c.shared.Get(ctx, key)
	if ok {
		c.local.Put(ctx, key, p)
	}
	return p, ok
}

func (c *LayeredCache) Put(ctx context.Context, key string, province Province) {
	c.local.Put(ctx, key, province)
	c.shared.Put(ctx, key, province)
}

func (c *LayeredCache) Clear(ctx context.Context) {
	c.local.Clear(ctx)
	c.shared.Clear(ctx)
}
