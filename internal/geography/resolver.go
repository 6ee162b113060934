package geography

import (
	"context"
	"sync"
	"time"

	"github.com/richxcame/ridematch/pkg/logger"
	"go.uber.org/zap"
)

// Source names the layer that classified an address.
type Source string

const (
	SourceEmpty      Source = "empty"
	SourceCache      Source = "cache"
	SourceDatabase   Source = "database"
	SourceDictionary Source = "dictionary"
	SourceNone       Source = "none"
)

// ResolverConfig tunes the Resolver.
type ResolverConfig struct {
	// LookupTimeout bounds each persistent lookup. Zero means no bound.
	LookupTimeout time.Duration
	// CacheNegative also memoizes Unknown results.
	CacheNegative bool
}

// Resolver classifies free-text addresses into provinces. It never fails:
// anything it cannot classify resolves to Unknown.
type Resolver struct {
	store ProvinceStore
	cache Cache
	cfg   ResolverConfig
}

// NewResolver creates a resolver. store may be nil, in which case only the
// cache and the static dictionary are consulted.
func NewResolver(store ProvinceStore, cache Cache, cfg ResolverConfig) *Resolver {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Resolver{store: store, cache: cache, cfg: cfg}
}

// Resolve returns the province of address.
func (r *Resolver) Resolve(ctx context.Context, address string) Province {
	p, _ := r.ResolveWithSource(ctx, address)
	return p
}

// ResolveWithSource returns the province of address and the layer that produced it.
func (r *Resolver) ResolveWithSource(ctx context.Context, address string) (Province, Source) {
	key := Normalize(address)
	if key == "" {
		recordResolution(SourceEmpty)
		return Unknown, SourceEmpty
	}

	if p, ok := r.cache.Get(ctx, key); ok {
		return r.done(ctx, key, p, SourceCache)
	}

	p, lookupErr := r.lookup(ctx, key)
	if p.IsKnown() {
		r.cache.Put(ctx, key, p)
		return r.done(ctx, key, p, SourceDatabase)
	}

	if p, ok := matchDictionary(key); ok {
		r.cache.Put(ctx, key, p)
		return r.done(ctx, key, p, SourceDictionary)
	}

	// A failed lookup is retried next time even when negatives are cached.
	if r.cfg.CacheNegative && lookupErr == nil {
		r.cache.Put(ctx, key, Unknown)
	}
	return r.done(ctx, key, Unknown, SourceNone)
}

// ResolvePair resolves both ends of a route concurrently.
func (r *Resolver) ResolvePair(ctx context.Context, from, to string) (Province, Province) {
	var fromProvince, toProvince Province
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		fromProvince = r.Resolve(ctx, from)
	}()
	go func() {
		defer wg.Done()
		toProvince = r.Resolve(ctx, to)
	}()
	wg.Wait()
	return fromProvince, toProvince
}

// ClearCache drops every memoized resolution. In-flight resolutions simply miss.
func (r *Resolver) ClearCache(ctx context.Context) {
	r.cache.Clear(ctx)
	provinceCacheClearsTotal.Inc()
	logger.InfoContext(ctx, "province cache cleared")
}

func (r *Resolver) lookup(ctx context.Context, key string) (Province, error) {
	if r.store == nil {
		return Unknown, nil
	}

	lookupCtx := ctx
	if r.cfg.LookupTimeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, r.cfg.LookupTimeout)
		defer cancel()
	}

	p, err := r.store.LookupProvince(lookupCtx, key)
	if err != nil {
		provinceLookupFailuresTotal.Inc()
		logger.WarnContext(ctx, "persistent province lookup failed, using dictionary",
			zap.String("address", key),
			zap.Error(err),
		)
		return Unknown, err
	}
	return p, nil
}

func (r *Resolver) done(ctx context.Context, key string, p Province, source Source) (Province, Source) {
	recordResolution(source)
	logger.DebugContext(ctx, "province resolved",
		zap.String("address", key),
		zap.String("province", string(p)),
		zap.String("source", string(source)),
	)
	return p, source
}
