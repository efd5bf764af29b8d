package market

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/careerforward/career-quest/internal/scoring"
	"github.com/careerforward/career-quest/internal/types"
)

// Cache stores serialized market lookups.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisCache implements Cache on Redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis at addr.
func NewRedisCache(addr, password string, db int) *RedisCache {
	return &RedisCache{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// Ping checks connectivity.
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (r *RedisCache) Close() error {
	return r.client.Close()
}

// Get implements Cache. A missing key is not an error.
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Set implements Cache.
func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// MemoryCache is an in-process Cache with per-entry expiry.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	value   []byte
	expires time.Time
}

// NewMemoryCache creates an empty in-process cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

// Get implements Cache.
func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expires.IsZero() && m.now().After(e.expires) {
		delete(m.entries, key)
		return nil, false, nil
	}
	return e.value, true, nil
}

// Set implements Cache. A zero ttl never expires.
func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.entries[key] = e
	return nil
}

// CachedProvider memoizes an inner provider. Cache failures are logged and fall through.
// Empty results are cached too, so unknown markets are not re-queried until the TTL passes.
type CachedProvider struct {
	inner     scoring.MarketDataProvider
	cache     Cache
	ttl       time.Duration
	namespace string
	logger    *zap.Logger
}

// NewCachedProvider wraps inner with cache.
func NewCachedProvider(inner scoring.MarketDataProvider, cache Cache, ttl time.Duration, logger *zap.Logger) *CachedProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedProvider{inner: inner, cache: cache, ttl: ttl, logger: logger}
}

// WithNamespace prefixes keys so several providers can share one cache.
func (c *CachedProvider) WithNamespace(ns string) *CachedProvider {
	c.namespace = ns
	return c
}

type cachedLookup struct {
	Data *types.MarketData `json:"data"`
}

// CacheKey returns the cache key of a query. Skills are not part of the key.
func CacheKey(q scoring.MarketQuery) string {
	norm := func(s string) string { return strings.ToLower(strings.Join(strings.Fields(s), " ")) }
	return "career-quest:market:v1:" + norm(q.Industry) + "|" + norm(q.Location) + "|" + norm(q.TargetRole)
}

// Lookup implements scoring.MarketDataProvider.
func (c *CachedProvider) Lookup(ctx context.Context, q scoring.MarketQuery) (*types.MarketData, error) {
	key := CacheKey(q)
	if c.namespace != "" {
		key = c.namespace + ":" + key
	}

	raw, ok, err := c.cache.Get(ctx, key)
	switch {
	case err != nil:
		c.logger.Warn("market cache read failed", zap.String("key", key), zap.Error(err))
	case ok:
		var hit cachedLookup
		if err := json.Unmarshal(raw, &hit); err == nil {
			return hit.Data, nil
		}
		c.logger.Warn("discarding corrupt market cache entry", zap.String("key", key))
	}

	md, err := c.inner.Lookup(ctx, q)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(cachedLookup{Data: md}); err == nil {
		if err := c.cache.Set(ctx, key, payload, c.ttl); err != nil {
			c.logger.Warn("market cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return md, nil
}
