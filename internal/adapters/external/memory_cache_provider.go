package external

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"weatherdeck.app/internal/ports"
	"weatherdeck.app/pkg/errors"
)

const memoryCleanupInterval = 10 * time.Minute

// MemoryCacheProvider implements CacheProvider on top of an in-process go-cache store
type MemoryCacheProvider struct {
	cache *gocache.Cache
	stats cacheStats
}

// NewMemoryCacheProvider creates a provider whose entries expire after defaultTTL when Set is
// given a non-positive TTL. A non-positive defaultTTL keeps such entries until deleted.
func NewMemoryCacheProvider(defaultTTL time.Duration) *MemoryCacheProvider {
	if defaultTTL <= 0 {
		defaultTTL = gocache.NoExpiration
	}
	return &MemoryCacheProvider{
		cache: gocache.New(defaultTTL, memoryCleanupInterval),
	}
}

func (c *MemoryCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.NewValidationError("cache key cannot be empty")
	}

	value, found := c.cache.Get(key)
	if !found {
		c.stats.recordMiss()
		return nil, errors.NewNotFoundError("cache miss")
	}

	data, ok := value.([]byte)
	if !ok {
		c.stats.recordMiss()
		return nil, errors.NewCacheError("unexpected value type in memory cache", nil)
	}

	c.stats.recordHit()
	return data, nil
}

func (c *MemoryCacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}
	if value == nil {
		return errors.NewValidationError("cache value cannot be nil")
	}
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}

	c.cache.Set(key, value, ttl)
	return nil
}

func (c *MemoryCacheProvider) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}

	c.cache.Delete(key)
	return nil
}

func (c *MemoryCacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.NewValidationError("cache key cannot be empty")
	}

	_, found := c.cache.Get(key)
	return found, nil
}

func (c *MemoryCacheProvider) Clear(ctx context.Context) error {
	c.cache.Flush()
	return nil
}

// ItemCount returns the number of entries, expired ones included until cleanup runs
func (c *MemoryCacheProvider) ItemCount() int {
	return c.cache.ItemCount()
}

// GetStats returns hit/miss counters
func (c *MemoryCacheProvider) GetStats() ports.CacheStats {
	return c.stats.snapshot()
}
