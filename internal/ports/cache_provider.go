package ports

import (
	"context"
	"time"

	"weatherdeck.app/internal/core/forecast"
)

// CacheProvider defines the contract for caching operations
type CacheProvider interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Clear(ctx context.Context) error
}

// CacheStats represents cache performance metrics
type CacheStats struct {
	Hits        int64
	Misses      int64
	TotalOps    int64
	HitRatio    float64
	LastUpdated time.Time
}

// CacheStatsProvider is implemented by caches that keep their own counters
type CacheStatsProvider interface {
	GetStats() CacheStats
}

// CacheMetrics defines the contract for cache performance tracking
type CacheMetrics interface {
	RecordHit()
	RecordMiss()
	RecordOperation(operation string, duration time.Duration)
}

// CachedBundle is what the bundle cache stores per location
type CachedBundle struct {
	Bundle   *forecast.CityWeatherBundle `json:"bundle"`
	Timezone string                      `json:"timezone"`
}

// BundleCache stores whole bundles keyed by location id. Put replaces atomically.
type BundleCache interface {
	Get(ctx context.Context, locationID int64) (*CachedBundle, error)
	Put(ctx context.Context, locationID int64, entry *CachedBundle) error
	Delete(ctx context.Context, locationID int64) error
	Clear(ctx context.Context) error
}
