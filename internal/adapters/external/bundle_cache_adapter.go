package external

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"weatherdeck.app/internal/ports"
	"weatherdeck.app/pkg/errors"
)

const bundleKeyPrefix = "bundle:"

// BundleCacheAdapter bridges the generic CacheProvider to the per-location BundleCache.
// Each Put is a single Set, so a reader sees either the old or the new bundle.
type BundleCacheAdapter struct {
	cacheProvider ports.CacheProvider
	metrics       ports.CacheMetrics
	ttl           time.Duration
}

// NewBundleCacheAdapter creates a bundle cache on top of a generic cache provider. metrics may be nil.
func NewBundleCacheAdapter(cacheProvider ports.CacheProvider, metrics ports.CacheMetrics, ttl time.Duration) *BundleCacheAdapter {
	return &BundleCacheAdapter{
		cacheProvider: cacheProvider,
		metrics:       metrics,
		ttl:           ttl,
	}
}

func bundleKey(locationID int64) string {
	return bundleKeyPrefix + strconv.FormatInt(locationID, 10)
}

// Get retrieves the cached bundle for a location
func (b *BundleCacheAdapter) Get(ctx context.Context, locationID int64) (*ports.CachedBundle, error) {
	start := time.Now()
	data, err := b.cacheProvider.Get(ctx, bundleKey(locationID))
	b.recordOperation("get", start)
	if err != nil {
		if errors.IsNotFoundError(err) {
			b.recordMiss()
		}
		return nil, err
	}

	var entry ports.CachedBundle
	if err := json.Unmarshal(data, &entry); err != nil {
		b.recordMiss()
		return nil, errors.NewCacheError("failed to deserialize cached bundle", err)
	}
	if entry.Bundle == nil {
		b.recordMiss()
		return nil, errors.NewNotFoundError("cached entry has no bundle")
	}

	b.recordHit()
	return &entry, nil
}

// Put stores a bundle, replacing any previous one for the location
func (b *BundleCacheAdapter) Put(ctx context.Context, locationID int64, entry *ports.CachedBundle) error {
	if entry == nil || entry.Bundle == nil {
		return errors.NewValidationError("bundle cannot be nil")
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return errors.NewCacheError("failed to serialize bundle", err)
	}

	start := time.Now()
	err = b.cacheProvider.Set(ctx, bundleKey(locationID), data, b.ttl)
	b.recordOperation("put", start)
	return err
}

// Delete evicts the bundle for a location
func (b *BundleCacheAdapter) Delete(ctx context.Context, locationID int64) error {
	start := time.Now()
	err := b.cacheProvider.Delete(ctx, bundleKey(locationID))
	b.recordOperation("delete", start)
	return err
}

// Clear evicts every bundle
func (b *BundleCacheAdapter) Clear(ctx context.Context) error {
	start := time.Now()
	err := b.cacheProvider.Clear(ctx)
	b.recordOperation("clear", start)
	return err
}

func (b *BundleCacheAdapter) recordHit() {
	if b.metrics != nil {
		b.metrics.RecordHit()
	}
}

func (b *BundleCacheAdapter) recordMiss() {
	if b.metrics != nil {
		b.metrics.RecordMiss()
	}
}

func (b *BundleCacheAdapter) recordOperation(op string, start time.Time) {
	if b.metrics != nil {
		b.metrics.RecordOperation(op, time.Since(start))
	}
}
