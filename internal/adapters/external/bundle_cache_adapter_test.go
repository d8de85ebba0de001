package external

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weatherdeck.app/internal/core/forecast"
	"weatherdeck.app/internal/mocks"
	"weatherdeck.app/internal/ports"
	"weatherdeck.app/pkg/errors"
)

var _ ports.BundleCache = (*BundleCacheAdapter)(nil)

type countingCacheMetrics struct {
	mu     sync.Mutex
	hits   int
	misses int
	ops    []string
}

func (m *countingCacheMetrics) RecordHit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hits++
}

func (m *countingCacheMetrics) RecordMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.misses++
}

func (m *countingCacheMetrics) RecordOperation(operation string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, operation)
}

func sampleBundle(locationID int64) *forecast.CityWeatherBundle {
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	current := 7
	return &forecast.CityWeatherBundle{
		LocationID: locationID,
		Yesterday:  forecast.DaySnapshot{Date: today.AddDate(0, 0, -1), High: 5, Low: -1, Condition: forecast.ConditionClear},
		Today: forecast.DaySnapshot{
			Date: today, High: 9, Low: 2, Current: &current, Condition: forecast.ConditionRain,
			Hourly: []forecast.HourlyReading{{Hour: 0, Temperature: 2.5}, {Hour: 13, Temperature: 8.9}},
		},
		Tomorrow:  forecast.DaySnapshot{Date: today.AddDate(0, 0, 1), High: 11, Low: 4, Condition: forecast.ConditionCloudy},
		Unit:      forecast.UnitMetric,
		FetchedAt: today.Add(14 * time.Hour),
	}
}

func TestBundleCacheAdapter_RoundTrip(t *testing.T) {
	metrics := &countingCacheMetrics{}
	cache := NewBundleCacheAdapter(NewMemoryCacheProvider(time.Hour), metrics, time.Hour)
	ctx := context.Background()

	_, err := cache.Get(ctx, 42)
	assert.True(t, errors.IsNotFoundError(err))

	bundle := sampleBundle(42)
	require.NoError(t, cache.Put(ctx, 42, &ports.CachedBundle{Bundle: bundle, Timezone: "Europe/Kyiv"}))

	got, err := cache.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Kyiv", got.Timezone)
	assert.Equal(t, int64(42), got.Bundle.LocationID)
	assert.True(t, got.Bundle.Today.Date.Equal(bundle.Today.Date))
	require.NotNil(t, got.Bundle.Today.Current)
	assert.Equal(t, 7, *got.Bundle.Today.Current)
	assert.Equal(t, bundle.Today.Hourly, got.Bundle.Today.Hourly)
	assert.Equal(t, forecast.ConditionRain, got.Bundle.Today.Condition)

	assert.Equal(t, 1, metrics.hits)
	assert.Equal(t, 1, metrics.misses)
	assert.Equal(t, []string{"get", "put", "get"}, metrics.ops)
}

func TestBundleCacheAdapter_DeleteAndClear(t *testing.T) {
	cache := NewBundleCacheAdapter(NewMemoryCacheProvider(time.Hour), nil, 0)
	ctx := context.Background()

	for _, id := range []int64{1, 2, 3} {
		require.NoError(t, cache.Put(ctx, id, &ports.CachedBundle{Bundle: sampleBundle(id)}))
	}

	require.NoError(t, cache.Delete(ctx, 1))
	_, err := cache.Get(ctx, 1)
	assert.True(t, errors.IsNotFoundError(err))

	_, err = cache.Get(ctx, 2)
	require.NoError(t, err)

	require.NoError(t, cache.Clear(ctx))
	for _, id := range []int64{2, 3} {
		_, err := cache.Get(ctx, id)
		assert.True(t, errors.IsNotFoundError(err))
	}
}

func TestBundleCacheAdapter_CorruptEntry(t *testing.T) {
	provider := NewMemoryCacheProvider(time.Hour)
	cache := NewBundleCacheAdapter(provider, nil, time.Hour)
	ctx := context.Background()

	require.NoError(t, provider.Set(ctx, "bundle:5", []byte("{not json"), 0))

	_, err := cache.Get(ctx, 5)
	require.Error(t, err)
	assert.Equal(t, errors.CacheError, errors.TypeOf(err))
}

func TestBundleCacheAdapter_PutRejectsNil(t *testing.T) {
	cache := NewBundleCacheAdapter(NewMemoryCacheProvider(time.Hour), nil, time.Hour)

	assert.True(t, errors.IsValidationError(cache.Put(context.Background(), 1, nil)))
	assert.True(t, errors.IsValidationError(cache.Put(context.Background(), 1, &ports.CachedBundle{})))
}

func TestBundleCacheAdapter_UsesProviderTTL(t *testing.T) {
	provider := mocks.NewCacheProvider(t)
	provider.EXPECT().Set(context.Background(), "bundle:9", mock.AnythingOfType("[]uint8"), 90*time.Minute).Return(nil).Once()

	cache := NewBundleCacheAdapter(provider, nil, 90*time.Minute)
	require.NoError(t, cache.Put(context.Background(), 9, &ports.CachedBundle{Bundle: sampleBundle(9)}))
}
