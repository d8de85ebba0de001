package infrastructure

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherdeck.app/internal/config"
)

func TestConfigProviderAdapter(t *testing.T) {
	t.Setenv("CACHE_TYPE", "redis")
	t.Setenv("WEATHER_REQUEST_TIMEOUT_SECONDS", "7")
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	provider := NewConfigProviderAdapter(cfg)

	weather := provider.GetWeatherConfig()
	assert.Equal(t, 7*time.Second, weather.RequestTimeout)
	assert.Equal(t, cfg.Weather.ForecastBaseURL, weather.ForecastBaseURL)

	store := provider.GetStoreConfig()
	assert.Equal(t, "Kyiv", store.DefaultLocation.Name)
	assert.NoError(t, store.DefaultLocation.Validate())
	assert.Equal(t, 30*time.Minute, store.RefreshInterval)

	cache := provider.GetCacheConfig()
	assert.Equal(t, "redis", cache.Type)
	assert.Equal(t, 6*time.Hour, cache.TTL)
	assert.Equal(t, "weatherdeck:", cache.KeyPrefix)

	db := provider.GetDatabaseConfig()
	assert.Equal(t, "sqlite", db.Driver)
	assert.Empty(t, db.DSN)

	assert.Equal(t, 8080, provider.GetServerConfig().Port)
}
