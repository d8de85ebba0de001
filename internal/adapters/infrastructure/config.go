package infrastructure

import (
	"time"

	"weatherdeck.app/internal/config"
	"weatherdeck.app/internal/core/forecast"
	"weatherdeck.app/internal/ports"
)

// ConfigProviderAdapter implements the ConfigProvider port
type ConfigProviderAdapter struct {
	config *config.Config
}

// NewConfigProviderAdapter creates a new config provider adapter
func NewConfigProviderAdapter(cfg *config.Config) *ConfigProviderAdapter {
	return &ConfigProviderAdapter{
		config: cfg,
	}
}

// GetWeatherConfig returns gateway configuration
func (c *ConfigProviderAdapter) GetWeatherConfig() ports.WeatherConfig {
	w := c.config.Weather
	return ports.WeatherConfig{
		ForecastBaseURL:  w.ForecastBaseURL,
		GeocodingBaseURL: w.GeocodingBaseURL,
		RequestTimeout:   time.Duration(w.RequestTimeoutSeconds) * time.Second,
		MaxRetries:       w.MaxRetries,
		SearchCount:      w.SearchCount,
		SearchLanguage:   w.SearchLanguage,
	}
}

// GetStoreConfig returns store configuration
func (c *ConfigProviderAdapter) GetStoreConfig() ports.StoreConfig {
	s := c.config.Store
	return ports.StoreConfig{
		DefaultLocation: forecast.Location{
			ID:        s.DefaultLocationID,
			Name:      s.DefaultLocationName,
			Region:    s.DefaultLocationRegion,
			Country:   s.DefaultLocationCountry,
			Latitude:  s.DefaultLatitude,
			Longitude: s.DefaultLongitude,
		},
		RefreshInterval: time.Duration(s.RefreshIntervalMinutes) * time.Minute,
		FanOutLimit:     s.FanOutLimit,
		EventBuffer:     s.EventBuffer,
	}
}

// GetServerConfig returns server configuration
func (c *ConfigProviderAdapter) GetServerConfig() ports.ServerConfig {
	return ports.ServerConfig{
		Port: c.config.Server.Port,
	}
}

// GetDatabaseConfig returns database configuration without credentials
func (c *ConfigProviderAdapter) GetDatabaseConfig() ports.DatabaseConfig {
	db := c.config.Database
	cfg := ports.DatabaseConfig{
		Driver:     string(db.Driver),
		SQLitePath: db.SQLitePath,
	}
	if db.Driver == config.DriverPostgres {
		cfg.DSN = db.Host + "/" + db.Name
	}
	return cfg
}

// GetCacheConfig returns cache configuration
func (c *ConfigProviderAdapter) GetCacheConfig() ports.CacheConfig {
	cache := c.config.Cache
	cfg := ports.CacheConfig{
		Type: cache.Type.String(),
		TTL:  time.Duration(cache.TTLMinutes) * time.Minute,
	}
	if cache.Type == config.CacheTypeRedis {
		cfg.RedisAddr = cache.Redis.Addr
		cfg.KeyPrefix = cache.Redis.KeyPrefix
	}
	return cfg
}
