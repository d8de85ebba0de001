package ports

import (
	"time"

	"weatherdeck.app/internal/core/forecast"
)

// WeatherConfig represents gateway configuration
type WeatherConfig struct {
	ForecastBaseURL  string
	GeocodingBaseURL string
	RequestTimeout   time.Duration
	MaxRetries       int
	SearchCount      int
	SearchLanguage   string
}

// StoreConfig represents store configuration
type StoreConfig struct {
	DefaultLocation forecast.Location
	RefreshInterval time.Duration
	FanOutLimit     int
	EventBuffer     int
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port int
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Driver     string
	SQLitePath string
	DSN        string
}

// CacheConfig represents cache configuration
type CacheConfig struct {
	Type      string
	TTL       time.Duration
	RedisAddr string
	KeyPrefix string
}

// ConfigProvider defines the contract for configuration management
type ConfigProvider interface {
	GetWeatherConfig() WeatherConfig
	GetStoreConfig() StoreConfig
	GetServerConfig() ServerConfig
	GetDatabaseConfig() DatabaseConfig
	GetCacheConfig() CacheConfig
}

// Logger defines the contract for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a log field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// StoreMetrics receives store-level counters
type StoreMetrics interface {
	RecordBundleHit()
	RecordBundleMiss()
	RecordFetch(outcome string)
	RecordCoalesced()
	ObserveRefresh(kind string, duration time.Duration)
}

// GatewayMetrics receives per-request counters from the gateway
type GatewayMetrics interface {
	ObserveRequest(operation, outcome string, duration time.Duration)
}
