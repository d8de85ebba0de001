package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"weatherdeck.app/pkg/errors"
	"weatherdeck.app/pkg/logger"
	"weatherdeck.app/pkg/validation"
)

const (
	maxRedisDB         = 15
	maxCacheTTLMinutes = 1440
	maxRefreshMinutes  = 1440
	maxPortNumber      = 65535
	maxRequestTimeout  = 120
	maxRetries         = 5
	maxSearchCount     = 100
	maxFanOutLimit     = 64
)

// Config represents the application configuration structure
type Config struct {
	Server   ServerConfig   `split_words:"true"`
	Database DatabaseConfig `split_words:"true"`
	Weather  WeatherConfig  `split_words:"true"`
	Cache    CacheConfig    `split_words:"true"`
	Store    StoreConfig    `split_words:"true"`
	Log      LogConfig      `split_words:"true"`
}

type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// DatabaseDriver selects the GORM dialector for the preferences store
type DatabaseDriver string

const (
	DriverSQLite   DatabaseDriver = "sqlite"
	DriverPostgres DatabaseDriver = "postgres"
)

type DatabaseConfig struct {
	Driver     DatabaseDriver `envconfig:"DB_DRIVER" default:"sqlite"`
	SQLitePath string         `envconfig:"DB_SQLITE_PATH" default:"data/weatherdeck.db"`
	Host       string         `envconfig:"DB_HOST" default:"localhost"`
	Port       int            `envconfig:"DB_PORT" default:"5432"`
	User       string         `envconfig:"DB_USER" default:"postgres"`
	Password   string         `envconfig:"DB_PASSWORD" default:"postgres"`
	Name       string         `envconfig:"DB_NAME" default:"weatherdeck"`
	SSLMode    string         `envconfig:"DB_SSL_MODE" default:"disable"`
}

func (c DatabaseConfig) GetDSN() string {
	if c.Driver == DriverSQLite {
		return c.SQLitePath
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type WeatherConfig struct {
	ForecastBaseURL       string `envconfig:"WEATHER_FORECAST_BASE_URL" default:"https://api.open-meteo.com/v1/forecast"`
	GeocodingBaseURL      string `envconfig:"WEATHER_GEOCODING_BASE_URL" default:"https://geocoding-api.open-meteo.com/v1/search"`
	RequestTimeoutSeconds int    `envconfig:"WEATHER_REQUEST_TIMEOUT_SECONDS" default:"12"`
	MaxRetries            int    `envconfig:"WEATHER_MAX_RETRIES" default:"2"`
	SearchCount           int    `envconfig:"WEATHER_SEARCH_COUNT" default:"10"`
	SearchLanguage        string `envconfig:"WEATHER_SEARCH_LANGUAGE" default:"en"`
	EnableLogging         bool   `envconfig:"WEATHER_ENABLE_LOGGING" default:"true"`
	LogFilePath           string `envconfig:"WEATHER_LOG_FILE_PATH" default:"logs/weather_gateway.log"`
}

// CacheType represents the type of cache to use
type CacheType int

const (
	CacheTypeUnknown CacheType = iota
	CacheTypeMemory
	CacheTypeRedis
)

// String returns the string representation of cache type
func (c CacheType) String() string {
	switch c {
	case CacheTypeMemory:
		return "memory"
	case CacheTypeRedis:
		return "redis"
	default:
		return "unknown"
	}
}

// IsValid checks if the cache type is valid
func (c CacheType) IsValid() bool {
	return c == CacheTypeMemory || c == CacheTypeRedis
}

// CacheTypeFromString converts string to CacheType enum
func CacheTypeFromString(s string) CacheType {
	switch validation.NormalizeKey(s) {
	case "memory":
		return CacheTypeMemory
	case "redis":
		return CacheTypeRedis
	default:
		return CacheTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (c *CacheType) UnmarshalText(text []byte) error {
	*c = CacheTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (c CacheType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type CacheConfig struct {
	Type       CacheType   `envconfig:"CACHE_TYPE" default:"memory"`
	TTLMinutes int         `envconfig:"CACHE_TTL_MINUTES" default:"360"`
	Redis      RedisConfig `split_words:"true"`
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
	KeyPrefix    string `envconfig:"REDIS_KEY_PREFIX" default:"weatherdeck:"`
}

// StoreConfig holds the weather store settings, including the first-run location
type StoreConfig struct {
	DefaultLocationID      int64   `envconfig:"STORE_DEFAULT_LOCATION_ID" default:"703448"`
	DefaultLocationName    string  `envconfig:"STORE_DEFAULT_LOCATION_NAME" default:"Kyiv"`
	DefaultLocationRegion  string  `envconfig:"STORE_DEFAULT_LOCATION_REGION" default:"Kyiv City"`
	DefaultLocationCountry string  `envconfig:"STORE_DEFAULT_LOCATION_COUNTRY" default:"Ukraine"`
	DefaultLatitude        float64 `envconfig:"STORE_DEFAULT_LATITUDE" default:"50.45466"`
	DefaultLongitude       float64 `envconfig:"STORE_DEFAULT_LONGITUDE" default:"30.5238"`
	RefreshIntervalMinutes int     `envconfig:"STORE_REFRESH_INTERVAL_MINUTES" default:"30"`
	FanOutLimit            int     `envconfig:"STORE_FAN_OUT_LIMIT" default:"8"`
	EventBuffer            int     `envconfig:"STORE_EVENT_BUFFER" default:"16"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Store.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

func (d *DatabaseConfig) Validate() error {
	switch d.Driver {
	case DriverSQLite:
		if d.SQLitePath == "" {
			return errors.NewConfigurationError("DB_SQLITE_PATH cannot be empty when DB_DRIVER is sqlite", nil)
		}
		return nil
	case DriverPostgres:
	default:
		return errors.NewConfigurationError("DB_DRIVER must be one of: sqlite, postgres", nil)
	}

	if d.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if d.Port < 1 || d.Port > maxPortNumber {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if d.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if d.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	return d.ValidateSSLMode()
}

func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

func (w *WeatherConfig) Validate() error {
	if err := validateHTTPURL("WEATHER_FORECAST_BASE_URL", w.ForecastBaseURL); err != nil {
		return err
	}
	if err := validateHTTPURL("WEATHER_GEOCODING_BASE_URL", w.GeocodingBaseURL); err != nil {
		return err
	}
	if w.RequestTimeoutSeconds < 1 || w.RequestTimeoutSeconds > maxRequestTimeout {
		return errors.NewConfigurationError("WEATHER_REQUEST_TIMEOUT_SECONDS must be between 1 and 120", nil)
	}
	if w.MaxRetries < 0 || w.MaxRetries > maxRetries {
		return errors.NewConfigurationError("WEATHER_MAX_RETRIES must be between 0 and 5", nil)
	}
	if w.SearchCount < 1 || w.SearchCount > maxSearchCount {
		return errors.NewConfigurationError("WEATHER_SEARCH_COUNT must be between 1 and 100", nil)
	}
	if strings.TrimSpace(w.SearchLanguage) == "" {
		return errors.NewConfigurationError("WEATHER_SEARCH_LANGUAGE cannot be empty", nil)
	}
	if w.EnableLogging && w.LogFilePath == "" {
		return errors.NewConfigurationError("WEATHER_LOG_FILE_PATH cannot be empty when WEATHER_ENABLE_LOGGING is set", nil)
	}
	return nil
}

func validateHTTPURL(name, value string) error {
	if value == "" {
		return errors.NewConfigurationError(name+" cannot be empty", nil)
	}
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		return errors.NewConfigurationError(name+" must start with http:// or https://", nil)
	}
	return nil
}

func (c *CacheConfig) Validate() error {
	if !c.Type.IsValid() {
		return errors.NewConfigurationError("CACHE_TYPE must be one of: memory, redis", nil)
	}
	if c.TTLMinutes < 1 || c.TTLMinutes > maxCacheTTLMinutes {
		return errors.NewConfigurationError("CACHE_TTL_MINUTES must be between 1 and 1440 minutes", nil)
	}

	if c.Type == CacheTypeRedis {
		return c.Redis.Validate()
	}

	return nil
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when using Redis cache", nil)
	}
	if r.DB < 0 || r.DB > maxRedisDB {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 {
		return errors.NewConfigurationError("REDIS_DIAL_TIMEOUT must be at least 1 second", nil)
	}
	if r.ReadTimeout < 1 {
		return errors.NewConfigurationError("REDIS_READ_TIMEOUT must be at least 1 second", nil)
	}
	if r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	if r.KeyPrefix == "" {
		return errors.NewConfigurationError("REDIS_KEY_PREFIX cannot be empty", nil)
	}
	return nil
}

func (s *StoreConfig) Validate() error {
	if !validation.IsNotEmpty(s.DefaultLocationName) {
		return errors.NewConfigurationError("STORE_DEFAULT_LOCATION_NAME cannot be empty", nil)
	}
	if !validation.IsValidLatitude(s.DefaultLatitude) {
		return errors.NewConfigurationError("STORE_DEFAULT_LATITUDE must be between -90 and 90", nil)
	}
	if !validation.IsValidLongitude(s.DefaultLongitude) {
		return errors.NewConfigurationError("STORE_DEFAULT_LONGITUDE must be between -180 and 180", nil)
	}
	if s.RefreshIntervalMinutes < 0 || s.RefreshIntervalMinutes > maxRefreshMinutes {
		return errors.NewConfigurationError("STORE_REFRESH_INTERVAL_MINUTES must be between 0 and 1440 minutes", nil)
	}
	if s.FanOutLimit < 1 || s.FanOutLimit > maxFanOutLimit {
		return errors.NewConfigurationError("STORE_FAN_OUT_LIMIT must be between 1 and 64", nil)
	}
	if s.EventBuffer < 1 {
		return errors.NewConfigurationError("STORE_EVENT_BUFFER must be at least 1", nil)
	}
	return nil
}

func (l *LogConfig) Validate() error {
	if !logger.IsValidLevel(l.Level) {
		return errors.NewConfigurationError("LOG_LEVEL must be one of: debug, info, warn, error", nil)
	}
	return nil
}
