package app

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"gorm.io/gorm"
	"weatherdeck.app/internal/adapters/database"
	"weatherdeck.app/internal/adapters/external"
	"weatherdeck.app/internal/adapters/infrastructure"
	"weatherdeck.app/internal/config"
	"weatherdeck.app/internal/ports"
	"weatherdeck.app/pkg/logger"
)

type DependencyContainer struct {
	config *config.Config

	db            *gorm.DB
	cacheProvider ports.CacheProvider
	gateway       *external.OpenMeteoGateway
	metrics       *infrastructure.PrometheusMetrics
	logger        ports.Logger

	ports   *ports.ApplicationPorts
	closers []func() error
}

// DependencyOptions overrides parts of the container, mainly for tests
type DependencyOptions struct {
	HTTPClient *http.Client
	Clock      external.Clock
}

func NewDependencyContainer(cfg *config.Config) (*DependencyContainer, error) {
	return NewDependencyContainerWithOptions(cfg, DependencyOptions{})
}

func NewDependencyContainerWithOptions(cfg *config.Config, opts DependencyOptions) (*DependencyContainer, error) {
	container := &DependencyContainer{
		config: cfg,
	}

	container.initializeLogger()

	if err := container.initializeDatabase(); err != nil {
		_ = container.Cleanup()
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	if err := container.initializeCache(); err != nil {
		_ = container.Cleanup()
		return nil, fmt.Errorf("initialize cache: %w", err)
	}

	container.initializePorts(opts)
	return container, nil
}

func (c *DependencyContainer) initializeLogger() {
	var log ports.Logger = infrastructure.NewSlogLoggerAdapter(slog.Default())

	weatherCfg := c.config.Weather
	if weatherCfg.EnableLogging && weatherCfg.LogFilePath != "" {
		fileLogger, err := infrastructure.NewFileLoggerAdapter(weatherCfg.LogFilePath, logger.ParseLevel(c.config.Log.Level))
		if err != nil {
			slog.Warn("Failed to create file logger, falling back to slog", "error", err)
		} else {
			log = infrastructure.MultiLogger{log, fileLogger}
			c.closers = append(c.closers, fileLogger.Close)
			slog.Info("File logging enabled", "path", weatherCfg.LogFilePath)
		}
	}

	c.logger = log
}

func (c *DependencyContainer) initializeDatabase() error {
	slog.Info("Initializing database connection...", "driver", string(c.config.Database.Driver))

	db, err := database.Open(c.config.Database)
	if err != nil {
		return err
	}

	c.db = db
	c.closers = append(c.closers, func() error { return database.Close(db) })
	slog.Info("Database connection established successfully")
	return nil
}

func (c *DependencyContainer) initializeCache() error {
	provider, err := external.NewCacheProviderFactory().CreateCacheProvider(&c.config.Cache)
	if err != nil {
		return err
	}

	if closer, ok := provider.(io.Closer); ok {
		c.closers = append(c.closers, closer.Close)
	}

	c.cacheProvider = provider
	slog.Info("Cache provider initialized",
		"type", c.config.Cache.Type.String(),
		"ttl_minutes", c.config.Cache.TTLMinutes)
	return nil
}

func (c *DependencyContainer) initializePorts(opts DependencyOptions) {
	slog.Info("Initializing ports...")

	configProvider := infrastructure.NewConfigProviderAdapter(c.config)
	c.metrics = infrastructure.NewPrometheusMetrics()

	c.gateway = external.NewOpenMeteoGateway(external.OpenMeteoGatewayParams{
		Config: configProvider.GetWeatherConfig(),
		Client: opts.HTTPClient,
		Clock:  opts.Clock,
	})

	var gateway ports.WeatherGateway = c.gateway
	if c.config.Weather.EnableLogging {
		gateway = external.NewGatewayLoggingDecorator(gateway, c.logger, c.metrics)
		slog.Info("Weather gateway logging enabled")
	}

	cacheCfg := configProvider.GetCacheConfig()
	bundleCache := external.NewBundleCacheAdapter(c.cacheProvider, c.metrics, cacheCfg.TTL)

	c.ports = &ports.ApplicationPorts{
		WeatherGateway: gateway,
		BundleCache:    bundleCache,

		PreferencesRepository: database.NewPreferencesRepositoryAdapter(c.db),

		CacheMetrics:   c.metrics,
		StoreMetrics:   c.metrics,
		GatewayMetrics: c.metrics,

		ConfigProvider: configProvider,
		Logger:         c.logger,
		Database:       c.db,
		Closers:        c.closers,
	}

	slog.Info("Ports initialized successfully")
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

func (c *DependencyContainer) Database() *gorm.DB {
	return c.db
}

// CacheProvider returns the raw key/value cache behind the bundle cache
func (c *DependencyContainer) CacheProvider() ports.CacheProvider {
	return c.cacheProvider
}

// Gateway returns the undecorated gateway, which also reports circuit breaker states
func (c *DependencyContainer) Gateway() *external.OpenMeteoGateway {
	return c.gateway
}

// Metrics returns the Prometheus collectors shared by cache, gateway and store
func (c *DependencyContainer) Metrics() *infrastructure.PrometheusMetrics {
	return c.metrics
}

// Cleanup closes everything the container opened, newest first
func (c *DependencyContainer) Cleanup() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			slog.Warn("Error closing resource", "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	c.closers = nil
	return firstErr
}
