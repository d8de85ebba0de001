package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"weatherdeck.app/internal/adapters/api"
	"weatherdeck.app/internal/adapters/infrastructure"
	"weatherdeck.app/internal/config"
	"weatherdeck.app/internal/core/weather"
	"weatherdeck.app/internal/ports"
)

type Application struct {
	config *config.Config

	// Core
	store *weather.Store

	// Adapters
	httpServer *http.Server
	router     *gin.Engine

	// Infrastructure
	deps     *DependencyContainer
	ports    *ports.ApplicationPorts
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	deps, err := NewDependencyContainer(cfg)
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}

	return NewApplicationWithDependencies(cfg, deps)
}

// NewApplicationWithDependencies creates an application with provided dependencies
func NewApplicationWithDependencies(cfg *config.Config, depContainer *DependencyContainer) (*Application, error) {
	app := &Application{
		config:   cfg,
		deps:     depContainer,
		ports:    depContainer.ApplicationPorts(),
		stopChan: make(chan struct{}),
	}

	if err := app.initializeStore(); err != nil {
		_ = depContainer.Cleanup()
		return nil, fmt.Errorf("initialize store: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		app.store.Close()
		_ = depContainer.Cleanup()
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializeStore() error {
	slog.Info("Initializing weather store...")

	store, err := weather.NewStore(weather.StoreDependencies{
		Gateway:     a.ports.WeatherGateway,
		Cache:       a.ports.BundleCache,
		Preferences: a.ports.PreferencesRepository,
		Logger:      a.ports.Logger,
		Metrics:     a.ports.StoreMetrics,
		Config:      a.ports.ConfigProvider.GetStoreConfig(),
	})
	if err != nil {
		return fmt.Errorf("create weather store: %w", err)
	}

	loadCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Load(loadCtx); err != nil {
		store.Close()
		return fmt.Errorf("load preferences: %w", err)
	}

	a.store = store
	slog.Info("Weather store initialized successfully")
	return nil
}

func (a *Application) initializeAdapters() error {
	slog.Info("Initializing adapters...")

	metricsCollector := infrastructure.NewMetricsCollectorAdapter(infrastructure.MetricsCollectorConfig{
		Metrics: a.deps.Metrics(),
		Cache:   statsProvider(a.deps.CacheProvider()),
	})

	var databaseChecker ports.HealthChecker
	if db, ok := a.ports.Database.(*gorm.DB); ok {
		databaseChecker = infrastructure.NewDatabaseHealthChecker(db, string(a.config.Database.Driver))
	}

	systemHealthChecker := infrastructure.NewSystemHealthChecker(infrastructure.SystemHealthCheckerConfig{
		DatabaseChecker: databaseChecker,
		CacheChecker:    infrastructure.NewCacheHealthChecker(a.deps.CacheProvider(), a.config.Cache.Type.String()),
		GatewayChecker:  infrastructure.NewGatewayHealthChecker(a.deps.Gateway()),
		ConfigProvider:  a.ports.ConfigProvider,
	})

	httpAdapter, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Config: api.ServerConfig{
			Port: a.config.Server.Port,
		},
		Store:               a.store,
		Logger:              a.ports.Logger,
		MetricsCollector:    metricsCollector,
		SystemHealthChecker: systemHealthChecker,
		MetricsHandler:      a.deps.Metrics().Handler(),
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}

	a.router = httpAdapter.GetRouter()

	// WriteTimeout stays zero so the event stream is not cut off
	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", a.config.Server.Port),
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	slog.Info("Adapters initialized successfully")
	return nil
}

func statsProvider(cache ports.CacheProvider) ports.CacheStatsProvider {
	if stats, ok := cache.(ports.CacheStatsProvider); ok {
		return stats
	}
	return nil
}

func (a *Application) Start(ctx context.Context) error {
	slog.Info("Starting application...")

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.startRefresher(ctx, a.ports.ConfigProvider.GetStoreConfig().RefreshInterval)
	}()

	slog.Info("Starting HTTP server", "port", a.config.Server.Port)
	if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}

// startRefresher force-refreshes every tracked city once immediately and then on every
// tick. A non-positive interval disables it.
func (a *Application) startRefresher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		slog.Info("Background refresh disabled")
		return
	}

	slog.Info("Starting background refresher...", "interval", interval.String())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-a.stopChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	a.refreshAll(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Background refresher stopped")
			return
		case <-ticker.C:
			a.refreshAll(ctx)
		}
	}
}

func (a *Application) refreshAll(ctx context.Context) {
	report := a.store.RefreshAllTrackedFull(ctx)
	if len(report.Failed) > 0 {
		slog.Warn("Background refresh had failures",
			"succeeded", len(report.Succeeded),
			"failed", len(report.Failed))
	}
}

func (a *Application) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")

	a.stopOnce.Do(func() { close(a.stopChan) })

	var shutdownErr error
	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.Error("Error shutting down HTTP server", "error", err)
		shutdownErr = fmt.Errorf("shutdown HTTP server: %w", err)
	}

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		slog.Warn("Background refresher did not stop in time")
	}

	a.store.Close()

	if err := a.deps.Cleanup(); err != nil {
		slog.Warn("Error releasing resources", "error", err)
	}

	slog.Info("Application shutdown complete")
	return shutdownErr
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.router
}

// Store returns the weather store
func (a *Application) Store() *weather.Store {
	return a.store
}
