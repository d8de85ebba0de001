// Package api exposes the weather store over HTTP for the presentation layer
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"weatherdeck.app/internal/core/forecast"
	"weatherdeck.app/internal/core/weather"
	"weatherdeck.app/internal/ports"
	"weatherdeck.app/pkg/errors"
)

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port int
}

// WeatherStore is the part of the weather store the HTTP adapter drives
type WeatherStore interface {
	Snapshot() weather.State
	Summaries() map[string]forecast.CityWeatherSummary
	Bundle(ctx context.Context, locationID int64) (*forecast.CityWeatherBundle, error)
	Active() *forecast.Location
	Tracked() []forecast.Location

	EnsureWeather(ctx context.Context, loc forecast.Location, forceRefresh bool) (*forecast.CityWeatherBundle, error)
	RefreshActiveAndTracked(ctx context.Context) error
	RefreshAllTrackedFull(ctx context.Context) weather.RefreshReport
	SetUnit(ctx context.Context, unit forecast.MeasurementUnit) error

	SelectLocation(ctx context.Context, loc forecast.Location) (*forecast.CityWeatherBundle, error)
	AddLocation(ctx context.Context, loc forecast.Location) (bool, error)
	AddAndSelect(ctx context.Context, loc forecast.Location) (*forecast.CityWeatherBundle, error)
	RemoveLocation(ctx context.Context, locationID int64) (bool, error)
	Reorder(ctx context.Context, from, to int) bool
	Search(ctx context.Context, query string) []forecast.Location

	Subscribe() (string, <-chan weather.Event)
	Unsubscribe(id string)
}

type MetricsCollector interface {
	GetMetrics(ctx context.Context) (map[string]interface{}, error)
}

// HTTPServerAdapter implements HTTP server using Gin framework
type HTTPServerAdapter struct {
	router           *gin.Engine
	config           ServerConfig
	store            WeatherStore
	logger           ports.Logger
	metricsCollector MetricsCollector
	healthChecker    ports.SystemHealthChecker
	metricsHandler   http.Handler
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Config              ServerConfig
	Store               WeatherStore
	Logger              ports.Logger
	MetricsCollector    MetricsCollector
	SystemHealthChecker ports.SystemHealthChecker
	// MetricsHandler serves /metrics in the Prometheus format. Optional.
	MetricsHandler http.Handler
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.Store == nil {
		return errors.NewValidationError("weather store is required")
	}
	if opts.Logger == nil {
		return errors.NewValidationError("logger is required")
	}
	if opts.MetricsCollector == nil {
		return errors.NewValidationError("metrics collector is required")
	}
	if opts.SystemHealthChecker == nil {
		return errors.NewValidationError("system health checker is required")
	}
	return nil
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if err := RegisterValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(opts.Logger))

	server := &HTTPServerAdapter{
		router:           router,
		config:           opts.Config,
		store:            opts.Store,
		logger:           opts.Logger,
		metricsCollector: opts.MetricsCollector,
		healthChecker:    opts.SystemHealthChecker,
		metricsHandler:   opts.MetricsHandler,
	}

	server.setupRoutes()
	return server, nil
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/state", s.getState)
		api.GET("/weather/:id", s.getWeather)
		api.GET("/summaries", s.getSummaries)
		api.GET("/search", s.search)

		api.POST("/locations", s.addLocation)
		api.POST("/locations/select", s.selectLocation)
		api.POST("/locations/add-and-select", s.addAndSelect)
		api.POST("/locations/reorder", s.reorder)
		api.DELETE("/locations/:id", s.removeLocation)

		api.PUT("/unit", s.setUnit)
		api.POST("/refresh", s.refresh)
		api.POST("/refresh/all", s.refreshAll)

		api.GET("/events", s.streamEvents)
		api.GET("/health", s.getHealth)
		api.GET("/metrics", s.getMetrics)
	}

	if s.metricsHandler != nil {
		s.router.GET("/metrics", gin.WrapH(s.metricsHandler))
	}
}

// GetRouter returns the router for serving and testing
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}
