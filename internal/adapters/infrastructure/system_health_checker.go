package infrastructure

import (
	"context"

	"weatherdeck.app/internal/ports"
)

// SystemHealthChecker aggregates all health checks
type SystemHealthChecker struct {
	checkers       map[string]ports.HealthChecker
	configProvider ports.ConfigProvider
}

// SystemHealthCheckerConfig holds the configuration for creating a system health checker
type SystemHealthCheckerConfig struct {
	DatabaseChecker ports.HealthChecker
	CacheChecker    ports.HealthChecker
	GatewayChecker  ports.HealthChecker
	ConfigProvider  ports.ConfigProvider
}

// NewSystemHealthChecker creates a new system health checker. Nil checkers are skipped.
func NewSystemHealthChecker(config SystemHealthCheckerConfig) *SystemHealthChecker {
	checkers := make(map[string]ports.HealthChecker, 3)
	if config.DatabaseChecker != nil {
		checkers["database"] = config.DatabaseChecker
	}
	if config.CacheChecker != nil {
		checkers["cache"] = config.CacheChecker
	}
	if config.GatewayChecker != nil {
		checkers["gateway"] = config.GatewayChecker
	}
	return &SystemHealthChecker{
		checkers:       checkers,
		configProvider: config.ConfigProvider,
	}
}

// CheckAll performs health checks on all components
func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	results := make(map[string]ports.HealthStatus, len(s.checkers)+1)
	for name, checker := range s.checkers {
		results[name] = checker.Check(ctx)
	}

	if s.configProvider != nil {
		weather := s.configProvider.GetWeatherConfig()
		store := s.configProvider.GetStoreConfig()
		results["config"] = ports.HealthStatus{
			Component: "config",
			Status:    statusHealthy,
			Details: map[string]interface{}{
				"forecast_base_url": weather.ForecastBaseURL,
				"default_location":  store.DefaultLocation.String(),
				"refresh_interval":  store.RefreshInterval.String(),
			},
		}
	}

	return results
}

// Overall folds component statuses into one: unhealthy wins over degraded wins over healthy
func Overall(results map[string]ports.HealthStatus) string {
	overall := statusHealthy
	for _, r := range results {
		switch r.Status {
		case statusUnhealthy:
			return statusUnhealthy
		case statusDegraded:
			overall = statusDegraded
		}
	}
	return overall
}
