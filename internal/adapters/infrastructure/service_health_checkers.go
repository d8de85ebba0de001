package infrastructure

import (
	"context"

	"weatherdeck.app/internal/ports"
)

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

func unhealthy(status ports.HealthStatus, reason string) ports.HealthStatus {
	status.Status = statusUnhealthy
	status.Error = reason
	return status
}

// Pinger is implemented by caches backed by a remote server
type Pinger interface {
	Ping(ctx context.Context) error
}

// CacheHealthChecker reports the cache backend. Caches without a Ping are always reachable.
type CacheHealthChecker struct {
	cache     ports.CacheProvider
	cacheType string
}

// NewCacheHealthChecker creates a new cache health checker
func NewCacheHealthChecker(cache ports.CacheProvider, cacheType string) *CacheHealthChecker {
	return &CacheHealthChecker{cache: cache, cacheType: cacheType}
}

// Check pings the cache when it supports it and reports its counters
func (c *CacheHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "cache",
		Details:   map[string]interface{}{"type": c.cacheType},
	}

	if c.cache == nil {
		return unhealthy(status, "cache is not configured")
	}

	if pinger, ok := c.cache.(Pinger); ok {
		if err := pinger.Ping(ctx); err != nil {
			return unhealthy(status, err.Error())
		}
	}

	if stats, ok := c.cache.(ports.CacheStatsProvider); ok {
		s := stats.GetStats()
		status.Details["hit_ratio"] = s.HitRatio
		status.Details["total_ops"] = s.TotalOps
	}

	status.Status = statusHealthy
	return status
}

// CircuitReporter exposes per-endpoint circuit breaker states
type CircuitReporter interface {
	CircuitStates() map[string]string
}

// GatewayHealthChecker reports the circuit breaker state of each weather endpoint.
// It never calls the endpoints itself.
type GatewayHealthChecker struct {
	gateway CircuitReporter
}

// NewGatewayHealthChecker creates a new gateway health checker
func NewGatewayHealthChecker(gateway CircuitReporter) *GatewayHealthChecker {
	return &GatewayHealthChecker{gateway: gateway}
}

// Check is unhealthy when every breaker is open and degraded when some are not closed
func (g *GatewayHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "gateway",
		Details:   make(map[string]interface{}),
	}

	if g.gateway == nil {
		return unhealthy(status, "weather gateway is not available")
	}

	states := g.gateway.CircuitStates()
	open, notClosed := 0, 0
	for endpoint, state := range states {
		status.Details[endpoint] = state
		if state != "closed" {
			notClosed++
		}
		if state == "open" {
			open++
		}
	}

	switch {
	case len(states) > 0 && open == len(states):
		return unhealthy(status, "all weather endpoints are failing")
	case notClosed > 0:
		status.Status = statusDegraded
	default:
		status.Status = statusHealthy
	}
	return status
}
