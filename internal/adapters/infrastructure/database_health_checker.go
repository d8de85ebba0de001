package infrastructure

import (
	"context"

	"gorm.io/gorm"
	"weatherdeck.app/internal/ports"
)

// DatabaseHealthChecker pings the preferences database
type DatabaseHealthChecker struct {
	db     *gorm.DB
	driver string
}

// NewDatabaseHealthChecker creates a new database health checker
func NewDatabaseHealthChecker(db *gorm.DB, driver string) *DatabaseHealthChecker {
	return &DatabaseHealthChecker{db: db, driver: driver}
}

// Check verifies database connectivity
func (d *DatabaseHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "database",
		Details:   map[string]interface{}{"driver": d.driver},
	}

	if d.db == nil {
		return unhealthy(status, "database instance is nil")
	}

	sqlDB, err := d.db.DB()
	if err != nil {
		return unhealthy(status, "failed to get underlying database connection")
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return unhealthy(status, err.Error())
	}

	stats := sqlDB.Stats()
	status.Status = statusHealthy
	status.Details["open_connections"] = stats.OpenConnections
	return status
}
