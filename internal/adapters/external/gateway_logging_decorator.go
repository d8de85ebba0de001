package external

import (
	"context"
	"time"

	"weatherdeck.app/internal/core/forecast"
	"weatherdeck.app/internal/ports"
	"weatherdeck.app/pkg/errors"
)

// GatewayLoggingDecorator decorates a weather gateway with structured logging and request metrics
type GatewayLoggingDecorator struct {
	gateway ports.WeatherGateway
	logger  ports.Logger
	metrics ports.GatewayMetrics
}

// NewGatewayLoggingDecorator creates a new logging decorator. metrics may be nil.
func NewGatewayLoggingDecorator(gateway ports.WeatherGateway, logger ports.Logger, metrics ports.GatewayMetrics) ports.WeatherGateway {
	return &GatewayLoggingDecorator{
		gateway: gateway,
		logger:  logger,
		metrics: metrics,
	}
}

// FetchWeather wraps the gateway call with structured logging
func (d *GatewayLoggingDecorator) FetchWeather(ctx context.Context, location forecast.Location, unit forecast.MeasurementUnit) (*ports.ForecastResult, error) {
	d.logger.Debug("Forecast request started",
		ports.F("location_id", location.ID),
		ports.F("location", location.String()),
		ports.F("unit", unit.String()),
		ports.F("event", "request"))

	startTime := time.Now()
	result, err := d.gateway.FetchWeather(ctx, location, unit)
	duration := time.Since(startTime)
	d.observe("forecast", err, duration)

	if err != nil {
		d.logFailure("Forecast request", err,
			ports.F("location_id", location.ID),
			ports.F("duration_ms", duration.Milliseconds()))
		return nil, err
	}

	fields := []ports.Field{
		ports.F("location_id", location.ID),
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("timezone", result.Timezone),
		ports.F("today_high", result.Bundle.Today.High),
		ports.F("today_low", result.Bundle.Today.Low),
		ports.F("condition", string(result.Bundle.Today.Condition)),
	}
	if result.Bundle.Today.Current != nil {
		fields = append(fields, ports.F("current", *result.Bundle.Today.Current))
	}
	d.logger.Info("Forecast request completed", fields...)

	return result, nil
}

// SearchLocations wraps the gateway call with structured logging
func (d *GatewayLoggingDecorator) SearchLocations(ctx context.Context, query string) ([]forecast.Location, error) {
	startTime := time.Now()
	locations, err := d.gateway.SearchLocations(ctx, query)
	duration := time.Since(startTime)
	d.observe("search", err, duration)

	if err != nil {
		d.logFailure("Location search", err,
			ports.F("query", query),
			ports.F("duration_ms", duration.Milliseconds()))
		return nil, err
	}

	d.logger.Debug("Location search completed",
		ports.F("query", query),
		ports.F("results", len(locations)),
		ports.F("duration_ms", duration.Milliseconds()))
	return locations, nil
}

// logFailure keeps cancellations out of the error log
func (d *GatewayLoggingDecorator) logFailure(op string, err error, fields ...ports.Field) {
	fields = append(fields, ports.F("error", err.Error()), ports.F("error_type", errors.TypeOf(err).String()))
	if errors.IsCancelled(err) {
		d.logger.Debug(op+" cancelled", fields...)
		return
	}
	d.logger.Error(op+" failed", append(fields, ports.F("event", "error"))...)
}

func (d *GatewayLoggingDecorator) observe(op string, err error, duration time.Duration) {
	if d.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = fetchOutcomeLabel(err)
	}
	d.metrics.ObserveRequest(op, outcome, duration)
}

func fetchOutcomeLabel(err error) string {
	switch errors.TypeOf(err) {
	case errors.Cancelled:
		return "cancelled"
	case errors.RemoteError:
		return "remote_error"
	case errors.IncompleteDataError:
		return "incomplete"
	case errors.DecodeError:
		return "decode_error"
	case errors.ConfigurationError:
		return "config_error"
	default:
		return "error"
	}
}
