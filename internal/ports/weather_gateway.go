package ports

import (
	"context"

	"weatherdeck.app/internal/core/forecast"
)

// ForecastResult is a parsed three-day forecast plus the timezone the server resolved
type ForecastResult struct {
	Bundle   *forecast.CityWeatherBundle `json:"bundle"`
	Timezone string                      `json:"timezone"`
}

// WeatherGateway defines the contract for the remote weather and geocoding endpoints
type WeatherGateway interface {
	FetchWeather(ctx context.Context, location forecast.Location, unit forecast.MeasurementUnit) (*ForecastResult, error)
	SearchLocations(ctx context.Context, query string) ([]forecast.Location, error)
}
