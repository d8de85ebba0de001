package ports

import (
	"context"

	"weatherdeck.app/internal/core/forecast"
)

// PreferencesRepository persists the user's tracked cities, active city and unit.
// Loads return a NotFound error when nothing has been saved yet.
type PreferencesRepository interface {
	LoadTracked(ctx context.Context) ([]forecast.Location, error)
	SaveTracked(ctx context.Context, locations []forecast.Location) error
	LoadActive(ctx context.Context) (*forecast.Location, error)
	SaveActive(ctx context.Context, location *forecast.Location) error
	LoadUnit(ctx context.Context) (forecast.MeasurementUnit, error)
	SaveUnit(ctx context.Context, unit forecast.MeasurementUnit) error
}
