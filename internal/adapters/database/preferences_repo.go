package database

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"weatherdeck.app/internal/core/forecast"
	"weatherdeck.app/internal/ports"
	"weatherdeck.app/pkg/errors"
)

const (
	keyTrackedLocations = "tracked_locations"
	keyActiveLocation   = "active_location"
	keyMeasurementUnit  = "measurement_unit"
)

// PreferenceModel is one key/value row of user preferences. Values are JSON, except the unit
// which is stored as its wire token.
type PreferenceModel struct {
	Key       string `gorm:"column:pref_key;primaryKey;size:64"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (PreferenceModel) TableName() string {
	return "preferences"
}

// PreferencesRepositoryAdapter implements the PreferencesRepository port using GORM
type PreferencesRepositoryAdapter struct {
	db *gorm.DB
}

// NewPreferencesRepositoryAdapter creates a new preferences repository adapter
func NewPreferencesRepositoryAdapter(db *gorm.DB) ports.PreferencesRepository {
	return &PreferencesRepositoryAdapter{db: db}
}

// LoadTracked returns the saved tracked locations in display order
func (r *PreferencesRepositoryAdapter) LoadTracked(ctx context.Context) ([]forecast.Location, error) {
	var locations []forecast.Location
	if err := r.loadJSON(ctx, keyTrackedLocations, &locations); err != nil {
		return nil, err
	}
	if locations == nil {
		locations = []forecast.Location{}
	}
	return locations, nil
}

// SaveTracked replaces the tracked locations
func (r *PreferencesRepositoryAdapter) SaveTracked(ctx context.Context, locations []forecast.Location) error {
	if locations == nil {
		locations = []forecast.Location{}
	}
	return r.saveJSON(ctx, keyTrackedLocations, locations)
}

// LoadActive returns the active location. A saved nil comes back as (nil, nil).
func (r *PreferencesRepositoryAdapter) LoadActive(ctx context.Context) (*forecast.Location, error) {
	var location *forecast.Location
	if err := r.loadJSON(ctx, keyActiveLocation, &location); err != nil {
		return nil, err
	}
	return location, nil
}

// SaveActive stores the active location, or clears it when location is nil
func (r *PreferencesRepositoryAdapter) SaveActive(ctx context.Context, location *forecast.Location) error {
	return r.saveJSON(ctx, keyActiveLocation, location)
}

// LoadUnit returns the saved measurement unit
func (r *PreferencesRepositoryAdapter) LoadUnit(ctx context.Context) (forecast.MeasurementUnit, error) {
	value, err := r.load(ctx, keyMeasurementUnit)
	if err != nil {
		return forecast.UnitMetric, err
	}

	unit, err := forecast.UnitFromToken(value)
	if err != nil {
		return forecast.UnitMetric, errors.NewDatabaseError("stored measurement unit is invalid", err)
	}
	return unit, nil
}

// SaveUnit stores the measurement unit
func (r *PreferencesRepositoryAdapter) SaveUnit(ctx context.Context, unit forecast.MeasurementUnit) error {
	if !unit.IsValid() {
		return errors.NewValidationError("invalid measurement unit")
	}
	return r.save(ctx, keyMeasurementUnit, unit.WireToken())
}

func (r *PreferencesRepositoryAdapter) load(ctx context.Context, key string) (string, error) {
	var model PreferenceModel
	result := r.db.WithContext(ctx).Where("pref_key = ?", key).First(&model)
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", errors.NewNotFoundError(key + " not saved")
		}
		return "", errors.NewDatabaseError("failed to load "+key, result.Error)
	}
	return model.Value, nil
}

func (r *PreferencesRepositoryAdapter) save(ctx context.Context, key, value string) error {
	model := PreferenceModel{Key: key, Value: value}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pref_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&model)
	if result.Error != nil {
		return errors.NewDatabaseError("failed to save "+key, result.Error)
	}
	return nil
}

func (r *PreferencesRepositoryAdapter) loadJSON(ctx context.Context, key string, dest interface{}) error {
	value, err := r.load(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(value), dest); err != nil {
		return errors.NewDatabaseError("stored "+key+" is corrupt", err)
	}
	return nil
}

func (r *PreferencesRepositoryAdapter) saveJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.NewDatabaseError("failed to encode "+key, err)
	}
	return r.save(ctx, key, string(data))
}
