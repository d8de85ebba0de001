package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"weatherdeck.app/internal/core/forecast"
	"weatherdeck.app/pkg/errors"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	return db
}

func lviv() forecast.Location {
	return forecast.Location{ID: 702550, Name: "Lviv", Region: "Lviv Oblast", Country: "Ukraine", Latitude: 49.83826, Longitude: 24.02324}
}

func TestPreferencesRepository_NothingSaved(t *testing.T) {
	repo := NewPreferencesRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()

	_, err := repo.LoadTracked(ctx)
	assert.True(t, errors.IsNotFoundError(err))

	_, err = repo.LoadActive(ctx)
	assert.True(t, errors.IsNotFoundError(err))

	unit, err := repo.LoadUnit(ctx)
	assert.True(t, errors.IsNotFoundError(err))
	assert.Equal(t, forecast.UnitMetric, unit)
}

func TestPreferencesRepository_Tracked(t *testing.T) {
	repo := NewPreferencesRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()

	locations := []forecast.Location{forecast.DefaultLocation(), lviv()}
	require.NoError(t, repo.SaveTracked(ctx, locations))

	loaded, err := repo.LoadTracked(ctx)
	require.NoError(t, err)
	assert.Equal(t, locations, loaded)

	require.NoError(t, repo.SaveTracked(ctx, []forecast.Location{lviv()}))
	loaded, err = repo.LoadTracked(ctx)
	require.NoError(t, err)
	assert.Equal(t, []forecast.Location{lviv()}, loaded)

	require.NoError(t, repo.SaveTracked(ctx, nil))
	loaded, err = repo.LoadTracked(ctx)
	require.NoError(t, err)
	assert.NotNil(t, loaded)
	assert.Empty(t, loaded)
}

func TestPreferencesRepository_Active(t *testing.T) {
	repo := NewPreferencesRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()

	city := lviv()
	require.NoError(t, repo.SaveActive(ctx, &city))

	loaded, err := repo.LoadActive(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, city, *loaded)

	require.NoError(t, repo.SaveActive(ctx, nil))
	loaded, err = repo.LoadActive(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestPreferencesRepository_Unit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPreferencesRepositoryAdapter(db)
	ctx := context.Background()

	require.NoError(t, repo.SaveUnit(ctx, forecast.UnitImperial))

	unit, err := repo.LoadUnit(ctx)
	require.NoError(t, err)
	assert.Equal(t, forecast.UnitImperial, unit)

	var model PreferenceModel
	require.NoError(t, db.First(&model, "pref_key = ?", keyMeasurementUnit).Error)
	assert.Equal(t, "fahrenheit", model.Value)

	assert.True(t, errors.IsValidationError(repo.SaveUnit(ctx, forecast.MeasurementUnit(7))))
}

func TestPreferencesRepository_CorruptValues(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPreferencesRepositoryAdapter(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&PreferenceModel{Key: keyTrackedLocations, Value: "{"}).Error)
	require.NoError(t, db.Create(&PreferenceModel{Key: keyMeasurementUnit, Value: "kelvin"}).Error)

	_, err := repo.LoadTracked(ctx)
	assert.True(t, errors.IsDatabaseError(err))

	_, err = repo.LoadUnit(ctx)
	assert.True(t, errors.IsDatabaseError(err))
}

func TestOpen_SQLite(t *testing.T) {
	db, err := Open(sqliteConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	repo := NewPreferencesRepositoryAdapter(db)
	require.NoError(t, repo.SaveUnit(context.Background(), forecast.UnitMetric))
}
