package external

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weatherdeck.app/internal/core/forecast"
	"weatherdeck.app/internal/mocks"
	"weatherdeck.app/internal/ports"
	"weatherdeck.app/pkg/errors"
)

func TestGatewayLoggingDecorator_FetchWeather(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		gateway := mocks.NewWeatherGateway(t)
		logger := mocks.NewLogger(t)
		metrics := mocks.NewGatewayMetrics(t)

		result := &ports.ForecastResult{Bundle: sampleBundle(703448), Timezone: "Europe/Kyiv"}
		gateway.EXPECT().FetchWeather(mock.Anything, kyiv(), forecast.UnitMetric).Return(result, nil).Once()
		logger.EXPECT().Debug("Forecast request started", mock.Anything).Once()
		logger.EXPECT().Info("Forecast request completed", mock.Anything).
			Run(func(msg string, fields ...ports.Field) {
				keys := make([]string, 0, len(fields))
				for _, f := range fields {
					keys = append(keys, f.Key)
				}
				assert.Contains(t, keys, "duration_ms")
				assert.Contains(t, keys, "current")
			}).Once()
		metrics.EXPECT().ObserveRequest("forecast", "success", mock.Anything).Once()

		decorator := NewGatewayLoggingDecorator(gateway, logger, metrics)
		got, err := decorator.FetchWeather(context.Background(), kyiv(), forecast.UnitMetric)
		require.NoError(t, err)
		assert.Same(t, result, got)
	})

	t.Run("RemoteFailure", func(t *testing.T) {
		gateway := mocks.NewWeatherGateway(t)
		logger := mocks.NewLogger(t)
		metrics := mocks.NewGatewayMetrics(t)

		gateway.EXPECT().FetchWeather(mock.Anything, kyiv(), forecast.UnitMetric).
			Return(nil, errors.NewRemoteError("upstream returned status 503", 503, nil)).Once()
		logger.EXPECT().Debug("Forecast request started", mock.Anything).Once()
		logger.EXPECT().Error("Forecast request failed", mock.Anything).Once()
		metrics.EXPECT().ObserveRequest("forecast", "remote_error", mock.Anything).Once()

		decorator := NewGatewayLoggingDecorator(gateway, logger, metrics)
		got, err := decorator.FetchWeather(context.Background(), kyiv(), forecast.UnitMetric)
		assert.Nil(t, got)
		assert.True(t, errors.IsRemoteError(err))
	})

	t.Run("CancellationIsNotAnError", func(t *testing.T) {
		gateway := mocks.NewWeatherGateway(t)
		logger := mocks.NewLogger(t)

		gateway.EXPECT().FetchWeather(mock.Anything, kyiv(), forecast.UnitMetric).
			Return(nil, errors.NewCancelledError("forecast request cancelled", context.Canceled)).Once()
		logger.EXPECT().Debug("Forecast request started", mock.Anything).Once()
		logger.EXPECT().Debug("Forecast request cancelled", mock.Anything).Once()

		decorator := NewGatewayLoggingDecorator(gateway, logger, nil)
		_, err := decorator.FetchWeather(context.Background(), kyiv(), forecast.UnitMetric)
		assert.True(t, errors.IsCancelled(err))
	})
}

func TestGatewayLoggingDecorator_SearchLocations(t *testing.T) {
	gateway := mocks.NewWeatherGateway(t)
	logger := mocks.NewLogger(t)
	metrics := mocks.NewGatewayMetrics(t)

	gateway.EXPECT().SearchLocations(mock.Anything, "Kyiv").Return([]forecast.Location{kyiv()}, nil).Once()
	logger.EXPECT().Debug("Location search completed", mock.Anything).Once()
	metrics.EXPECT().ObserveRequest("search", "success", mock.Anything).Once()

	decorator := NewGatewayLoggingDecorator(gateway, logger, metrics)
	locations, err := decorator.SearchLocations(context.Background(), "Kyiv")
	require.NoError(t, err)
	assert.Len(t, locations, 1)
}

func TestFetchOutcomeLabel(t *testing.T) {
	assert.Equal(t, "incomplete", fetchOutcomeLabel(errors.NewIncompleteDataError("short")))
	assert.Equal(t, "decode_error", fetchOutcomeLabel(errors.NewDecodeError("bad", nil)))
	assert.Equal(t, "config_error", fetchOutcomeLabel(errors.NewConfigurationError("bad", nil)))
	assert.Equal(t, "error", fetchOutcomeLabel(assert.AnError))
}
