package external

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherdeck.app/internal/core/forecast"
	"weatherdeck.app/internal/ports"
	"weatherdeck.app/pkg/errors"
)

const (
	testForecastURL  = "https://forecast.test/v1/forecast"
	testGeocodingURL = "https://geocoding.test/v1/search"
)

var _ ports.WeatherGateway = (*OpenMeteoGateway)(nil)

const forecastFixture = `{
  "latitude": 50.45,
  "longitude": 30.52,
  "timezone": "Europe/Kyiv",
  "current_weather": {"temperature": 11.6, "weathercode": 61},
  "daily": {
    "time": ["2024-03-09", "2024-03-10", "2024-03-11"],
    "temperature_2m_max": [10.4, 12.5, -0.4],
    "temperature_2m_min": [1.5, 3.2, -0.5],
    "weathercode": [0, 61, null]
  },
  "hourly": {
    "time": [
      "2024-03-09T00:00", "2024-03-09T01:00",
      "2024-03-10T13:00", "2024-03-10T02:00", "2024-03-10T13:00", "2024-03-10T05:00",
      "2024-03-11T00:00",
      "2024-03-12T00:00"
    ],
    "temperature_2m": [1.1, 1.3, 9.0, 3.4, 9.9, null, -0.2, 4.0]
  }
}`

var testNow = time.Date(2024, 3, 10, 14, 20, 0, 0, time.UTC)

func newTestGateway(t *testing.T, maxRetries int) (*OpenMeteoGateway, *httpmock.MockTransport) {
	t.Helper()

	transport := httpmock.NewMockTransport()
	gateway := NewOpenMeteoGateway(OpenMeteoGatewayParams{
		Config: ports.WeatherConfig{
			ForecastBaseURL:  testForecastURL,
			GeocodingBaseURL: testGeocodingURL,
			RequestTimeout:   time.Second,
			SearchCount:      5,
			SearchLanguage:   "uk",
		},
		Client: &http.Client{Transport: transport},
		Clock:  func() time.Time { return testNow },
		Backoff: BackoffConfig{
			MaxRetries:      maxRetries,
			InitialInterval: time.Millisecond,
			MaxInterval:     2 * time.Millisecond,
		},
	})
	return gateway, transport
}

func kyiv() forecast.Location {
	return forecast.Location{ID: 703448, Name: "Kyiv", Region: "Kyiv City", Country: "Ukraine", Latitude: 50.45466, Longitude: 30.5238}
}

func TestOpenMeteoGateway_FetchWeather(t *testing.T) {
	gateway, transport := newTestGateway(t, 0)

	var query map[string][]string
	transport.RegisterResponder(http.MethodGet, testForecastURL, func(req *http.Request) (*http.Response, error) {
		query = req.URL.Query()
		return httpmock.NewStringResponse(http.StatusOK, forecastFixture), nil
	})

	result, err := gateway.FetchWeather(context.Background(), kyiv(), forecast.UnitImperial)
	require.NoError(t, err)

	t.Run("RequestParameters", func(t *testing.T) {
		assert.Equal(t, []string{"50.45466"}, query["latitude"])
		assert.Equal(t, []string{"30.5238"}, query["longitude"])
		assert.Equal(t, []string{"fahrenheit"}, query["temperature_unit"])
		assert.Equal(t, []string{"2024-03-09"}, query["start_date"])
		assert.Equal(t, []string{"2024-03-11"}, query["end_date"])
		assert.Equal(t, []string{"auto"}, query["timezone"])
		assert.Equal(t, []string{"true"}, query["current_weather"])
		assert.Equal(t, []string{"temperature_2m"}, query["hourly"])
		assert.Equal(t, []string{"temperature_2m_max,temperature_2m_min,weathercode"}, query["daily"])
	})

	bundle := result.Bundle
	require.NoError(t, bundle.Validate())
	assert.Equal(t, "Europe/Kyiv", result.Timezone)
	assert.Equal(t, int64(703448), bundle.LocationID)
	assert.Equal(t, forecast.UnitImperial, bundle.Unit)
	assert.True(t, bundle.FetchedAt.Equal(testNow))

	t.Run("ConsecutiveDates", func(t *testing.T) {
		assert.Equal(t, "2024-03-09", bundle.Yesterday.DateString())
		assert.Equal(t, "2024-03-10", bundle.Today.DateString())
		assert.Equal(t, "2024-03-11", bundle.Tomorrow.DateString())
	})

	t.Run("RoundsHalfAwayFromZero", func(t *testing.T) {
		assert.Equal(t, 10, bundle.Yesterday.High)
		assert.Equal(t, 2, bundle.Yesterday.Low)
		assert.Equal(t, 13, bundle.Today.High)
		assert.Equal(t, 3, bundle.Today.Low)
		assert.Equal(t, 0, bundle.Tomorrow.High)
		assert.Equal(t, -1, bundle.Tomorrow.Low)
	})

	t.Run("Conditions", func(t *testing.T) {
		assert.Equal(t, forecast.ConditionClear, bundle.Yesterday.Condition)
		assert.Equal(t, forecast.ConditionRain, bundle.Today.Condition)
		assert.Equal(t, forecast.ConditionCloudy, bundle.Tomorrow.Condition)
	})

	t.Run("CurrentOnlyOnToday", func(t *testing.T) {
		require.NotNil(t, bundle.Today.Current)
		assert.Equal(t, 12, *bundle.Today.Current)
		assert.Nil(t, bundle.Yesterday.Current)
		assert.Nil(t, bundle.Tomorrow.Current)
	})

	t.Run("HourlyBuckets", func(t *testing.T) {
		assert.Equal(t, []forecast.HourlyReading{{Hour: 0, Temperature: 1.1}, {Hour: 1, Temperature: 1.3}}, bundle.Yesterday.Hourly)
		assert.Equal(t, []forecast.HourlyReading{{Hour: 2, Temperature: 3.4}, {Hour: 13, Temperature: 9.9}}, bundle.Today.Hourly)
		assert.Equal(t, []forecast.HourlyReading{{Hour: 0, Temperature: -0.2}}, bundle.Tomorrow.Hourly)
	})
}

func TestOpenMeteoGateway_FetchWeather_MetricUnit(t *testing.T) {
	gateway, transport := newTestGateway(t, 0)

	var unit string
	transport.RegisterResponder(http.MethodGet, testForecastURL, func(req *http.Request) (*http.Response, error) {
		unit = req.URL.Query().Get("temperature_unit")
		return httpmock.NewStringResponse(http.StatusOK, forecastFixture), nil
	})

	_, err := gateway.FetchWeather(context.Background(), kyiv(), forecast.UnitMetric)
	require.NoError(t, err)
	assert.Equal(t, "celsius", unit)
}

func TestOpenMeteoGateway_FetchWeather_PayloadErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		errorType errors.ErrorType
	}{
		{
			name:      "MalformedJSON",
			body:      `{"daily": [`,
			errorType: errors.DecodeError,
		},
		{
			name:      "TooFewDays",
			body:      `{"daily": {"time": ["2024-03-10"], "temperature_2m_max": [1], "temperature_2m_min": [0], "weathercode": [0]}}`,
			errorType: errors.IncompleteDataError,
		},
		{
			name:      "MissingDaily",
			body:      `{"timezone": "UTC"}`,
			errorType: errors.IncompleteDataError,
		},
		{
			name: "NullHigh",
			body: `{"daily": {"time": ["2024-03-09","2024-03-10","2024-03-11"],
				"temperature_2m_max": [1, null, 3], "temperature_2m_min": [0, 0, 0], "weathercode": [0, 0, 0]}}`,
			errorType: errors.IncompleteDataError,
		},
		{
			name: "MisalignedDaily",
			body: `{"daily": {"time": ["2024-03-09","2024-03-10","2024-03-11"],
				"temperature_2m_max": [1, 2], "temperature_2m_min": [0, 0, 0], "weathercode": [0, 0, 0]}}`,
			errorType: errors.IncompleteDataError,
		},
		{
			name: "WrongWindow",
			body: `{"daily": {"time": ["2024-04-09","2024-04-10","2024-04-11"],
				"temperature_2m_max": [1, 2, 3], "temperature_2m_min": [0, 0, 0], "weathercode": [0, 0, 0]}}`,
			errorType: errors.IncompleteDataError,
		},
		{
			name: "BadHourlyTimestamp",
			body: `{"daily": {"time": ["2024-03-09","2024-03-10","2024-03-11"],
				"temperature_2m_max": [1, 2, 3], "temperature_2m_min": [0, 0, 0], "weathercode": [0, 0, 0]},
				"hourly": {"time": ["yesterday noon"], "temperature_2m": [1]}}`,
			errorType: errors.DecodeError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway, transport := newTestGateway(t, 0)
			transport.RegisterResponder(http.MethodGet, testForecastURL, httpmock.NewStringResponder(http.StatusOK, tt.body))

			result, err := gateway.FetchWeather(context.Background(), kyiv(), forecast.UnitMetric)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.Equal(t, tt.errorType, errors.TypeOf(err))
		})
	}
}

func TestOpenMeteoGateway_FetchWeather_HTTPStatus(t *testing.T) {
	t.Run("ClientErrorIsNotRetried", func(t *testing.T) {
		gateway, transport := newTestGateway(t, 2)
		transport.RegisterResponder(http.MethodGet, testForecastURL, httpmock.NewStringResponder(http.StatusNotFound, "no"))

		_, err := gateway.FetchWeather(context.Background(), kyiv(), forecast.UnitMetric)
		require.Error(t, err)
		assert.True(t, errors.IsRemoteError(err))
		assert.Contains(t, errors.UserMessage(err), "HTTP 404")
		assert.Equal(t, 1, transport.GetTotalCallCount())
	})

	t.Run("ServerErrorIsRetried", func(t *testing.T) {
		gateway, transport := newTestGateway(t, 2)
		transport.RegisterResponder(http.MethodGet, testForecastURL,
			httpmock.NewStringResponder(http.StatusServiceUnavailable, "busy").
				Then(httpmock.NewStringResponder(http.StatusOK, forecastFixture)))

		result, err := gateway.FetchWeather(context.Background(), kyiv(), forecast.UnitMetric)
		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, 2, transport.GetTotalCallCount())
	})

	t.Run("RetriesAreBounded", func(t *testing.T) {
		gateway, transport := newTestGateway(t, 2)
		transport.RegisterResponder(http.MethodGet, testForecastURL, httpmock.NewStringResponder(http.StatusTooManyRequests, ""))

		_, err := gateway.FetchWeather(context.Background(), kyiv(), forecast.UnitMetric)
		require.Error(t, err)
		assert.True(t, errors.IsRemoteError(err))
		assert.Equal(t, 3, transport.GetTotalCallCount())
	})
}

func TestOpenMeteoGateway_FetchWeather_TransportFailures(t *testing.T) {
	t.Run("Unreachable", func(t *testing.T) {
		gateway, transport := newTestGateway(t, 0)
		transport.RegisterResponder(http.MethodGet, testForecastURL, httpmock.NewErrorResponder(stderrors.New("connection refused")))

		_, err := gateway.FetchWeather(context.Background(), kyiv(), forecast.UnitMetric)
		require.Error(t, err)
		assert.True(t, errors.IsRemoteError(err))
		assert.Equal(t, "Weather service is unreachable. Pull to refresh to try again.", errors.UserMessage(err))
	})

	t.Run("CallerCancellation", func(t *testing.T) {
		gateway, transport := newTestGateway(t, 0)
		transport.RegisterResponder(http.MethodGet, testForecastURL, httpmock.NewStringResponder(http.StatusOK, forecastFixture))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := gateway.FetchWeather(ctx, kyiv(), forecast.UnitMetric)
		require.Error(t, err)
		assert.True(t, errors.IsCancelled(err))
		assert.Equal(t, 0, transport.GetTotalCallCount())
	})

	t.Run("RequestTimeout", func(t *testing.T) {
		transport := httpmock.NewMockTransport()
		transport.RegisterResponder(http.MethodGet, testForecastURL,
			httpmock.NewStringResponder(http.StatusOK, forecastFixture).Delay(500*time.Millisecond))

		gateway := NewOpenMeteoGateway(OpenMeteoGatewayParams{
			Config: ports.WeatherConfig{ForecastBaseURL: testForecastURL, RequestTimeout: 20 * time.Millisecond},
			Client: &http.Client{Transport: transport},
			Clock:  func() time.Time { return testNow },
		})

		_, err := gateway.FetchWeather(context.Background(), kyiv(), forecast.UnitMetric)
		require.Error(t, err)
		assert.True(t, errors.IsRemoteError(err))
		assert.False(t, errors.IsCancelled(err))
		assert.Contains(t, err.Error(), "timed out")
	})
}

func TestOpenMeteoGateway_CircuitBreaker(t *testing.T) {
	gateway, transport := newTestGateway(t, 0)
	transport.RegisterResponder(http.MethodGet, testForecastURL, httpmock.NewStringResponder(http.StatusInternalServerError, ""))

	for i := 0; i < 5; i++ {
		_, err := gateway.FetchWeather(context.Background(), kyiv(), forecast.UnitMetric)
		require.Error(t, err)
	}
	require.Equal(t, 5, transport.GetTotalCallCount())

	_, err := gateway.FetchWeather(context.Background(), kyiv(), forecast.UnitMetric)
	require.Error(t, err)
	assert.True(t, errors.IsRemoteError(err))
	assert.Contains(t, err.Error(), "temporarily unavailable")
	assert.Equal(t, 5, transport.GetTotalCallCount())
}

func TestOpenMeteoGateway_ClientErrorsDoNotTripBreaker(t *testing.T) {
	gateway, transport := newTestGateway(t, 0)
	transport.RegisterResponder(http.MethodGet, testForecastURL, httpmock.NewStringResponder(http.StatusBadRequest, ""))

	for i := 0; i < 7; i++ {
		_, err := gateway.FetchWeather(context.Background(), kyiv(), forecast.UnitMetric)
		require.Error(t, err)
	}
	assert.Equal(t, 7, transport.GetTotalCallCount())
}

func TestOpenMeteoGateway_Configuration(t *testing.T) {
	transport := httpmock.NewMockTransport()
	gateway := NewOpenMeteoGateway(OpenMeteoGatewayParams{
		Config: ports.WeatherConfig{ForecastBaseURL: "not a url", GeocodingBaseURL: "ftp://geo.test"},
		Client: &http.Client{Transport: transport},
	})

	_, err := gateway.FetchWeather(context.Background(), kyiv(), forecast.UnitMetric)
	assert.True(t, errors.IsConfigurationError(err))

	_, err = gateway.SearchLocations(context.Background(), "Kyiv")
	assert.True(t, errors.IsConfigurationError(err))

	assert.Equal(t, 0, transport.GetTotalCallCount())
}

func TestOpenMeteoGateway_FetchWeather_InvalidLocation(t *testing.T) {
	gateway, transport := newTestGateway(t, 0)

	_, err := gateway.FetchWeather(context.Background(), forecast.Location{Name: "Nowhere", Latitude: 120}, forecast.UnitMetric)
	assert.True(t, errors.IsValidationError(err))
	assert.Equal(t, 0, transport.GetTotalCallCount())
}

func TestOpenMeteoGateway_SearchLocations(t *testing.T) {
	gateway, transport := newTestGateway(t, 0)

	var query map[string][]string
	transport.RegisterResponder(http.MethodGet, testGeocodingURL, func(req *http.Request) (*http.Response, error) {
		query = req.URL.Query()
		return httpmock.NewStringResponse(http.StatusOK, `{"results": [
			{"id": 703448, "name": "Kyiv", "latitude": 50.45466, "longitude": 30.5238, "country": "Ukraine", "admin1": "Kyiv City"},
			{"id": 3099434, "name": "Monaco", "latitude": 43.73, "longitude": 7.42, "country": "Monaco", "admin1": ""}
		]}`), nil
	})

	locations, err := gateway.SearchLocations(context.Background(), "  Kyiv ")
	require.NoError(t, err)

	assert.Equal(t, []string{"Kyiv"}, query["name"])
	assert.Equal(t, []string{"5"}, query["count"])
	assert.Equal(t, []string{"uk"}, query["language"])
	assert.Equal(t, []string{"json"}, query["format"])

	require.Len(t, locations, 2)
	assert.Equal(t, forecast.Location{
		ID: 703448, Name: "Kyiv", Region: "Kyiv City", Country: "Ukraine", Latitude: 50.45466, Longitude: 30.5238,
	}, locations[0])
	assert.Equal(t, "Monaco", locations[1].Region)
}

func TestOpenMeteoGateway_SearchLocations_EdgeCases(t *testing.T) {
	t.Run("BlankQuery", func(t *testing.T) {
		gateway, transport := newTestGateway(t, 0)

		locations, err := gateway.SearchLocations(context.Background(), "   ")
		require.NoError(t, err)
		assert.NotNil(t, locations)
		assert.Empty(t, locations)
		assert.Equal(t, 0, transport.GetTotalCallCount())
	})

	t.Run("NoResults", func(t *testing.T) {
		gateway, transport := newTestGateway(t, 0)
		transport.RegisterResponder(http.MethodGet, testGeocodingURL, httpmock.NewStringResponder(http.StatusOK, `{"generationtime_ms": 0.5}`))

		locations, err := gateway.SearchLocations(context.Background(), "Atlantis")
		require.NoError(t, err)
		assert.NotNil(t, locations)
		assert.Empty(t, locations)
	})

	t.Run("ServerError", func(t *testing.T) {
		gateway, transport := newTestGateway(t, 0)
		transport.RegisterResponder(http.MethodGet, testGeocodingURL, httpmock.NewStringResponder(http.StatusBadGateway, ""))

		_, err := gateway.SearchLocations(context.Background(), "Kyiv")
		assert.True(t, errors.IsRemoteError(err))
	})
}

func TestOpenMeteoGateway_CircuitStates(t *testing.T) {
	gateway, transport := newTestGateway(t, 0)
	assert.Equal(t, map[string]string{"forecast": "closed", "geocoding": "closed"}, gateway.CircuitStates())

	transport.RegisterResponder(http.MethodGet, testGeocodingURL, httpmock.NewStringResponder(http.StatusInternalServerError, ""))
	for i := 0; i < 5; i++ {
		_, _ = gateway.SearchLocations(context.Background(), "Kyiv")
	}

	assert.Equal(t, "open", gateway.CircuitStates()["geocoding"])
	assert.Equal(t, "closed", gateway.CircuitStates()["forecast"])
}
