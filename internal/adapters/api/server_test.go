package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weatherdeck.app/internal/adapters/external"
	"weatherdeck.app/internal/adapters/infrastructure"
	"weatherdeck.app/internal/core/forecast"
	"weatherdeck.app/internal/core/weather"
	"weatherdeck.app/internal/mocks"
	"weatherdeck.app/internal/ports"
	"weatherdeck.app/pkg/errors"
)

type fixedCircuits map[string]string

func (f fixedCircuits) CircuitStates() map[string]string { return f }

type testServer struct {
	router  *gin.Engine
	store   *weather.Store
	gateway *mocks.WeatherGateway
}

func quietLogger(t *testing.T) *mocks.Logger {
	logger := mocks.NewLogger(t)
	logger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()
	return logger
}

func lenientPrefs(t *testing.T) *mocks.PreferencesRepository {
	prefs := mocks.NewPreferencesRepository(t)
	prefs.EXPECT().SaveTracked(mock.Anything, mock.Anything).Return(nil).Maybe()
	prefs.EXPECT().SaveActive(mock.Anything, mock.Anything).Return(nil).Maybe()
	prefs.EXPECT().SaveUnit(mock.Anything, mock.Anything).Return(nil).Maybe()
	return prefs
}

func setupTestServer(t *testing.T) *testServer {
	gin.SetMode(gin.TestMode)

	logger := quietLogger(t)
	gateway := mocks.NewWeatherGateway(t)
	metrics := infrastructure.NewPrometheusMetrics()

	store, err := weather.NewStore(weather.StoreDependencies{
		Gateway:     gateway,
		Cache:       external.NewBundleCacheAdapter(external.NewMemoryCacheProvider(time.Hour), metrics, time.Hour),
		Preferences: lenientPrefs(t),
		Logger:      logger,
		Metrics:     metrics,
		Config:      ports.StoreConfig{DefaultLocation: forecast.DefaultLocation(), FanOutLimit: 2},
	})
	require.NoError(t, err)
	t.Cleanup(store.Close)

	server, err := NewHTTPServerAdapter(ServerOptions{
		Store:            store,
		Logger:           logger,
		MetricsCollector: infrastructure.NewMetricsCollectorAdapter(infrastructure.MetricsCollectorConfig{Metrics: metrics}),
		SystemHealthChecker: infrastructure.NewSystemHealthChecker(infrastructure.SystemHealthCheckerConfig{
			GatewayChecker: infrastructure.NewGatewayHealthChecker(fixedCircuits{"forecast": "closed"}),
		}),
		MetricsHandler: metrics.Handler(),
	})
	require.NoError(t, err)

	return &testServer{router: server.GetRouter(), store: store, gateway: gateway}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var data []byte
	if body != nil {
		var err error
		data, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func forecastFor(loc forecast.Location, unit forecast.MeasurementUnit) *ports.ForecastResult {
	today := forecast.DateOf(time.Now())
	current := 4
	return &ports.ForecastResult{
		Bundle: &forecast.CityWeatherBundle{
			LocationID: loc.ID,
			Yesterday:  forecast.DaySnapshot{Date: today.AddDate(0, 0, -1), High: 3, Low: -2, Condition: forecast.ConditionSnow},
			Today:      forecast.DaySnapshot{Date: today, High: 6, Low: 0, Current: &current, Condition: forecast.ConditionCloudy},
			Tomorrow:   forecast.DaySnapshot{Date: today.AddDate(0, 0, 1), High: 8, Low: 1, Condition: forecast.ConditionClear},
			Unit:       unit,
			FetchedAt:  time.Now(),
		},
		Timezone: "Europe/Kyiv",
	}
}

func lviv() forecast.Location {
	return forecast.Location{ID: 702550, Name: "Lviv", Region: "Lviv Oblast", Country: "Ukraine", Latitude: 49.83826, Longitude: 24.02324}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestNewHTTPServerAdapter_RequiresDependencies(t *testing.T) {
	_, err := NewHTTPServerAdapter(ServerOptions{})
	assert.True(t, errors.IsValidationError(err))
}

func TestGetState_FirstRun(t *testing.T) {
	s := setupTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/state", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var state weather.State
	decode(t, rec, &state)
	require.NotNil(t, state.Active)
	assert.Equal(t, "Kyiv", state.Active.Name)
	assert.NotNil(t, state.Tracked)
	assert.Empty(t, state.Tracked)
	assert.Equal(t, forecast.UnitMetric, state.Unit)
}

func TestGetWeather(t *testing.T) {
	s := setupTestServer(t)
	kyiv := forecast.DefaultLocation()

	rec := s.do(t, http.MethodGet, "/api/weather/703448", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	s.gateway.EXPECT().FetchWeather(mock.Anything, kyiv, forecast.UnitMetric).Return(forecastFor(kyiv, forecast.UnitMetric), nil).Once()

	rec = s.do(t, http.MethodGet, "/api/weather/703448?ensure=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp WeatherResponse
	decode(t, rec, &resp)
	require.NotNil(t, resp.Bundle)
	assert.Equal(t, 6, resp.Bundle.Today.High)
	assert.Empty(t, resp.Error)

	rec = s.do(t, http.MethodGet, "/api/weather/703448", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/weather/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/weather/1?ensure=true", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetWeather_FailureKeepsPreviousBundle(t *testing.T) {
	s := setupTestServer(t)
	kyiv := forecast.DefaultLocation()

	s.gateway.EXPECT().FetchWeather(mock.Anything, kyiv, forecast.UnitMetric).
		Return(nil, errors.NewRemoteError("upstream returned status 503", 503, nil)).Once()

	rec := s.do(t, http.MethodGet, "/api/weather/703448?ensure=true", nil)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	var errResp ErrorResponse
	decode(t, rec, &errResp)
	assert.Contains(t, errResp.Error, "HTTP 503")
	assert.True(t, errResp.Retryable)

	s.gateway.EXPECT().FetchWeather(mock.Anything, kyiv, forecast.UnitMetric).Return(forecastFor(kyiv, forecast.UnitMetric), nil).Once()
	rec = s.do(t, http.MethodGet, "/api/weather/703448?ensure=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	s.gateway.EXPECT().FetchWeather(mock.Anything, kyiv, forecast.UnitMetric).
		Return(nil, errors.NewRemoteError("upstream returned status 500", 500, nil)).Once()
	rec = s.do(t, http.MethodGet, "/api/weather/703448?ensure=true&force=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp WeatherResponse
	decode(t, rec, &resp)
	require.NotNil(t, resp.Bundle)
	assert.Contains(t, resp.Error, "HTTP 500")
}

func TestSearch(t *testing.T) {
	s := setupTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/search?q=%20%20", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	s.gateway.EXPECT().SearchLocations(mock.Anything, "Lviv").Return([]forecast.Location{lviv()}, nil).Once()
	rec = s.do(t, http.MethodGet, "/api/search?q=Lviv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var results []forecast.Location
	decode(t, rec, &results)
	assert.Equal(t, []forecast.Location{lviv()}, results)

	s.gateway.EXPECT().SearchLocations(mock.Anything, "Nowhere").Return(nil, errors.NewRemoteError("down", 0, nil)).Once()
	rec = s.do(t, http.MethodGet, "/api/search?q=Nowhere", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestLocations(t *testing.T) {
	s := setupTestServer(t)
	city := lviv()

	t.Run("Add", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/locations", city)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = s.do(t, http.MethodPost, "/api/locations", forecast.Location{
			ID: 999, Name: " lviv ", Region: "LVIV OBLAST", Latitude: 49.8, Longitude: 24.0,
		})
		require.Equal(t, http.StatusOK, rec.Code)
		var resp AddLocationResponse
		decode(t, rec, &resp)
		assert.False(t, resp.Added)
		assert.Len(t, resp.Tracked, 1)
	})

	t.Run("AddInvalid", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/locations", map[string]interface{}{"id": 5, "name": "", "latitude": 1})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = s.do(t, http.MethodPost, "/api/locations", map[string]interface{}{"id": 5, "name": "Pole", "latitude": 91})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("AddAndSelect", func(t *testing.T) {
		kyiv := forecast.DefaultLocation()
		s.gateway.EXPECT().FetchWeather(mock.Anything, kyiv, forecast.UnitMetric).Return(forecastFor(kyiv, forecast.UnitMetric), nil).Once()

		rec := s.do(t, http.MethodPost, "/api/locations/add-and-select", kyiv)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, s.store.Tracked(), 2)
	})

	t.Run("Select", func(t *testing.T) {
		s.gateway.EXPECT().FetchWeather(mock.Anything, city, forecast.UnitMetric).Return(forecastFor(city, forecast.UnitMetric), nil).Once()

		rec := s.do(t, http.MethodPost, "/api/locations/select", city)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, city.ID, s.store.Active().ID)
	})

	t.Run("Reorder", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/locations/reorder", map[string]int{"from": 1, "to": 0})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(703448), s.store.Tracked()[0].ID)

		rec = s.do(t, http.MethodPost, "/api/locations/reorder", map[string]int{"from": 0, "to": 5})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, int64(703448), s.store.Tracked()[0].ID)

		rec = s.do(t, http.MethodPost, "/api/locations/reorder", map[string]int{"from": 0})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Remove", func(t *testing.T) {
		rec := s.do(t, http.MethodDelete, "/api/locations/12345", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = s.do(t, http.MethodDelete, "/api/locations/703448", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, s.store.Tracked(), 1)
		assert.Equal(t, city.ID, s.store.Active().ID)
	})
}

func TestSetUnit(t *testing.T) {
	s := setupTestServer(t)
	kyiv := forecast.DefaultLocation()

	rec := s.do(t, http.MethodPut, "/api/unit", map[string]string{"unit": "kelvin"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	s.gateway.EXPECT().FetchWeather(mock.Anything, kyiv, forecast.UnitImperial).Return(forecastFor(kyiv, forecast.UnitImperial), nil).Once()

	rec = s.do(t, http.MethodPut, "/api/unit", map[string]string{"unit": "Fahrenheit"})
	require.Equal(t, http.StatusOK, rec.Code)

	var state weather.State
	decode(t, rec, &state)
	assert.Equal(t, forecast.UnitImperial, state.Unit)
	assert.Contains(t, rec.Body.String(), `"unit":"imperial"`)
}

func TestRefreshAll(t *testing.T) {
	s := setupTestServer(t)
	city := lviv()

	_, err := s.store.AddLocation(context.Background(), city)
	require.NoError(t, err)

	kyiv := forecast.DefaultLocation()
	s.gateway.EXPECT().FetchWeather(mock.Anything, kyiv, forecast.UnitMetric).Return(forecastFor(kyiv, forecast.UnitMetric), nil).Once()
	s.gateway.EXPECT().FetchWeather(mock.Anything, city, forecast.UnitMetric).
		Return(nil, errors.NewIncompleteDataError("short")).Once()

	rec := s.do(t, http.MethodPost, "/api/refresh/all", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp RefreshAllResponse
	decode(t, rec, &resp)
	assert.Equal(t, []int64{kyiv.ID}, resp.Report.Succeeded)
	assert.Equal(t, []int64{city.ID}, resp.Report.Failed)
	require.NotNil(t, resp.State.Today)
	assert.Equal(t, 6, resp.State.Today.High)
}

func TestHealthAndMetrics(t *testing.T) {
	s := setupTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var health HealthResponse
	decode(t, rec, &health)
	assert.Equal(t, "healthy", health.Status)
	assert.Contains(t, health.Components, "gateway")

	rec = s.do(t, http.MethodGet, "/api/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bundle_cache")

	rec = s.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "weatherdeck_cache_hits_total")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusConflict, statusFor(errors.AlreadyExistsError))
	assert.Equal(t, http.StatusBadGateway, statusFor(errors.DecodeError))
	assert.Equal(t, statusClientClosedRequest, statusFor(errors.Cancelled))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.DatabaseError))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.ConfigurationError))
}

func TestStreamEvents(t *testing.T) {
	s := setupTestServer(t)
	httpServer := httptest.NewServer(s.router)
	defer httpServer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, httpServer.URL+"/api/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	events := make(chan string, 16)
	go func() {
		defer close(events)
		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			if strings.HasPrefix(line, "event:") {
				events <- strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			}
		}
	}()

	waitFor := func(kind string) {
		t.Helper()
		timeout := time.After(2 * time.Second)
		for {
			select {
			case got, ok := <-events:
				require.True(t, ok, "stream closed before %s", kind)
				if got == kind {
					return
				}
			case <-timeout:
				t.Fatalf("no %s event", kind)
			}
		}
	}

	waitFor("snapshot")

	_, err = s.store.AddLocation(context.Background(), lviv())
	require.NoError(t, err)
	waitFor(string(weather.EventTrackedChanged))

	cancel()
}
