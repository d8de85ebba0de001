package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherdeck.app/internal/config"
	"weatherdeck.app/internal/core/forecast"
	"weatherdeck.app/internal/core/weather"
)

// forecastServer answers every request with a valid three-day forecast around the current date
func forecastServer(t *testing.T, requests *atomic.Int64) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		yesterday, today, tomorrow := forecast.ThreeDayWindow(time.Now())
		body := fmt.Sprintf(`{
			"timezone": "Europe/Kyiv",
			"current_weather": {"temperature": 3.6, "weathercode": 3},
			"daily": {
				"time": [%q, %q, %q],
				"temperature_2m_max": [2.1, 5.5, 7.4],
				"temperature_2m_min": [-3.2, -0.4, 1.0],
				"weathercode": [71, 3, 0]
			}
		}`, forecast.FormatDate(yesterday), forecast.FormatDate(today), forecast.FormatDate(tomorrow))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func testConfig(t *testing.T, forecastURL, dbPath string) *config.Config {
	t.Helper()

	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SQLITE_PATH", dbPath)
	t.Setenv("CACHE_TYPE", "memory")
	t.Setenv("WEATHER_FORECAST_BASE_URL", forecastURL)
	t.Setenv("WEATHER_MAX_RETRIES", "0")
	t.Setenv("WEATHER_ENABLE_LOGGING", "false")
	t.Setenv("STORE_REFRESH_INTERVAL_MINUTES", "0")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	return cfg
}

func newTestApplication(t *testing.T, cfg *config.Config) *Application {
	t.Helper()
	gin.SetMode(gin.TestMode)

	deps, err := NewDependencyContainer(cfg)
	require.NoError(t, err)

	application, err := NewApplicationWithDependencies(cfg, deps)
	require.NoError(t, err)
	return application
}

func shutdown(t *testing.T, application *Application) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, application.Shutdown(ctx))
}

func serve(application *Application, method, path string, body interface{}) *httptest.ResponseRecorder {
	var data []byte
	if body != nil {
		data, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	application.GetRouter().ServeHTTP(rec, req)
	return rec
}

func TestApplication_ServesFirstRunState(t *testing.T) {
	var requests atomic.Int64
	server := forecastServer(t, &requests)
	application := newTestApplication(t, testConfig(t, server.URL, filepath.Join(t.TempDir(), "prefs.db")))
	defer shutdown(t, application)

	rec := serve(application, http.MethodGet, "/api/state", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var state weather.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	require.NotNil(t, state.Active)
	assert.Equal(t, "Kyiv", state.Active.Name)
	assert.Equal(t, forecast.UnitMetric, state.Unit)

	rec = serve(application, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database"`)
	assert.Contains(t, rec.Body.String(), `"cache"`)
	assert.Contains(t, rec.Body.String(), `"gateway"`)

	assert.Zero(t, requests.Load())
}

func TestApplication_EnsureWeatherThroughGateway(t *testing.T) {
	var requests atomic.Int64
	server := forecastServer(t, &requests)
	application := newTestApplication(t, testConfig(t, server.URL, filepath.Join(t.TempDir(), "prefs.db")))
	defer shutdown(t, application)

	rec := serve(application, http.MethodGet, "/api/weather/703448?ensure=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"high":6`)

	rec = serve(application, http.MethodGet, "/api/weather/703448?ensure=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), requests.Load())

	rec = serve(application, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `weatherdeck_store_fetches_total{outcome="success"} 1`)
}

func TestApplication_PreferencesSurviveRestart(t *testing.T) {
	var requests atomic.Int64
	server := forecastServer(t, &requests)
	cfg := testConfig(t, server.URL, filepath.Join(t.TempDir(), "prefs.db"))

	first := newTestApplication(t, cfg)
	lviv := forecast.Location{ID: 702550, Name: "Lviv", Region: "Lviv Oblast", Country: "Ukraine", Latitude: 49.83826, Longitude: 24.02324}
	rec := serve(first, http.MethodPost, "/api/locations/add-and-select", lviv)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = serve(first, http.MethodPut, "/api/unit", map[string]string{"unit": "imperial"})
	require.Equal(t, http.StatusOK, rec.Code)
	shutdown(t, first)

	second := newTestApplication(t, cfg)
	defer shutdown(t, second)

	state := second.Store().Snapshot()
	require.NotNil(t, state.Active)
	assert.Equal(t, lviv.ID, state.Active.ID)
	assert.Equal(t, []forecast.Location{lviv}, state.Tracked)
	assert.Equal(t, forecast.UnitImperial, state.Unit)
}

func TestApplication_Refresher(t *testing.T) {
	var requests atomic.Int64
	server := forecastServer(t, &requests)
	application := newTestApplication(t, testConfig(t, server.URL, filepath.Join(t.TempDir(), "prefs.db")))
	defer shutdown(t, application)

	t.Run("Disabled", func(t *testing.T) {
		done := make(chan struct{})
		go func() {
			application.startRefresher(context.Background(), 0)
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("refresher with zero interval did not return")
		}
		assert.Zero(t, requests.Load())
	})

	t.Run("RefreshesOnTick", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			application.startRefresher(ctx, 20*time.Millisecond)
			close(done)
		}()

		require.Eventually(t, func() bool { return requests.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)

		bundle, err := application.Store().Bundle(context.Background(), forecast.DefaultLocation().ID)
		require.NoError(t, err)
		assert.Equal(t, 6, bundle.Today.High)

		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("refresher did not stop after cancellation")
		}
	})
}
