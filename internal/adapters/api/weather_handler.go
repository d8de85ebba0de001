package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"weatherdeck.app/internal/core/forecast"
	"weatherdeck.app/internal/core/weather"
	"weatherdeck.app/pkg/errors"
)

// WeatherResponse carries a bundle and, when a refresh failed, the message shown next to it
type WeatherResponse struct {
	Bundle *forecast.CityWeatherBundle `json:"bundle"`
	Error  string                      `json:"error,omitempty"`
}

// UnitRequest represents the HTTP request for changing the measurement unit
type UnitRequest struct {
	Unit string `json:"unit" binding:"required,unit"`
}

// getState handles GET /api/state requests
func (s *HTTPServerAdapter) getState(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Snapshot())
}

// getSummaries handles GET /api/summaries requests
func (s *HTTPServerAdapter) getSummaries(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Summaries())
}

// getWeather handles GET /api/weather/:id requests. With ensure=true the store fetches the
// bundle first when it is missing, or always when force=true.
func (s *HTTPServerAdapter) getWeather(c *gin.Context) {
	id, err := parseLocationID(c.Param("id"))
	if err != nil {
		s.handleError(c, err)
		return
	}

	if c.Query("ensure") != "true" {
		bundle, err := s.store.Bundle(c.Request.Context(), id)
		if err != nil {
			s.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, WeatherResponse{Bundle: bundle})
		return
	}

	loc, ok := s.knownLocation(id)
	if !ok {
		s.handleError(c, errors.NewNotFoundError("location is not tracked"))
		return
	}

	bundle, err := s.store.EnsureWeather(c.Request.Context(), loc, c.Query("force") == "true")
	s.respondWithBundle(c, bundle, err)
}

// search handles GET /api/search requests
func (s *HTTPServerAdapter) search(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Search(c.Request.Context(), c.Query("q")))
}

// setUnit handles PUT /api/unit requests
func (s *HTTPServerAdapter) setUnit(c *gin.Context) {
	var req UnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, errors.NewValidationError("unit must be one of: metric, imperial, celsius, fahrenheit"))
		return
	}

	unit, _ := forecast.UnitFromToken(req.Unit)
	if err := s.store.SetUnit(c.Request.Context(), unit); err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, s.store.Snapshot())
}

// refresh handles POST /api/refresh requests
func (s *HTTPServerAdapter) refresh(c *gin.Context) {
	if err := s.store.RefreshActiveAndTracked(c.Request.Context()); err != nil && !errors.IsCancelled(err) {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.store.Snapshot())
}

// RefreshAllResponse is the body of POST /api/refresh/all
type RefreshAllResponse struct {
	Report weather.RefreshReport `json:"report"`
	State  weather.State         `json:"state"`
}

// refreshAll handles POST /api/refresh/all requests
func (s *HTTPServerAdapter) refreshAll(c *gin.Context) {
	report := s.store.RefreshAllTrackedFull(c.Request.Context())
	c.JSON(http.StatusOK, RefreshAllResponse{Report: report, State: s.store.Snapshot()})
}

// respondWithBundle returns the bundle even when the refresh failed, with the error message
// alongside. Without any bundle the error decides the status.
func (s *HTTPServerAdapter) respondWithBundle(c *gin.Context, bundle *forecast.CityWeatherBundle, err error) {
	if bundle == nil {
		if err == nil {
			err = errors.NewNotFoundError("no weather data yet")
		}
		s.handleError(c, err)
		return
	}

	resp := WeatherResponse{Bundle: bundle}
	if err != nil {
		resp.Error = errors.UserMessage(err)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *HTTPServerAdapter) knownLocation(id int64) (forecast.Location, bool) {
	if active := s.store.Active(); active != nil && active.ID == id {
		return *active, true
	}
	for _, loc := range s.store.Tracked() {
		if loc.ID == id {
			return loc, true
		}
	}
	return forecast.Location{}, false
}

func parseLocationID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.NewValidationError("location id must be an integer")
	}
	return id, nil
}
