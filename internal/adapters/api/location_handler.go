package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"weatherdeck.app/internal/core/forecast"
	"weatherdeck.app/pkg/errors"
)

// LocationRequest represents a location sent by the client, usually a search result
type LocationRequest struct {
	ID        int64   `json:"id" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Region    string  `json:"region"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
}

func (r LocationRequest) toLocation() forecast.Location {
	return forecast.Location{
		ID:        r.ID,
		Name:      r.Name,
		Region:    r.Region,
		Country:   r.Country,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
	}
}

// ReorderRequest moves the tracked entry at From so that it ends up at index To
type ReorderRequest struct {
	From *int `json:"from" binding:"required"`
	To   *int `json:"to" binding:"required"`
}

// AddLocationResponse reports whether the location was new
type AddLocationResponse struct {
	Added   bool                `json:"added"`
	Tracked []forecast.Location `json:"tracked"`
}

func (s *HTTPServerAdapter) bindLocation(c *gin.Context) (forecast.Location, bool) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, errors.NewValidationError("Invalid location"))
		return forecast.Location{}, false
	}
	return req.toLocation(), true
}

// addLocation handles POST /api/locations requests
func (s *HTTPServerAdapter) addLocation(c *gin.Context) {
	loc, ok := s.bindLocation(c)
	if !ok {
		return
	}

	added, err := s.store.AddLocation(c.Request.Context(), loc)
	if err != nil {
		s.handleError(c, err)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	c.JSON(status, AddLocationResponse{Added: added, Tracked: s.store.Tracked()})
}

// selectLocation handles POST /api/locations/select requests
func (s *HTTPServerAdapter) selectLocation(c *gin.Context) {
	loc, ok := s.bindLocation(c)
	if !ok {
		return
	}

	bundle, err := s.store.SelectLocation(c.Request.Context(), loc)
	s.respondWithBundle(c, bundle, err)
}

// addAndSelect handles POST /api/locations/add-and-select requests
func (s *HTTPServerAdapter) addAndSelect(c *gin.Context) {
	loc, ok := s.bindLocation(c)
	if !ok {
		return
	}

	bundle, err := s.store.AddAndSelect(c.Request.Context(), loc)
	s.respondWithBundle(c, bundle, err)
}

// removeLocation handles DELETE /api/locations/:id requests
func (s *HTTPServerAdapter) removeLocation(c *gin.Context) {
	id, err := parseLocationID(c.Param("id"))
	if err != nil {
		s.handleError(c, err)
		return
	}

	removed, err := s.store.RemoveLocation(c.Request.Context(), id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	if !removed {
		s.handleError(c, errors.NewNotFoundError("location is not tracked"))
		return
	}

	c.JSON(http.StatusOK, s.store.Snapshot())
}

// reorder handles POST /api/locations/reorder requests
func (s *HTTPServerAdapter) reorder(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, errors.NewValidationError("from and to are required"))
		return
	}

	if !s.store.Reorder(c.Request.Context(), *req.From, *req.To) {
		s.handleError(c, errors.NewValidationError("index out of range"))
		return
	}

	c.JSON(http.StatusOK, s.store.Tracked())
}
