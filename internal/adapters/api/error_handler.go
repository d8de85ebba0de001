package api

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"weatherdeck.app/internal/adapters/infrastructure"
	"weatherdeck.app/internal/ports"
	errorspkg "weatherdeck.app/pkg/errors"
)

// statusClientClosedRequest is returned when the caller went away before the store finished
const statusClientClosedRequest = 499

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error     string `json:"error"`
	Type      string `json:"type"`
	Retryable bool   `json:"retryable"`
}

func statusFor(errType errorspkg.ErrorType) int {
	switch errType {
	case errorspkg.ValidationError:
		return http.StatusBadRequest
	case errorspkg.NotFoundError:
		return http.StatusNotFound
	case errorspkg.AlreadyExistsError:
		return http.StatusConflict
	case errorspkg.RemoteError, errorspkg.IncompleteDataError, errorspkg.DecodeError:
		return http.StatusBadGateway
	case errorspkg.Cancelled:
		return statusClientClosedRequest
	default:
		return http.StatusInternalServerError
	}
}

// handleError renders err with the status matching its type and the user-facing message
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	var appErr *errorspkg.AppError
	if !stderrors.As(err, &appErr) {
		s.logger.Error("Unhandled error", ports.F("error", err), ports.F("path", c.FullPath()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: errorspkg.UserMessage(err),
			Type:  errorspkg.ErrorTypeUnknown.String(),
		})
		return
	}

	status := statusFor(appErr.Type)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", ports.F("error", err), ports.F("path", c.FullPath()))
	}

	c.JSON(status, ErrorResponse{
		Error:     errorspkg.UserMessage(err),
		Type:      appErr.Type.String(),
		Retryable: appErr.Type.Retryable(),
	})
}

// getMetrics handles GET /api/metrics requests
func (s *HTTPServerAdapter) getMetrics(c *gin.Context) {
	metrics, err := s.metricsCollector.GetMetrics(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}

// HealthResponse is the body of GET /api/health
type HealthResponse struct {
	Status     string                        `json:"status"`
	Components map[string]ports.HealthStatus `json:"components"`
	CheckedAt  time.Time                     `json:"checked_at"`
}

// getHealth handles GET /api/health requests. Only an unhealthy component fails the check.
func (s *HTTPServerAdapter) getHealth(c *gin.Context) {
	results := s.healthChecker.CheckAll(c.Request.Context())
	overall := infrastructure.Overall(results)

	status := http.StatusOK
	if overall == "unhealthy" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, HealthResponse{
		Status:     overall,
		Components: results,
		CheckedAt:  time.Now().UTC(),
	})
}

// requestLogger logs one line per request through the Logger port
func requestLogger(logger ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []ports.Field{
			ports.F("method", c.Request.Method),
			ports.F("path", c.Request.URL.Path),
			ports.F("status", c.Writer.Status()),
			ports.F("duration_ms", time.Since(start).Milliseconds()),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Warn("HTTP request", fields...)
			return
		}
		logger.Debug("HTTP request", fields...)
	}
}
