package external

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"weatherdeck.app/pkg/errors"
)

const maxErrorBodyBytes = 4096

// BackoffConfig controls exponential backoff between attempts
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultBackoff retries transient failures with 300ms, 600ms, 1.2s... capped at 4s
func DefaultBackoff(maxRetries int) BackoffConfig {
	return BackoffConfig{
		MaxRetries:      maxRetries,
		InitialInterval: 300 * time.Millisecond,
		MaxInterval:     4 * time.Second,
	}
}

func (b BackoffConfig) delay(attempt int) time.Duration {
	d := b.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
	if b.MaxInterval > 0 && d > b.MaxInterval {
		d = b.MaxInterval
	}
	return d
}

// resilientClient issues GET requests through a circuit breaker with bounded retries
type resilientClient struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	backoff BackoffConfig
}

func newResilientClient(name string, client *http.Client, backoff BackoffConfig) *resilientClient {
	if client == nil {
		client = http.DefaultClient
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// caller mistakes and cancellations say nothing about the health of the endpoint
		IsSuccessful: func(err error) bool {
			return err == nil || !countsAgainstBreaker(err)
		},
	})
	if backoff.InitialInterval <= 0 {
		backoff = DefaultBackoff(backoff.MaxRetries)
	}
	if backoff.MaxRetries < 0 {
		backoff.MaxRetries = 0
	}
	return &resilientClient{client: client, breaker: breaker, backoff: backoff}
}

// get returns the body of a 2xx response to rawURL. Non-2xx statuses come back as Remote
// errors carrying the status code; transport errors are returned unwrapped for the caller
// to classify against its own context.
func (c *resilientClient) get(ctx context.Context, rawURL string) ([]byte, error) {
	attempt := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := c.breaker.Execute(func() (interface{}, error) {
			return c.once(ctx, rawURL)
		})
		if err == nil {
			body, ok := result.([]byte)
			if !ok {
				return nil, fmt.Errorf("unexpected result type %T from circuit breaker", result)
			}
			return body, nil
		}

		if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, errors.NewRemoteError("weather service temporarily unavailable", 0, err)
		}
		if !retryable(err) || attempt >= c.backoff.MaxRetries {
			return nil, err
		}

		timer := time.NewTimer(c.backoff.delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		attempt++
	}
}

func (c *resilientClient) state() string {
	return c.breaker.State().String()
}

func (c *resilientClient) once(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.NewConfigurationError("cannot build request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, errors.NewRemoteError(fmt.Sprintf("upstream returned status %d", resp.StatusCode), resp.StatusCode, nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func statusOf(err error) int {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return 0
}

// retryable reports transport failures, 429 and 5xx
func retryable(err error) bool {
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return false
	}
	switch errors.TypeOf(err) {
	case errors.RemoteError:
		code := statusOf(err)
		return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
	case errors.ErrorTypeUnknown:
		return true
	default:
		return false
	}
}

func countsAgainstBreaker(err error) bool {
	if stderrors.Is(err, context.Canceled) {
		return false
	}
	switch errors.TypeOf(err) {
	case errors.ConfigurationError:
		return false
	case errors.RemoteError:
		code := statusOf(err)
		return code == 0 || code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
	default:
		return true
	}
}
