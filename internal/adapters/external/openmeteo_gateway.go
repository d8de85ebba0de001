package external

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"weatherdeck.app/internal/core/forecast"
	"weatherdeck.app/internal/ports"
	"weatherdeck.app/pkg/errors"
)

const (
	DefaultForecastBaseURL  = "https://api.open-meteo.com/v1/forecast"
	DefaultGeocodingBaseURL = "https://geocoding-api.open-meteo.com/v1/search"

	defaultSearchCount    = 10
	defaultSearchLanguage = "en"
	defaultRequestTimeout = 12 * time.Second

	hourlyLayout = "2006-01-02T15:04"
)

// Clock returns the current wall-clock time. The gateway computes "today" from it.
type Clock func() time.Time

// OpenMeteoGatewayParams holds parameters for creating the Open-Meteo gateway
type OpenMeteoGatewayParams struct {
	Config  ports.WeatherConfig
	Client  *http.Client
	Clock   Clock
	Backoff BackoffConfig
}

// OpenMeteoGateway implements WeatherGateway against the Open-Meteo forecast and geocoding APIs
type OpenMeteoGateway struct {
	forecastBaseURL  string
	geocodingBaseURL string
	timeout          time.Duration
	searchCount      int
	searchLanguage   string
	clock            Clock

	forecast  *resilientClient
	geocoding *resilientClient
}

// NewOpenMeteoGateway creates a new gateway. Base URLs are validated per request so a bad
// value surfaces as a Configuration error from the call that uses it.
func NewOpenMeteoGateway(params OpenMeteoGatewayParams) *OpenMeteoGateway {
	cfg := params.Config

	forecastURL := cfg.ForecastBaseURL
	if forecastURL == "" {
		forecastURL = DefaultForecastBaseURL
	}
	geocodingURL := cfg.GeocodingBaseURL
	if geocodingURL == "" {
		geocodingURL = DefaultGeocodingBaseURL
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	count := cfg.SearchCount
	if count <= 0 {
		count = defaultSearchCount
	}
	language := cfg.SearchLanguage
	if language == "" {
		language = defaultSearchLanguage
	}
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}
	backoff := params.Backoff
	if backoff.InitialInterval <= 0 {
		backoff = DefaultBackoff(cfg.MaxRetries)
	}

	return &OpenMeteoGateway{
		forecastBaseURL:  forecastURL,
		geocodingBaseURL: geocodingURL,
		timeout:          timeout,
		searchCount:      count,
		searchLanguage:   language,
		clock:            clock,
		forecast:         newResilientClient("open-meteo-forecast", params.Client, backoff),
		geocoding:        newResilientClient("open-meteo-geocoding", params.Client, backoff),
	}
}

type forecastResponse struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	Timezone       string  `json:"timezone"`
	CurrentWeather *struct {
		Temperature float64 `json:"temperature"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
	Daily *struct {
		Time           []string   `json:"time"`
		TemperatureMax []*float64 `json:"temperature_2m_max"`
		TemperatureMin []*float64 `json:"temperature_2m_min"`
		WeatherCode    []*int     `json:"weathercode"`
	} `json:"daily"`
	Hourly *struct {
		Time        []string   `json:"time"`
		Temperature []*float64 `json:"temperature_2m"`
	} `json:"hourly"`
}

type geocodingResponse struct {
	Results []struct {
		ID        int64   `json:"id"`
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Country   string  `json:"country"`
		Admin1    string  `json:"admin1"`
	} `json:"results"`
}

// FetchWeather retrieves yesterday, today and tomorrow for a location in one request
func (g *OpenMeteoGateway) FetchWeather(ctx context.Context, location forecast.Location, unit forecast.MeasurementUnit) (*ports.ForecastResult, error) {
	if err := location.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	now := g.clock()
	yesterday, _, tomorrow := forecast.ThreeDayWindow(now)

	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(location.Latitude, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(location.Longitude, 'f', -1, 64))
	query.Set("daily", "temperature_2m_max,temperature_2m_min,weathercode")
	query.Set("hourly", "temperature_2m")
	query.Set("current_weather", "true")
	query.Set("temperature_unit", unit.WireToken())
	query.Set("timezone", "auto")
	query.Set("start_date", forecast.FormatDate(yesterday))
	query.Set("end_date", forecast.FormatDate(tomorrow))

	endpoint, err := buildURL(g.forecastBaseURL, query)
	if err != nil {
		return nil, err
	}

	reqCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	body, err := g.forecast.get(reqCtx, endpoint)
	if err != nil {
		return nil, classify(ctx, "forecast request", err)
	}

	var resp forecastResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.NewDecodeError("malformed forecast response", err)
	}

	bundle, err := buildBundle(&resp, now)
	if err != nil {
		return nil, err
	}
	bundle.LocationID = location.ID
	bundle.Unit = unit
	bundle.FetchedAt = now

	return &ports.ForecastResult{Bundle: bundle, Timezone: resp.Timezone}, nil
}

// SearchLocations looks up places by name. A blank query returns no results without a request.
func (g *OpenMeteoGateway) SearchLocations(ctx context.Context, query string) ([]forecast.Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []forecast.Location{}, nil
	}

	params := url.Values{}
	params.Set("name", query)
	params.Set("count", strconv.Itoa(g.searchCount))
	params.Set("language", g.searchLanguage)
	params.Set("format", "json")

	endpoint, err := buildURL(g.geocodingBaseURL, params)
	if err != nil {
		return nil, err
	}

	reqCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	body, err := g.geocoding.get(reqCtx, endpoint)
	if err != nil {
		return nil, classify(ctx, "geocoding request", err)
	}

	var resp geocodingResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.NewDecodeError("malformed geocoding response", err)
	}

	locations := make([]forecast.Location, 0, len(resp.Results))
	for _, r := range resp.Results {
		region := r.Admin1
		if strings.TrimSpace(region) == "" {
			region = r.Country
		}
		locations = append(locations, forecast.Location{
			ID:        r.ID,
			Name:      r.Name,
			Region:    region,
			Country:   r.Country,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
		})
	}
	return locations, nil
}

// CircuitStates reports the breaker state of each endpoint: closed, half-open or open
func (g *OpenMeteoGateway) CircuitStates() map[string]string {
	return map[string]string{
		"forecast":  g.forecast.state(),
		"geocoding": g.geocoding.state(),
	}
}

func buildURL(base string, query url.Values) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", errors.NewConfigurationError(fmt.Sprintf("invalid endpoint URL %q", base), err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", errors.NewConfigurationError(fmt.Sprintf("invalid endpoint URL %q", base), nil)
	}
	u.RawQuery = query.Encode()
	return u.String(), nil
}

// classify maps a request failure onto the error taxonomy. Only the caller's own context
// turns a failure into a cancellation; the per-request timeout is a remote failure.
func classify(callerCtx context.Context, op string, err error) error {
	if callerCtx.Err() != nil {
		return errors.NewCancelledError(op+" cancelled", callerCtx.Err())
	}
	if errors.TypeOf(err) != errors.ErrorTypeUnknown {
		return err
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewRemoteError(op+" timed out", 0, err)
	}
	return errors.NewRemoteError(op+" failed", 0, err)
}

func buildBundle(resp *forecastResponse, now time.Time) (*forecast.CityWeatherBundle, error) {
	daily := resp.Daily
	if daily == nil || len(daily.Time) < 3 {
		return nil, errors.NewIncompleteDataError("forecast response has fewer than 3 daily entries")
	}
	n := len(daily.Time)
	if len(daily.TemperatureMax) != n || len(daily.TemperatureMin) != n || len(daily.WeatherCode) != n {
		return nil, errors.NewIncompleteDataError("forecast daily arrays are not aligned")
	}

	yesterday, today, tomorrow := forecast.ThreeDayWindow(now)
	dates := []time.Time{yesterday, today, tomorrow}

	byDate := make(map[string]int, n)
	for i, d := range daily.Time {
		byDate[d] = i
	}

	hourly, err := bucketHourly(resp, dates)
	if err != nil {
		return nil, err
	}

	days := make([]forecast.DaySnapshot, len(dates))
	for i, date := range dates {
		key := forecast.FormatDate(date)
		idx, ok := byDate[key]
		if !ok {
			return nil, errors.NewIncompleteDataError(fmt.Sprintf("forecast response has no daily entry for %s", key))
		}
		high, low := daily.TemperatureMax[idx], daily.TemperatureMin[idx]
		if high == nil || low == nil {
			return nil, errors.NewIncompleteDataError(fmt.Sprintf("forecast response has no temperatures for %s", key))
		}
		condition := forecast.ConditionCloudy
		if code := daily.WeatherCode[idx]; code != nil {
			condition = forecast.MapCondition(*code)
		}
		days[i] = forecast.DaySnapshot{
			Date:      date,
			High:      forecast.Round(*high),
			Low:       forecast.Round(*low),
			Condition: condition,
			Hourly:    hourly[key],
		}
	}

	if cw := resp.CurrentWeather; cw != nil {
		current := forecast.Round(cw.Temperature)
		days[1].Current = &current
	}

	return &forecast.CityWeatherBundle{
		Yesterday: days[0],
		Today:     days[1],
		Tomorrow:  days[2],
	}, nil
}

// bucketHourly groups hourly readings by their local calendar date, keeping only the target
// dates. A repeated hour within one date keeps the last reading.
func bucketHourly(resp *forecastResponse, dates []time.Time) (map[string][]forecast.HourlyReading, error) {
	buckets := make(map[string]map[int]float64, len(dates))
	for _, d := range dates {
		buckets[forecast.FormatDate(d)] = make(map[int]float64)
	}

	if h := resp.Hourly; h != nil {
		if len(h.Temperature) != len(h.Time) {
			return nil, errors.NewIncompleteDataError("forecast hourly arrays are not aligned")
		}
		for i, stamp := range h.Time {
			ts, err := time.Parse(hourlyLayout, stamp)
			if err != nil {
				return nil, errors.NewDecodeError(fmt.Sprintf("malformed hourly timestamp %q", stamp), err)
			}
			bucket, ok := buckets[ts.Format("2006-01-02")]
			if !ok || h.Temperature[i] == nil {
				continue
			}
			bucket[ts.Hour()] = *h.Temperature[i]
		}
	}

	out := make(map[string][]forecast.HourlyReading, len(buckets))
	for date, hours := range buckets {
		readings := make([]forecast.HourlyReading, 0, len(hours))
		for hour, temp := range hours {
			readings = append(readings, forecast.HourlyReading{Hour: hour, Temperature: temp})
		}
		sort.Slice(readings, func(i, j int) bool { return readings[i].Hour < readings[j].Hour })
		out[date] = readings
	}
	return out, nil
}
