// Command mock-openmeteo serves canned Open-Meteo forecast and geocoding responses so the
// app can run without network access. Point WEATHER_FORECAST_BASE_URL at /v1/forecast and
// WEATHER_GEOCODING_BASE_URL at /v1/search.
package main

import (
	"log/slog"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"weatherdeck.app/internal/core/forecast"
)

type place struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1,omitempty"`
	Timezone  string  `json:"-"`
}

var places = []place{
	{ID: 703448, Name: "Kyiv", Latitude: 50.45466, Longitude: 30.5238, Country: "Ukraine", Admin1: "Kyiv City", Timezone: "Europe/Kyiv"},
	{ID: 702550, Name: "Lviv", Latitude: 49.83826, Longitude: 24.02324, Country: "Ukraine", Admin1: "Lviv Oblast", Timezone: "Europe/Kyiv"},
	{ID: 698740, Name: "Odesa", Latitude: 46.47747, Longitude: 30.73262, Country: "Ukraine", Admin1: "Odesa Oblast", Timezone: "Europe/Kyiv"},
	{ID: 2643743, Name: "London", Latitude: 51.50853, Longitude: -0.12574, Country: "United Kingdom", Admin1: "England", Timezone: "Europe/London"},
	{ID: 2988507, Name: "Paris", Latitude: 48.85341, Longitude: 2.3488, Country: "France", Admin1: "Île-de-France", Timezone: "Europe/Paris"},
	{ID: 2950159, Name: "Berlin", Latitude: 52.52437, Longitude: 13.41053, Country: "Germany", Admin1: "Land Berlin", Timezone: "Europe/Berlin"},
}

type dailyBlock struct {
	Time           []string  `json:"time"`
	TemperatureMax []float64 `json:"temperature_2m_max"`
	TemperatureMin []float64 `json:"temperature_2m_min"`
	WeatherCode    []int     `json:"weathercode"`
}

type hourlyBlock struct {
	Time        []string  `json:"time"`
	Temperature []float64 `json:"temperature_2m"`
}

type currentBlock struct {
	Temperature float64 `json:"temperature"`
	WeatherCode int     `json:"weathercode"`
}

type forecastBody struct {
	Latitude       float64      `json:"latitude"`
	Longitude      float64      `json:"longitude"`
	Timezone       string       `json:"timezone"`
	CurrentWeather currentBlock `json:"current_weather"`
	Daily          dailyBlock   `json:"daily"`
	Hourly         hourlyBlock  `json:"hourly"`
}

var codes = []int{0, 2, 3, 61, 71, 45, 95}

func main() {
	gin.SetMode(gin.ReleaseMode)

	addr := ":8081"
	if port := os.Getenv("MOCK_PORT"); port != "" {
		addr = ":" + port
	}

	slog.Info("Mock Open-Meteo server starting", "addr", addr)
	if err := newRouter(time.Now).Run(addr); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}

func newRouter(now func() time.Time) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/v1/search", searchHandler)
	r.GET("/v1/forecast", forecastHandler(now))
	return r
}

func searchHandler(c *gin.Context) {
	name := strings.ToLower(strings.TrimSpace(c.Query("name")))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "reason": "Parameter 'name' is required"})
		return
	}
	if name == "servererror" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "reason": "Internal server error"})
		return
	}

	count := 10
	if n, err := strconv.Atoi(c.Query("count")); err == nil && n > 0 {
		count = n
	}

	results := make([]place, 0)
	for _, p := range places {
		if strings.HasPrefix(strings.ToLower(p.Name), name) && len(results) < count {
			results = append(results, p)
		}
	}

	if len(results) == 0 {
		// the real endpoint omits the key entirely when nothing matches
		c.JSON(http.StatusOK, gin.H{"generationtime_ms": 0.1})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func forecastHandler(now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		lat, latErr := strconv.ParseFloat(c.Query("latitude"), 64)
		lon, lonErr := strconv.ParseFloat(c.Query("longitude"), 64)
		if latErr != nil || lonErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": true, "reason": "latitude and longitude are required"})
			return
		}

		// null island stands in for an upstream outage
		if lat == 0 && lon == 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": true, "reason": "Service unavailable"})
			return
		}

		yesterday, _, tomorrow := forecast.ThreeDayWindow(now())
		start, end := yesterday, tomorrow
		if d, err := forecast.ParseDate(c.Query("start_date"), time.UTC); err == nil {
			start = d
		}
		if d, err := forecast.ParseDate(c.Query("end_date"), time.UTC); err == nil {
			end = d
		}
		if end.Before(start) {
			c.JSON(http.StatusBadRequest, gin.H{"error": true, "reason": "end_date is before start_date"})
			return
		}

		fahrenheit := c.Query("temperature_unit") == "fahrenheit"
		c.JSON(http.StatusOK, buildForecast(lat, lon, start, end, fahrenheit))
	}
}

// buildForecast derives stable temperatures from the coordinate so repeated calls agree
func buildForecast(lat, lon float64, start, end time.Time, fahrenheit bool) forecastBody {
	base := 25 - math.Abs(lat)/3
	seed := int(math.Abs(lat*7 + lon*3))

	convert := func(celsius float64) float64 {
		if fahrenheit {
			celsius = celsius*9/5 + 32
		}
		return math.Round(celsius*10) / 10
	}

	body := forecastBody{
		Latitude:  lat,
		Longitude: lon,
		Timezone:  timezoneFor(lat, lon),
	}

	day := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		offset := float64((seed+day)%5) - 2
		high := base + offset + 4
		low := base + offset - 4

		body.Daily.Time = append(body.Daily.Time, forecast.FormatDate(d))
		body.Daily.TemperatureMax = append(body.Daily.TemperatureMax, convert(high))
		body.Daily.TemperatureMin = append(body.Daily.TemperatureMin, convert(low))
		body.Daily.WeatherCode = append(body.Daily.WeatherCode, codes[(seed+day)%len(codes)])

		for hour := 0; hour < 24; hour++ {
			curve := math.Sin(float64(hour-9) * math.Pi / 12)
			body.Hourly.Time = append(body.Hourly.Time, d.Add(time.Duration(hour)*time.Hour).Format("2006-01-02T15:04"))
			body.Hourly.Temperature = append(body.Hourly.Temperature, convert(low+(high-low)*(curve+1)/2))
		}
		day++
	}

	body.CurrentWeather = currentBlock{
		Temperature: convert(base + float64(seed%5) - 2),
		WeatherCode: codes[(seed+1)%len(codes)],
	}
	return body
}

func timezoneFor(lat, lon float64) string {
	for _, p := range places {
		if math.Abs(p.Latitude-lat) < 0.5 && math.Abs(p.Longitude-lon) < 0.5 {
			return p.Timezone
		}
	}
	return "GMT"
}
