package forecast

import (
	"fmt"
	"math"
	"time"
)

const civilDateLayout = "2006-01-02"

// HourlyReading is one hour of the hourly temperature series
type HourlyReading struct {
	Hour        int     `json:"hour"`
	Temperature float64 `json:"temperature"`
}

// DaySnapshot is one calendar day of weather for one location
type DaySnapshot struct {
	Date      time.Time       `json:"date"`
	High      int             `json:"high"`
	Low       int             `json:"low"`
	Current   *int            `json:"current,omitempty"`
	Condition Condition       `json:"condition"`
	Hourly    []HourlyReading `json:"hourly"`
}

// DateString returns the snapshot date as yyyy-MM-dd
func (d DaySnapshot) DateString() string {
	return d.Date.Format(civilDateLayout)
}

func (d DaySnapshot) validateHours() error {
	seen := make(map[int]bool, len(d.Hourly))
	prev := -1
	for _, h := range d.Hourly {
		if h.Hour < 0 || h.Hour > 23 {
			return fmt.Errorf("%s: hour %d out of range", d.DateString(), h.Hour)
		}
		if seen[h.Hour] {
			return fmt.Errorf("%s: duplicate hour %d", d.DateString(), h.Hour)
		}
		if h.Hour < prev {
			return fmt.Errorf("%s: hours not in order", d.DateString())
		}
		seen[h.Hour] = true
		prev = h.Hour
	}
	return nil
}

// CityWeatherBundle is the cached yesterday/today/tomorrow triple for one location
type CityWeatherBundle struct {
	LocationID int64           `json:"location_id"`
	Yesterday  DaySnapshot     `json:"yesterday"`
	Today      DaySnapshot     `json:"today"`
	Tomorrow   DaySnapshot     `json:"tomorrow"`
	Unit       MeasurementUnit `json:"unit"`
	FetchedAt  time.Time       `json:"fetched_at"`
}

// Days returns the three snapshots in calendar order
func (b *CityWeatherBundle) Days() []DaySnapshot {
	return []DaySnapshot{b.Yesterday, b.Today, b.Tomorrow}
}

// Validate checks the bundle invariants: consecutive dates, unique ordered hours,
// and a current temperature only on today
func (b *CityWeatherBundle) Validate() error {
	if b == nil {
		return fmt.Errorf("bundle is nil")
	}
	if !b.Today.Date.Equal(b.Yesterday.Date.AddDate(0, 0, 1)) || !b.Tomorrow.Date.Equal(b.Today.Date.AddDate(0, 0, 1)) {
		return fmt.Errorf("bundle dates are not consecutive: %s, %s, %s",
			b.Yesterday.DateString(), b.Today.DateString(), b.Tomorrow.DateString())
	}
	if b.Yesterday.Current != nil || b.Tomorrow.Current != nil {
		return fmt.Errorf("current temperature set outside today")
	}
	for _, d := range b.Days() {
		if err := d.validateHours(); err != nil {
			return err
		}
	}
	return nil
}

// CityWeatherSummary is the compact list projection of a bundle's today
type CityWeatherSummary struct {
	LocationID int64     `json:"location_id"`
	Current    *int      `json:"current,omitempty"`
	Low        int       `json:"low"`
	High       int       `json:"high"`
	Condition  Condition `json:"condition"`
	Timezone   string    `json:"timezone"`
}

// SummaryOf projects a bundle onto its summary
func SummaryOf(b *CityWeatherBundle, timezone string) CityWeatherSummary {
	var current *int
	if b.Today.Current != nil {
		v := *b.Today.Current
		current = &v
	}
	return CityWeatherSummary{
		LocationID: b.LocationID,
		Current:    current,
		Low:        b.Today.Low,
		High:       b.Today.High,
		Condition:  b.Today.Condition,
		Timezone:   timezone,
	}
}

// Round converts a temperature to the nearest integer, halves away from zero
func Round(v float64) int {
	return int(math.Round(v))
}

// DateOf truncates t to its civil date in t's own location
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ThreeDayWindow returns yesterday, today and tomorrow relative to now
func ThreeDayWindow(now time.Time) (yesterday, today, tomorrow time.Time) {
	today = DateOf(now)
	return today.AddDate(0, 0, -1), today, today.AddDate(0, 0, 1)
}

// FormatDate renders a civil date as yyyy-MM-dd
func FormatDate(t time.Time) string {
	return t.Format(civilDateLayout)
}

// ParseDate parses yyyy-MM-dd into a civil date in loc
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(civilDateLayout, s, loc)
}
