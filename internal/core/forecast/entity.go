// Package forecast holds the weather domain model shared by the gateway and the store.
package forecast

import (
	"fmt"
	"strconv"
	"strings"

	"weatherdeck.app/pkg/validation"
)

// MeasurementUnit is the temperature unit the user has selected
type MeasurementUnit int

const (
	UnitMetric MeasurementUnit = iota
	UnitImperial
)

// String returns the user-facing name of the unit
func (u MeasurementUnit) String() string {
	switch u {
	case UnitImperial:
		return "imperial"
	default:
		return "metric"
	}
}

// Symbol returns the display symbol of the unit
func (u MeasurementUnit) Symbol() string {
	if u == UnitImperial {
		return "°F"
	}
	return "°C"
}

// WireToken returns the temperature_unit value sent to the forecast endpoint
func (u MeasurementUnit) WireToken() string {
	if u == UnitImperial {
		return "fahrenheit"
	}
	return "celsius"
}

// IsValid checks if the unit is one of the known values
func (u MeasurementUnit) IsValid() bool {
	return u == UnitMetric || u == UnitImperial
}

// UnitFromToken accepts both wire tokens and user-facing names
func UnitFromToken(s string) (MeasurementUnit, error) {
	switch validation.NormalizeKey(s) {
	case "celsius", "metric":
		return UnitMetric, nil
	case "fahrenheit", "imperial":
		return UnitImperial, nil
	default:
		return UnitMetric, fmt.Errorf("unknown measurement unit %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (u MeasurementUnit) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (u *MeasurementUnit) UnmarshalText(text []byte) error {
	parsed, err := UnitFromToken(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Location is a place the user can track
type Location struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Region    string  `json:"region"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Key returns the string form of the identifier used by caches and summaries
func (l Location) Key() string {
	return strconv.FormatInt(l.ID, 10)
}

// SameIdentity compares by identifier
func (l Location) SameIdentity(other Location) bool {
	return l.ID == other.ID
}

// SamePlace compares by name and region, ignoring case and surrounding spaces
func (l Location) SamePlace(other Location) bool {
	return validation.NormalizeKey(l.Name) == validation.NormalizeKey(other.Name) &&
		validation.NormalizeKey(l.Region) == validation.NormalizeKey(other.Region)
}

// Validate checks that the location can be sent to the forecast endpoint
func (l Location) Validate() error {
	if !validation.IsNotEmpty(l.Name) {
		return fmt.Errorf("location name cannot be empty")
	}
	if !validation.IsValidLatitude(l.Latitude) {
		return fmt.Errorf("latitude %v out of range", l.Latitude)
	}
	if !validation.IsValidLongitude(l.Longitude) {
		return fmt.Errorf("longitude %v out of range", l.Longitude)
	}
	return nil
}

// String returns "Name, Region"
func (l Location) String() string {
	if strings.TrimSpace(l.Region) == "" {
		return l.Name
	}
	return l.Name + ", " + l.Region
}

// DefaultLocation is used on first run, before the user picks anything
func DefaultLocation() Location {
	return Location{
		ID:        703448,
		Name:      "Kyiv",
		Region:    "Kyiv City",
		Country:   "Ukraine",
		Latitude:  50.45466,
		Longitude: 30.5238,
	}
}

// Condition is the categorical sky/precipitation state
type Condition string

const (
	ConditionClear        Condition = "clear"
	ConditionPartlyCloudy Condition = "partly-cloudy"
	ConditionCloudy       Condition = "cloudy"
	ConditionRain         Condition = "rain"
	ConditionSnow         Condition = "snow"
	ConditionSleet        Condition = "sleet"
	ConditionStorm        Condition = "storm"
	ConditionFog          Condition = "fog"
)

var conditionByCode = map[int]Condition{
	0:  ConditionClear,
	1:  ConditionPartlyCloudy,
	2:  ConditionPartlyCloudy,
	3:  ConditionCloudy,
	45: ConditionFog,
	48: ConditionFog,
	51: ConditionRain,
	53: ConditionRain,
	55: ConditionRain,
	56: ConditionRain,
	57: ConditionRain,
	61: ConditionRain,
	63: ConditionRain,
	65: ConditionRain,
	80: ConditionRain,
	81: ConditionRain,
	82: ConditionRain,
	66: ConditionSleet,
	67: ConditionSleet,
	71: ConditionSnow,
	73: ConditionSnow,
	75: ConditionSnow,
	77: ConditionSnow,
	85: ConditionSnow,
	86: ConditionSnow,
	95: ConditionStorm,
	96: ConditionStorm,
	99: ConditionStorm,
}

// MapCondition translates a WMO weather code into a Condition. Unknown codes are cloudy.
func MapCondition(code int) Condition {
	if c, ok := conditionByCode[code]; ok {
		return c
	}
	return ConditionCloudy
}
