package validation

import (
	"math"
	"strings"
)

// IsNotEmpty checks if string is not empty after trimming
func IsNotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// TrimAndValidate trims string and validates it's not empty
func TrimAndValidate(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, trimmed != ""
}

// IsValidLatitude reports whether lat is a finite value in [-90, 90]
func IsValidLatitude(lat float64) bool {
	return !math.IsNaN(lat) && lat >= -90 && lat <= 90
}

// IsValidLongitude reports whether lon is a finite value in [-180, 180]
func IsValidLongitude(lon float64) bool {
	return !math.IsNaN(lon) && lon >= -180 && lon <= 180
}

// IsValidUnitName accepts both the user-facing names and the wire tokens
func IsValidUnitName(unit string) bool {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "metric", "imperial", "celsius", "fahrenheit":
		return true
	}
	return false
}

// NormalizeKey lowercases and trims s for case-insensitive comparisons
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
