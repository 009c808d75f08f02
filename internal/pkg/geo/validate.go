package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
)

// CoordinateCheck is the outcome of coordinate validation. Every violated
// rule contributes a message; callers get the full picture in one pass.
type CoordinateCheck struct {
	OK     bool     `json:"ok"`
	Errors []string `json:"errors,omitempty"`
}

// CoordinateRules tunes optional validation gates.
type CoordinateRules struct {
	// Region, when set, additionally requires membership in the region
	// rectangle.
	Region *domain.Region
	// StrictPrecision rejects inputs carrying more than 6 decimal places
	// instead of silently truncating them later.
	StrictPrecision bool
}

// ValidateCoordinate checks a lon/lat pair against the default rules:
// finite numbers within WGS84 axis ranges.
func ValidateCoordinate(lon, lat float64) CoordinateCheck {
	return ValidateCoordinateWith(lon, lat, CoordinateRules{})
}

// ValidateCoordinateWith checks a lon/lat pair against the given rules.
// All failed checks are reported, not just the first.
func ValidateCoordinateWith(lon, lat float64, rules CoordinateRules) CoordinateCheck {
	var errs []string

	lonFinite := !math.IsNaN(lon) && !math.IsInf(lon, 0)
	latFinite := !math.IsNaN(lat) && !math.IsInf(lat, 0)
	if !lonFinite {
		errs = append(errs, "longitude is not a finite number")
	}
	if !latFinite {
		errs = append(errs, "latitude is not a finite number")
	}

	lonInRange := lonFinite && lon >= -180 && lon <= 180
	latInRange := latFinite && lat >= -90 && lat <= 90
	if lonFinite && !lonInRange {
		errs = append(errs, fmt.Sprintf("longitude %v out of range [-180, 180]", lon))
	}
	if latFinite && !latInRange {
		errs = append(errs, fmt.Sprintf("latitude %v out of range [-90, 90]", lat))
	}

	if rules.StrictPrecision {
		if lonFinite && DecimalPlaces(lon) > domain.CoordinatePrecision {
			errs = append(errs, fmt.Sprintf("longitude exceeds %d decimal places", domain.CoordinatePrecision))
		}
		if latFinite && DecimalPlaces(lat) > domain.CoordinatePrecision {
			errs = append(errs, fmt.Sprintf("latitude exceeds %d decimal places", domain.CoordinatePrecision))
		}
	}

	// Region membership only means something for points that are already
	// on the globe.
	if rules.Region != nil && lonInRange && latInRange {
		if !rules.Region.Contains(domain.Coordinate{Lon: lon, Lat: lat}) {
			errs = append(errs, fmt.Sprintf("coordinate outside region %s", rules.Region.Name))
		}
	}

	return CoordinateCheck{OK: len(errs) == 0, Errors: errs}
}

// TruncatePrecision cuts a value to 6 decimal places toward zero. This is
// truncation, never rounding: 12.3456789 becomes 12.345678. Applying it to
// an already truncated value returns the value unchanged. Non-finite input
// passes through untouched.
func TruncatePrecision(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	// Work on the decimal representation. Scaling by 1e6 and flooring
	// loses idempotence to binary rounding on some inputs.
	s := strconv.FormatFloat(v, 'f', -1, 64)
	dot := strings.IndexByte(s, '.')
	if dot < 0 || len(s)-dot-1 <= domain.CoordinatePrecision {
		return v
	}
	trimmed := s[:dot+1+domain.CoordinatePrecision]
	out, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return v
	}
	return out
}

// TruncateCoordinate applies TruncatePrecision to both axes.
func TruncateCoordinate(c domain.Coordinate) domain.Coordinate {
	return domain.Coordinate{
		Lon: TruncatePrecision(c.Lon),
		Lat: TruncatePrecision(c.Lat),
	}
}

// DecimalPlaces counts the decimal digits of a value's shortest decimal
// representation.
func DecimalPlaces(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return 0
	}
	return len(s) - dot - 1
}
