package domain

import (
	"time"

	"github.com/google/uuid"
)

// BleachingReading is one satellite heat stress measurement for a reef site.
type BleachingReading struct {
	ID       uuid.UUID `json:"id" db:"id"`
	SiteName string    `json:"site_name" db:"site_name"`
	Lat      float64   `json:"lat" db:"lat"`
	Lon      float64   `json:"lon" db:"lon"`
	// AlertLevel is the NOAA bleaching alert level, 0 (no stress) to 4
	// (mortality likely).
	AlertLevel int `json:"alert_level" db:"alert_level"`
	// DegreeHeatingWeek is accumulated heat stress in degC-weeks.
	DegreeHeatingWeek float64 `json:"degree_heating_week" db:"degree_heating_week"`
	// SstAnomaly is the sea surface temperature anomaly in degC.
	SstAnomaly float64 `json:"sst_anomaly" db:"sst_anomaly"`
	SstCelsius float64 `json:"sst_celsius" db:"sst_celsius"`

	ProtectedAreaID *uuid.UUID `json:"protected_area_id,omitempty" db:"protected_area_id"`
	MeasuredAt      time.Time  `json:"measured_at" db:"measured_at"`
}

// Location returns the reading position as a coordinate.
func (r *BleachingReading) Location() Coordinate {
	return Coordinate{Lon: r.Lon, Lat: r.Lat}
}
