package domain

import (
	"time"

	"github.com/google/uuid"
)

// CitizenObservation is a community-submitted reef condition report.
type CitizenObservation struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Reporter string    `json:"reporter" db:"reporter"`
	// HealthStatus is an ordinal reef health score, 0 (dead/destroyed) to
	// 4 (thriving). Lower means worse.
	HealthStatus int     `json:"health_status" db:"health_status"`
	Notes        string  `json:"notes" db:"notes"`
	Lat          float64 `json:"lat" db:"lat"`
	Lon          float64 `json:"lon" db:"lon"`

	ProtectedAreaID *uuid.UUID `json:"protected_area_id,omitempty" db:"protected_area_id"`
	ObservedAt      time.Time  `json:"observed_at" db:"observed_at"`
}

// Location returns the report position as a coordinate.
func (o *CitizenObservation) Location() Coordinate {
	return Coordinate{Lon: o.Lon, Lat: o.Lat}
}
