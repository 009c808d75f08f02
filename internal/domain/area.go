package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProtectedArea is a marine protected area with its authoritative boundary
// and precomputed simplification tiers.
type ProtectedArea struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Designation  string    `json:"designation" db:"designation"`
	IsNoTakeZone bool      `json:"is_no_take_zone" db:"is_no_take_zone"`

	// Boundary is the full-resolution geometry, the source of truth for
	// containment checks and tier derivation.
	Boundary *Boundary `json:"boundary,omitempty" db:"-"`
	// Tiers holds the simplified variants served to map clients.
	Tiers TierSet `json:"-" db:"-"`

	CenterLat float64 `json:"center_lat" db:"center_lat"`
	CenterLon float64 `json:"center_lon" db:"center_lon"`
	AreaSqKm  float64 `json:"area_sq_km" db:"area_sq_km"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Center returns the stored centroid as a coordinate.
func (a *ProtectedArea) Center() Coordinate {
	return Coordinate{Lon: a.CenterLon, Lat: a.CenterLat}
}
