package domain

import (
	"time"

	"github.com/google/uuid"
)

// VesselEventType discriminates what a vessel event row records.
type VesselEventType string

const (
	// VesselEventFishing is a detected fishing activity episode.
	VesselEventFishing VesselEventType = "fishing"
	// VesselEventPresence is a tracked stay inside a protected area.
	VesselEventPresence VesselEventType = "mpa_presence"
	// VesselEventDarkGap is a gap in AIS transmissions.
	VesselEventDarkGap VesselEventType = "ais_gap"
)

// VesselEvent is one observed vessel episode produced by the tracking
// pipeline. Fishing detections, MPA stays and AIS gaps share the shape;
// EndedAt is nil while the episode is still open.
type VesselEvent struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	VesselID        string          `json:"vessel_id" db:"vessel_id"`
	VesselName      string          `json:"vessel_name" db:"vessel_name"`
	IsFishingVessel bool            `json:"is_fishing_vessel" db:"is_fishing_vessel"`
	EventType       VesselEventType `json:"event_type" db:"event_type"`
	// Lat/Lon is the event position: the detection point for fishing
	// events, the entry point for stays, the last known position for gaps.
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
	// ProtectedAreaID is set when the pipeline resolved the event to an
	// area (stays always, fishing detections when inside one).
	ProtectedAreaID *uuid.UUID `json:"protected_area_id,omitempty" db:"protected_area_id"`
	StartedAt       time.Time  `json:"started_at" db:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty" db:"ended_at"`
}

// Location returns the event position as a coordinate.
func (e *VesselEvent) Location() Coordinate {
	return Coordinate{Lon: e.Lon, Lat: e.Lat}
}

// Duration returns how long the episode has lasted, using now for episodes
// that are still open.
func (e *VesselEvent) Duration(now time.Time) time.Duration {
	end := now
	if e.EndedAt != nil {
		end = *e.EndedAt
	}
	if end.Before(e.StartedAt) {
		return 0
	}
	return end.Sub(e.StartedAt)
}
