package dto

import "github.com/google/uuid"

// Point - one query coordinate in a containment batch. Range checks happen
// per point inside the batch: a bad coordinate yields a not-contained
// result instead of rejecting the whole request.
type Point struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// ContainmentBatchRequest - batch point-in-area query
type ContainmentBatchRequest struct {
	Points []Point `json:"points" validate:"required,min=1,max=10000"`
}

// PointResult - containment outcome for one point, positionally matching
// the request
type PointResult struct {
	Index           int        `json:"index"`
	Inside          bool       `json:"inside"`
	ProtectedAreaID *uuid.UUID `json:"protected_area_id,omitempty"`
}

// ContainmentMeta - batch execution details
type ContainmentMeta struct {
	Points       int   `json:"points"`
	IndexedAreas int   `json:"indexed_areas"`
	ElapsedMs    int64 `json:"elapsed_ms"`
}

// ContainmentBatchResponse - response to a containment batch query
type ContainmentBatchResponse struct {
	Results []PointResult   `json:"results"`
	Meta    ContainmentMeta `json:"meta"`
}
