package dto

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
	"github.com/caribdigital/coralledgerblue-sub004/internal/pkg/geo"
)

// BoundaryUpdateRequest - proposed boundary change for a protected area
type BoundaryUpdateRequest struct {
	// Geometry is a GeoJSON Polygon or MultiPolygon.
	Geometry json.RawMessage `json:"geometry" validate:"required" swaggertype:"object"`
	// Confirm acknowledges a significant change. Without it, significant
	// changes are rejected so operators see the comparison first.
	Confirm bool `json:"confirm"`
}

// BoundaryPreviewResponse - validation and comparison outcome, nothing applied
type BoundaryPreviewResponse struct {
	Valid                bool                       `json:"valid"`
	FailedGates          []geo.GateFailure          `json:"failed_gates,omitempty"`
	Comparison           *domain.BoundaryComparison `json:"comparison,omitempty"`
	RequiresConfirmation bool                       `json:"requires_confirmation"`
}

// BoundaryApplyResponse - outcome of an applied boundary change
type BoundaryApplyResponse struct {
	AreaID     uuid.UUID                 `json:"area_id"`
	Comparison domain.BoundaryComparison `json:"comparison"`
	AreaSqKm   float64                   `json:"area_sq_km"`
	// TierVertices maps "full" and each derived tier to its vertex count.
	TierVertices map[string]int `json:"tier_vertices"`
}
