package domain

// ChangeClass classifies how far a proposed boundary departs from the
// current one.
type ChangeClass string

const (
	// ChangeEquivalent means the shapes match within measurement noise:
	// area delta under 1% and centroid shift under 1% of the characteristic
	// radius. Applying such an update is a no-op candidate.
	ChangeEquivalent ChangeClass = "equivalent"
	// ChangeMinor is a real but small edit.
	ChangeMinor ChangeClass = "minor"
	// ChangeSignificant means area changed by 20% or more, or the centroid
	// moved by half the characteristic radius or more. Significant updates
	// require explicit confirmation before apply.
	ChangeSignificant ChangeClass = "significant"
)

// BoundaryComparison is the result of diffing a proposed boundary against
// the stored one. Computed on demand and consumed immediately, never
// persisted.
type BoundaryComparison struct {
	Class ChangeClass `json:"class"`
	// Summary is a one-line human-readable description for operator
	// warnings.
	Summary string `json:"summary"`

	CurrentAreaSqKm  float64 `json:"current_area_sq_km"`
	ProposedAreaSqKm float64 `json:"proposed_area_sq_km"`
	// AreaDeltaPct is the relative area change in percent, signed.
	AreaDeltaPct float64 `json:"area_delta_pct"`

	// CentroidShiftKm is the great-circle distance between centroids.
	CentroidShiftKm float64 `json:"centroid_shift_km"`
	// CharacteristicRadiusKm is sqrt(area/pi) of the smaller geometry, the
	// yardstick the centroid shift is measured against.
	CharacteristicRadiusKm float64 `json:"characteristic_radius_km"`

	CurrentVertices  int `json:"current_vertices"`
	ProposedVertices int `json:"proposed_vertices"`
}

// RequiresConfirmation reports whether the change is large enough that an
// apply must be explicitly confirmed.
func (c *BoundaryComparison) RequiresConfirmation() bool {
	return c.Class == ChangeSignificant
}
