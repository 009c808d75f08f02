package domain

import "fmt"

// SimplificationTier names a precomputed resolution of a boundary.
type SimplificationTier string

const (
	// TierDetail keeps near-full resolution for map detail views.
	TierDetail SimplificationTier = "detail"
	// TierMedium is the regional overview resolution.
	TierMedium SimplificationTier = "medium"
	// TierLow is the coarse resolution for dashboard thumbnails.
	TierLow SimplificationTier = "low"
)

// TierTolerances maps each tier to its simplification tolerance in degrees.
// Roughly 5m, 55m and 220m of allowed deviation at the equator.
var TierTolerances = map[SimplificationTier]float64{
	TierDetail: 0.00005,
	TierMedium: 0.0005,
	TierLow:    0.002,
}

// Tiers lists every tier, finest first.
func Tiers() []SimplificationTier {
	return []SimplificationTier{TierDetail, TierMedium, TierLow}
}

// ParseTier validates a tier name from a request path or cache key.
func ParseTier(s string) (SimplificationTier, error) {
	switch SimplificationTier(s) {
	case TierDetail, TierMedium, TierLow:
		return SimplificationTier(s), nil
	default:
		return "", fmt.Errorf("unknown simplification tier: %s", s)
	}
}

// TierSet holds the precomputed simplified variants of an area boundary.
// A nil entry means the tier was not derived (tiny geometries keep only
// the original shape).
type TierSet struct {
	Detail *Boundary `json:"detail,omitempty"`
	Medium *Boundary `json:"medium,omitempty"`
	Low    *Boundary `json:"low,omitempty"`
}

// ForTier returns the boundary stored for the tier, or nil.
func (t *TierSet) ForTier(tier SimplificationTier) *Boundary {
	if t == nil {
		return nil
	}
	switch tier {
	case TierDetail:
		return t.Detail
	case TierMedium:
		return t.Medium
	case TierLow:
		return t.Low
	default:
		return nil
	}
}

// SetTier stores the boundary for the tier.
func (t *TierSet) SetTier(tier SimplificationTier, b *Boundary) {
	switch tier {
	case TierDetail:
		t.Detail = b
	case TierMedium:
		t.Medium = b
	case TierLow:
		t.Low = b
	}
}
