package geo

import (
	"fmt"
	"math"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
)

// Classification thresholds. Documented here as the single source of truth:
// shapes are equivalent when the area delta stays under 1% and the centroid
// moves less than 1% of the characteristic radius; a change is significant
// at a 20% area delta or a centroid shift of half that radius; everything
// between is minor.
const (
	equivalentAreaPct      = 1.0
	equivalentShiftFactor  = 0.01
	significantAreaPct     = 20.0
	significantShiftFactor = 0.5
)

// Compare diffs a proposed boundary against the current one and classifies
// the change. Purely computational; callers run it before committing a
// boundary update so operators can be warned about large distortions coming
// in from external sources.
func Compare(current, proposed *domain.Boundary) domain.BoundaryComparison {
	currentArea := AreaSqKm(current)
	proposedArea := AreaSqKm(proposed)

	var deltaPct float64
	switch {
	case currentArea > 0:
		deltaPct = (proposedArea - currentArea) / currentArea * 100
	case proposedArea > 0:
		deltaPct = 100
	}

	shiftKm := Distance(Centroid(current), Centroid(proposed))

	radius := math.Sqrt(math.Min(currentArea, proposedArea) / math.Pi)

	class := domain.ChangeMinor
	switch {
	case math.Abs(deltaPct) >= significantAreaPct || (radius > 0 && shiftKm >= significantShiftFactor*radius):
		class = domain.ChangeSignificant
	case math.Abs(deltaPct) < equivalentAreaPct && (radius == 0 || shiftKm < equivalentShiftFactor*radius):
		class = domain.ChangeEquivalent
	}

	result := domain.BoundaryComparison{
		Class:                  class,
		CurrentAreaSqKm:        currentArea,
		ProposedAreaSqKm:       proposedArea,
		AreaDeltaPct:           deltaPct,
		CentroidShiftKm:        shiftKm,
		CharacteristicRadiusKm: radius,
		CurrentVertices:        current.VertexCount(),
		ProposedVertices:       proposed.VertexCount(),
	}
	result.Summary = summarize(result)
	return result
}

func summarize(c domain.BoundaryComparison) string {
	switch c.Class {
	case domain.ChangeEquivalent:
		return fmt.Sprintf("boundaries are equivalent (area delta %.2f%%, centroid shift %.3f km)",
			c.AreaDeltaPct, c.CentroidShiftKm)
	case domain.ChangeSignificant:
		return fmt.Sprintf("significant change: area %.1f km² -> %.1f km² (%+.1f%%), centroid moved %.2f km",
			c.CurrentAreaSqKm, c.ProposedAreaSqKm, c.AreaDeltaPct, c.CentroidShiftKm)
	default:
		return fmt.Sprintf("minor change: area %+.1f%%, centroid moved %.2f km, vertices %d -> %d",
			c.AreaDeltaPct, c.CentroidShiftKm, c.CurrentVertices, c.ProposedVertices)
	}
}
