package geo

import (
	"math"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
)

// Simplify reduces boundary vertices with Douglas-Peucker at the given
// tolerance in degrees, preserving topology: a shell that would degenerate
// or start self-intersecting keeps its original ring, a hole that collapses
// is dropped. Vertex count never increases.
func Simplify(b *domain.Boundary, toleranceDeg float64) *domain.Boundary {
	if b == nil {
		return nil
	}
	out := &domain.Boundary{Polygons: make([]domain.Polygon, 0, len(b.Polygons))}
	for _, p := range b.Polygons {
		shell := simplifyRing(p.Shell, toleranceDeg)
		if !ringUsable(shell) {
			shell = append(domain.Ring(nil), p.Shell...)
		}

		var holes []domain.Ring
		for _, h := range p.Holes {
			sh := simplifyRing(h, toleranceDeg)
			if !ringUsable(sh) {
				// Degenerate holes disappear at coarser resolutions.
				continue
			}
			holes = append(holes, sh)
		}
		out.Polygons = append(out.Polygons, domain.Polygon{Shell: shell, Holes: holes})
	}
	return out
}

// DeriveTiers produces the three simplification tiers from a full
// resolution boundary. Each tier is validated; a tier that fails the gates
// falls back to a copy of the full geometry rather than shipping a broken
// shape.
func DeriveTiers(full *domain.Boundary) domain.TierSet {
	var set domain.TierSet
	for _, tier := range []domain.SimplificationTier{domain.TierDetail, domain.TierMedium, domain.TierLow} {
		simplified := Simplify(full, domain.TierTolerances[tier])
		if !ValidateBoundary(simplified).OK {
			simplified = full.Clone()
		}
		set.SetTier(tier, simplified)
	}
	return set
}

func ringUsable(r domain.Ring) bool {
	if len(r) < 3 || ringAreaSqKm(r) < minRingAreaSqKm {
		return false
	}
	_, intersects := findSelfIntersection(r)
	return !intersects
}

// simplifyRing runs Douglas-Peucker over the ring treated as a closed
// polyline anchored at its first vertex.
func simplifyRing(r domain.Ring, tol float64) domain.Ring {
	if len(r) <= 3 || tol <= 0 {
		return append(domain.Ring(nil), r...)
	}
	closed := make([]domain.Coordinate, len(r)+1)
	copy(closed, r)
	closed[len(r)] = r[0]

	kept := douglasPeucker(closed, tol)
	return domain.Ring(kept[:len(kept)-1])
}

func douglasPeucker(pts []domain.Coordinate, tol float64) []domain.Coordinate {
	if len(pts) < 3 {
		return append([]domain.Coordinate(nil), pts...)
	}
	first, last := pts[0], pts[len(pts)-1]
	maxDist, maxIdx := 0.0, 0
	for i := 1; i < len(pts)-1; i++ {
		if d := pointSegmentDistance(pts[i], first, last); d > maxDist {
			maxDist, maxIdx = d, i
		}
	}
	if maxDist <= tol {
		return []domain.Coordinate{first, last}
	}

	left := douglasPeucker(pts[:maxIdx+1], tol)
	right := douglasPeucker(pts[maxIdx:], tol)

	merged := make([]domain.Coordinate, 0, len(left)+len(right)-1)
	merged = append(merged, left[:len(left)-1]...)
	merged = append(merged, right...)
	return merged
}

// pointSegmentDistance is the distance from p to the segment a-b in degree
// space, matching the unit of the simplification tolerances.
func pointSegmentDistance(p, a, b domain.Coordinate) float64 {
	dx, dy := b.Lon-a.Lon, b.Lat-a.Lat
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(p.Lon-a.Lon, p.Lat-a.Lat)
	}
	t := ((p.Lon-a.Lon)*dx + (p.Lat-a.Lat)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.Lon-(a.Lon+t*dx), p.Lat-(a.Lat+t*dy))
}
