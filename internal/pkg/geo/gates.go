package geo

import (
	"fmt"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
)

// Gate names, in evaluation order.
const (
	GateRingClosed   = "ring_closed"
	GateMinVertices  = "min_vertices"
	GateSimple       = "simple"
	GateNonEmptyArea = "non_empty_area"
	GateAreaInBounds = "area_in_bounds"
	GateCoordsValid  = "coords_valid"
)

// MaxAreaSqKm is the sanity ceiling for a single protected area. The
// largest Caribbean MPAs run tens of thousands of km²; anything bigger is
// almost certainly a corrupt or mis-projected geometry.
const MaxAreaSqKm = 50000.0

// minRingAreaSqKm rejects rings that collapsed to a sliver.
const minRingAreaSqKm = 1e-6

// GateFailure is one failed validity gate with a human-readable message.
type GateFailure struct {
	Gate    string `json:"gate"`
	Message string `json:"message"`
}

// GeometryResult is the outcome of boundary validation. Every gate runs
// and every failure is reported so callers can render one combined error.
type GeometryResult struct {
	OK       bool          `json:"ok"`
	Failures []GateFailure `json:"failures,omitempty"`
}

// ValidateBoundary runs the fixed gate sequence against every ring of the
// boundary. A nil or empty boundary fails outright.
func ValidateBoundary(b *domain.Boundary) GeometryResult {
	var failures []GateFailure
	fail := func(gate, format string, args ...interface{}) {
		failures = append(failures, GateFailure{Gate: gate, Message: fmt.Sprintf(format, args...)})
	}

	if b == nil || len(b.Polygons) == 0 {
		fail(GateNonEmptyArea, "boundary has no polygons")
		return GeometryResult{OK: false, Failures: failures}
	}

	eachRing := func(visit func(label string, r domain.Ring)) {
		for pi, p := range b.Polygons {
			visit(fmt.Sprintf("polygon %d shell", pi), p.Shell)
			for hi, h := range p.Holes {
				visit(fmt.Sprintf("polygon %d hole %d", pi, hi), h)
			}
		}
	}

	// ring_closed: no zero-length edges, including the implicit edge back
	// to the first vertex.
	eachRing(func(label string, r domain.Ring) {
		n := len(r)
		if n < 2 {
			return
		}
		for i := 0; i < n; i++ {
			if r[i] == r[(i+1)%n] {
				fail(GateRingClosed, "%s has a zero-length edge at vertex %d", label, i)
				return
			}
		}
	})

	// min_vertices: a closed loop needs at least 3 distinct vertices.
	eachRing(func(label string, r domain.Ring) {
		if len(r) < 3 {
			fail(GateMinVertices, "%s has %d vertices, need at least 3", label, len(r))
		}
	})

	// simple: no two non-adjacent edges may intersect.
	eachRing(func(label string, r domain.Ring) {
		if idx, ok := findSelfIntersection(r); ok {
			fail(GateSimple, "%s self-intersects near vertex %d", label, idx)
		}
	})

	// non_empty_area: every ring must enclose something.
	eachRing(func(label string, r domain.Ring) {
		if len(r) >= 3 && ringAreaSqKm(r) < minRingAreaSqKm {
			fail(GateNonEmptyArea, "%s encloses no area", label)
		}
	})

	// area_in_bounds: total area must stay under the sanity ceiling.
	if area := AreaSqKm(b); area > MaxAreaSqKm {
		fail(GateAreaInBounds, "boundary area %.1f km² exceeds ceiling %.0f km²", area, MaxAreaSqKm)
	}

	// coords_valid: every vertex must be a valid WGS84 coordinate.
	eachRing(func(label string, r domain.Ring) {
		for i, c := range r {
			if check := ValidateCoordinate(c.Lon, c.Lat); !check.OK {
				fail(GateCoordsValid, "%s vertex %d: %s", label, i, check.Errors[0])
				return
			}
		}
	})

	return GeometryResult{OK: len(failures) == 0, Failures: failures}
}

// findSelfIntersection scans non-adjacent edge pairs with a bbox prefilter.
// Quadratic in edge count, run only on boundary writes.
func findSelfIntersection(r domain.Ring) (int, bool) {
	n := len(r)
	if n < 4 {
		return 0, false
	}
	type edge struct {
		a, b domain.Coordinate
		box  BBox
	}
	edges := make([]edge, n)
	for i := 0; i < n; i++ {
		a, b := r[i], r[(i+1)%n]
		edges[i] = edge{a: a, b: b, box: RingBBox(domain.Ring{a, b})}
	}
	for i := 0; i < n; i++ {
		for j := i + 2; j < n; j++ {
			// The last edge wraps around and is adjacent to the first.
			if i == 0 && j == n-1 {
				continue
			}
			ei, ej := edges[i], edges[j]
			if ei.box.MaxLon < ej.box.MinLon || ej.box.MaxLon < ei.box.MinLon ||
				ei.box.MaxLat < ej.box.MinLat || ej.box.MaxLat < ei.box.MinLat {
				continue
			}
			if segmentsIntersect(ei.a, ei.b, ej.a, ej.b) {
				return i, true
			}
		}
	}
	return 0, false
}
