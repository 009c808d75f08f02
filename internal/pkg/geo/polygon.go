package geo

import (
	"math"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
)

// kmPerDegree is the meridian arc length of one degree, derived from the
// spherical Earth radius used by HaversineDistance.
const kmPerDegree = earthRadiusKm * math.Pi / 180.0

// onEdgeEpsilonDeg is the tolerance in degrees for treating a point as
// lying on a ring edge (~1cm).
const onEdgeEpsilonDeg = 1e-7

// BBox is an axis-aligned bounding rectangle in degrees.
type BBox struct {
	MinLon, MinLat float64
	MaxLon, MaxLat float64
}

// Contains reports whether the point falls inside the box, edges included.
func (b BBox) Contains(c domain.Coordinate) bool {
	return c.Lon >= b.MinLon && c.Lon <= b.MaxLon &&
		c.Lat >= b.MinLat && c.Lat <= b.MaxLat
}

// RingBBox computes the bounding box of a ring.
func RingBBox(r domain.Ring) BBox {
	box := BBox{
		MinLon: math.Inf(1), MinLat: math.Inf(1),
		MaxLon: math.Inf(-1), MaxLat: math.Inf(-1),
	}
	for _, c := range r {
		box.MinLon = math.Min(box.MinLon, c.Lon)
		box.MinLat = math.Min(box.MinLat, c.Lat)
		box.MaxLon = math.Max(box.MaxLon, c.Lon)
		box.MaxLat = math.Max(box.MaxLat, c.Lat)
	}
	return box
}

// BoundaryBBox computes the bounding box across every shell of a boundary.
func BoundaryBBox(b *domain.Boundary) BBox {
	box := BBox{
		MinLon: math.Inf(1), MinLat: math.Inf(1),
		MaxLon: math.Inf(-1), MaxLat: math.Inf(-1),
	}
	for _, p := range b.Polygons {
		sb := RingBBox(p.Shell)
		box.MinLon = math.Min(box.MinLon, sb.MinLon)
		box.MinLat = math.Min(box.MinLat, sb.MinLat)
		box.MaxLon = math.Max(box.MaxLon, sb.MaxLon)
		box.MaxLat = math.Max(box.MaxLat, sb.MaxLat)
	}
	return box
}

// ringAreaSqKm returns the unsigned flat-Earth area of a ring in km².
// Vertices are projected onto a local equirectangular plane anchored at the
// ring's mean latitude, then the shoelace formula applies. Accurate to well
// under a percent for regional-scale shapes away from the poles, which is
// the operating envelope here.
func ringAreaSqKm(r domain.Ring) float64 {
	if len(r) < 3 {
		return 0
	}
	kx := kmPerDegree * math.Cos(meanLatRad(r))

	sum := 0.0
	for i := range r {
		j := (i + 1) % len(r)
		xi, yi := r[i].Lon*kx, r[i].Lat*kmPerDegree
		xj, yj := r[j].Lon*kx, r[j].Lat*kmPerDegree
		sum += xi*yj - xj*yi
	}
	return math.Abs(sum) / 2
}

func meanLatRad(r domain.Ring) float64 {
	mean := 0.0
	for _, c := range r {
		mean += c.Lat
	}
	mean /= float64(len(r))
	return mean * math.Pi / 180.0
}

// AreaSqKm returns the flat-Earth area of a boundary in km²: shells count
// positively, holes subtract.
func AreaSqKm(b *domain.Boundary) float64 {
	if b == nil {
		return 0
	}
	total := 0.0
	for _, p := range b.Polygons {
		total += ringAreaSqKm(p.Shell)
		for _, h := range p.Holes {
			total -= ringAreaSqKm(h)
		}
	}
	if total < 0 {
		return 0
	}
	return total
}

// ringCentroid returns the shoelace centroid of a ring in degree space and
// the ring's unsigned area weight. Degenerate rings fall back to the vertex
// mean with zero weight.
func ringCentroid(r domain.Ring) (domain.Coordinate, float64) {
	if len(r) == 0 {
		return domain.Coordinate{}, 0
	}
	var signed, cx, cy float64
	for i := range r {
		j := (i + 1) % len(r)
		cross := r[i].Lon*r[j].Lat - r[j].Lon*r[i].Lat
		signed += cross
		cx += (r[i].Lon + r[j].Lon) * cross
		cy += (r[i].Lat + r[j].Lat) * cross
	}
	if math.Abs(signed) < 1e-12 {
		var mx, my float64
		for _, c := range r {
			mx += c.Lon
			my += c.Lat
		}
		n := float64(len(r))
		return domain.Coordinate{Lon: mx / n, Lat: my / n}, 0
	}
	signed /= 2
	return domain.Coordinate{
		Lon: cx / (6 * signed),
		Lat: cy / (6 * signed),
	}, ringAreaSqKm(r)
}

// Centroid returns the area-weighted centroid of a boundary. Holes pull
// with negative weight. An all-degenerate boundary yields the mean of its
// ring centroids.
func Centroid(b *domain.Boundary) domain.Coordinate {
	var sumLon, sumLat, sumW float64
	var fallbackLon, fallbackLat float64
	var rings int

	for _, p := range b.Polygons {
		c, w := ringCentroid(p.Shell)
		sumLon += c.Lon * w
		sumLat += c.Lat * w
		sumW += w
		fallbackLon += c.Lon
		fallbackLat += c.Lat
		rings++
		for _, h := range p.Holes {
			hc, hw := ringCentroid(h)
			sumLon -= hc.Lon * hw
			sumLat -= hc.Lat * hw
			sumW -= hw
		}
	}
	if sumW <= 1e-12 {
		if rings == 0 {
			return domain.Coordinate{}
		}
		return domain.Coordinate{Lon: fallbackLon / float64(rings), Lat: fallbackLat / float64(rings)}
	}
	return domain.Coordinate{Lon: sumLon / sumW, Lat: sumLat / sumW}
}

// pointOnSegment reports whether p lies on the segment a-b within
// onEdgeEpsilonDeg.
func pointOnSegment(p, a, b domain.Coordinate) bool {
	minLon, maxLon := math.Min(a.Lon, b.Lon), math.Max(a.Lon, b.Lon)
	minLat, maxLat := math.Min(a.Lat, b.Lat), math.Max(a.Lat, b.Lat)
	if p.Lon < minLon-onEdgeEpsilonDeg || p.Lon > maxLon+onEdgeEpsilonDeg ||
		p.Lat < minLat-onEdgeEpsilonDeg || p.Lat > maxLat+onEdgeEpsilonDeg {
		return false
	}
	cross := (b.Lon-a.Lon)*(p.Lat-a.Lat) - (b.Lat-a.Lat)*(p.Lon-a.Lon)
	return math.Abs(cross) <= onEdgeEpsilonDeg
}

// onRingEdge reports whether p lies on any edge of the ring.
func onRingEdge(p domain.Coordinate, r domain.Ring) bool {
	n := len(r)
	for i := 0; i < n; i++ {
		if pointOnSegment(p, r[i], r[(i+1)%n]) {
			return true
		}
	}
	return false
}

// evenOddInside applies the even-odd ray casting rule without any edge
// special-casing.
func evenOddInside(p domain.Coordinate, r domain.Ring) bool {
	n := len(r)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		a, b := r[i], r[j]
		if (a.Lat > p.Lat) != (b.Lat > p.Lat) {
			x := a.Lon + (p.Lat-a.Lat)/(b.Lat-a.Lat)*(b.Lon-a.Lon)
			if p.Lon < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// pointInRing combines both: points exactly on an edge or vertex count as
// inside. The convention keeps containment stable for positions reported
// right on an MPA boundary.
func pointInRing(p domain.Coordinate, r domain.Ring) bool {
	if len(r) < 3 {
		return false
	}
	return onRingEdge(p, r) || evenOddInside(p, r)
}

// orientation returns the turn direction of the triplet (a, b, c):
// 0 collinear, 1 clockwise, 2 counterclockwise.
func orientation(a, b, c domain.Coordinate) int {
	v := (b.Lat-a.Lat)*(c.Lon-b.Lon) - (b.Lon-a.Lon)*(c.Lat-b.Lat)
	switch {
	case math.Abs(v) < 1e-14:
		return 0
	case v > 0:
		return 1
	default:
		return 2
	}
}

// segmentsIntersect reports whether segments p1-p2 and q1-q2 cross,
// including collinear overlap.
func segmentsIntersect(p1, p2, q1, q2 domain.Coordinate) bool {
	o1 := orientation(p1, p2, q1)
	o2 := orientation(p1, p2, q2)
	o3 := orientation(q1, q2, p1)
	o4 := orientation(q1, q2, p2)

	if o1 != o2 && o3 != o4 {
		return true
	}
	if o1 == 0 && pointOnSegment(q1, p1, p2) {
		return true
	}
	if o2 == 0 && pointOnSegment(q2, p1, p2) {
		return true
	}
	if o3 == 0 && pointOnSegment(p1, q1, q2) {
		return true
	}
	if o4 == 0 && pointOnSegment(p2, q1, q2) {
		return true
	}
	return false
}
