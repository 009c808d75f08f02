package domain

import (
	"encoding/json"
	"fmt"
)

// Ring is a closed sequence of vertices. The first vertex is not repeated at
// the end; closure is implicit.
type Ring []Coordinate

// Polygon is one exterior shell plus zero or more interior holes.
type Polygon struct {
	Shell Ring   `json:"shell"`
	Holes []Ring `json:"holes,omitempty"`
}

// Rings returns the shell followed by the holes.
func (p Polygon) Rings() []Ring {
	out := make([]Ring, 0, 1+len(p.Holes))
	out = append(out, p.Shell)
	out = append(out, p.Holes...)
	return out
}

// Boundary is the geometry of a protected area: one or more polygons.
type Boundary struct {
	Polygons []Polygon `json:"polygons"`
}

// VertexCount returns the total number of vertices across all rings.
func (b *Boundary) VertexCount() int {
	if b == nil {
		return 0
	}
	n := 0
	for _, p := range b.Polygons {
		for _, r := range p.Rings() {
			n += len(r)
		}
	}
	return n
}

// Clone returns a deep copy, safe to mutate independently.
func (b *Boundary) Clone() *Boundary {
	if b == nil {
		return nil
	}
	out := &Boundary{Polygons: make([]Polygon, len(b.Polygons))}
	for i, p := range b.Polygons {
		cp := Polygon{Shell: append(Ring(nil), p.Shell...)}
		if len(p.Holes) > 0 {
			cp.Holes = make([]Ring, len(p.Holes))
			for j, h := range p.Holes {
				cp.Holes[j] = append(Ring(nil), h...)
			}
		}
		out.Polygons[i] = cp
	}
	return out
}

// geoJSONGeometry is the wire shape for Polygon / MultiPolygon payloads.
type geoJSONGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// UnmarshalBoundaryGeoJSON parses a GeoJSON Polygon or MultiPolygon into a
// Boundary. Rings arrive closed (first point repeated last); the duplicate
// closing vertex is dropped so internal rings stay implicitly closed.
func UnmarshalBoundaryGeoJSON(data []byte) (*Boundary, error) {
	var g geoJSONGeometry
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("failed to parse geojson: %w", err)
	}

	switch g.Type {
	case "Polygon":
		var coords [][][]float64
		if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
			return nil, fmt.Errorf("failed to parse polygon coordinates: %w", err)
		}
		p, err := polygonFromCoords(coords)
		if err != nil {
			return nil, err
		}
		return &Boundary{Polygons: []Polygon{p}}, nil
	case "MultiPolygon":
		var coords [][][][]float64
		if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
			return nil, fmt.Errorf("failed to parse multipolygon coordinates: %w", err)
		}
		b := &Boundary{Polygons: make([]Polygon, 0, len(coords))}
		for _, pc := range coords {
			p, err := polygonFromCoords(pc)
			if err != nil {
				return nil, err
			}
			b.Polygons = append(b.Polygons, p)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unsupported geojson geometry type: %s", g.Type)
	}
}

func polygonFromCoords(coords [][][]float64) (Polygon, error) {
	if len(coords) == 0 {
		return Polygon{}, fmt.Errorf("polygon has no rings")
	}
	rings := make([]Ring, 0, len(coords))
	for _, rc := range coords {
		ring := make(Ring, 0, len(rc))
		for _, pt := range rc {
			if len(pt) < 2 {
				return Polygon{}, fmt.Errorf("ring vertex has %d ordinates, want 2", len(pt))
			}
			ring = append(ring, Coordinate{Lon: pt[0], Lat: pt[1]})
		}
		// Drop the GeoJSON closing vertex if present.
		if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
			ring = ring[:len(ring)-1]
		}
		rings = append(rings, ring)
	}
	return Polygon{Shell: rings[0], Holes: rings[1:]}, nil
}

// MarshalGeoJSON serializes the boundary back to GeoJSON. A single polygon
// becomes a Polygon geometry, anything else a MultiPolygon. Rings are closed
// on output per the GeoJSON spec.
func (b *Boundary) MarshalGeoJSON() ([]byte, error) {
	if b == nil || len(b.Polygons) == 0 {
		return nil, fmt.Errorf("cannot marshal empty boundary")
	}
	toCoords := func(p Polygon) [][][]float64 {
		rings := p.Rings()
		out := make([][][]float64, 0, len(rings))
		for _, r := range rings {
			rc := make([][]float64, 0, len(r)+1)
			for _, c := range r {
				rc = append(rc, []float64{c.Lon, c.Lat})
			}
			if len(r) > 0 {
				rc = append(rc, []float64{r[0].Lon, r[0].Lat})
			}
			out = append(out, rc)
		}
		return out
	}

	if len(b.Polygons) == 1 {
		return json.Marshal(map[string]interface{}{
			"type":        "Polygon",
			"coordinates": toCoords(b.Polygons[0]),
		})
	}
	coords := make([][][][]float64, 0, len(b.Polygons))
	for _, p := range b.Polygons {
		coords = append(coords, toCoords(p))
	}
	return json.Marshal(map[string]interface{}{
		"type":        "MultiPolygon",
		"coordinates": coords,
	})
}
