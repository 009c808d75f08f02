package geo

import (
	"context"
	"runtime"
	"sync"

	"github.com/google/uuid"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
)

// IndexedBoundary pairs a boundary with the protected area it belongs to.
type IndexedBoundary struct {
	AreaID   uuid.UUID
	Boundary *domain.Boundary
}

type indexedPolygon struct {
	shell    domain.Ring
	shellBox BBox
	holes    []domain.Ring
	holeBox  []BBox
}

type indexEntry struct {
	areaID uuid.UUID
	box    BBox
	polys  []indexedPolygon
}

// BoundaryIndex answers point-in-boundary queries with a bounding-box
// broad phase in front of exact even-odd ray casting. Build once, query
// from any number of goroutines.
type BoundaryIndex struct {
	entries []indexEntry
}

// NewBoundaryIndex precomputes per-boundary and per-ring bounding boxes.
// Boundaries without polygons are skipped.
func NewBoundaryIndex(items []IndexedBoundary) *BoundaryIndex {
	idx := &BoundaryIndex{entries: make([]indexEntry, 0, len(items))}
	for _, item := range items {
		if item.Boundary == nil || len(item.Boundary.Polygons) == 0 {
			continue
		}
		entry := indexEntry{
			areaID: item.AreaID,
			box:    BoundaryBBox(item.Boundary),
			polys:  make([]indexedPolygon, 0, len(item.Boundary.Polygons)),
		}
		for _, p := range item.Boundary.Polygons {
			ip := indexedPolygon{
				shell:    p.Shell,
				shellBox: RingBBox(p.Shell),
				holes:    p.Holes,
				holeBox:  make([]BBox, len(p.Holes)),
			}
			for i, h := range p.Holes {
				ip.holeBox[i] = RingBBox(h)
			}
			entry.polys = append(entry.polys, ip)
		}
		idx.entries = append(idx.entries, entry)
	}
	return idx
}

// AreaCount returns how many boundaries the index holds.
func (idx *BoundaryIndex) AreaCount() int {
	return len(idx.entries)
}

// Contains reports whether the point falls inside any indexed boundary.
// Invalid coordinates are never contained.
func (idx *BoundaryIndex) Contains(p domain.Coordinate) bool {
	_, ok := idx.FirstMatch(p)
	return ok
}

// FirstMatch returns the area ID of the first boundary containing the
// point, in index build order. Edge and vertex hits count as contained.
func (idx *BoundaryIndex) FirstMatch(p domain.Coordinate) (uuid.UUID, bool) {
	if !ValidateCoordinate(p.Lon, p.Lat).OK {
		return uuid.Nil, false
	}
	for _, entry := range idx.entries {
		if !entry.box.Contains(p) {
			continue
		}
		for _, poly := range entry.polys {
			if !poly.shellBox.Contains(p) {
				continue
			}
			if !pointInRing(p, poly.shell) {
				continue
			}
			if insideAnyHole(p, poly) {
				continue
			}
			return entry.areaID, true
		}
	}
	return uuid.Nil, false
}

// insideAnyHole reports whether the point sits strictly inside a hole.
// Points on a hole edge are on the polygon boundary and stay contained.
func insideAnyHole(p domain.Coordinate, poly indexedPolygon) bool {
	for i, h := range poly.holes {
		if !poly.holeBox[i].Contains(p) {
			continue
		}
		if onRingEdge(p, h) {
			return false
		}
		if evenOddInside(p, h) {
			return true
		}
	}
	return false
}

// ContainsBatch evaluates every point independently, fanning chunks across
// workers (0 means one per CPU). Results are positional; a point with
// invalid coordinates yields false instead of failing the batch.
func (idx *BoundaryIndex) ContainsBatch(ctx context.Context, points []domain.Coordinate, workers int) []bool {
	results := make([]bool, len(points))
	if len(points) == 0 {
		return results
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(points) {
		workers = len(points)
	}
	chunk := (len(points) + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < len(points); start += chunk {
		end := start + chunk
		if end > len(points) {
			end = len(points)
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				if ctx.Err() != nil {
					return
				}
				results[i] = idx.Contains(points[i])
			}
		}(start, end)
	}
	wg.Wait()
	return results
}

// MatchBatch is ContainsBatch returning the matched area ID per point,
// uuid.Nil where no boundary contains it.
func (idx *BoundaryIndex) MatchBatch(ctx context.Context, points []domain.Coordinate, workers int) []uuid.UUID {
	results := make([]uuid.UUID, len(points))
	if len(points) == 0 {
		return results
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(points) {
		workers = len(points)
	}
	chunk := (len(points) + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < len(points); start += chunk {
		end := start + chunk
		if end > len(points) {
			end = len(points)
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				if ctx.Err() != nil {
					return
				}
				results[i], _ = idx.FirstMatch(points[i])
			}
		}(start, end)
	}
	wg.Wait()
	return results
}
