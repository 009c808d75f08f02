package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
)

// squareWithEdgeMidpoints builds a square carrying a redundant collinear
// vertex in the middle of every edge.
func squareWithEdgeMidpoints(lon, lat, side float64) domain.Ring {
	h := side / 2
	return domain.Ring{
		{Lon: lon, Lat: lat},
		{Lon: lon + h, Lat: lat},
		{Lon: lon + side, Lat: lat},
		{Lon: lon + side, Lat: lat + h},
		{Lon: lon + side, Lat: lat + side},
		{Lon: lon + h, Lat: lat + side},
		{Lon: lon, Lat: lat + side},
		{Lon: lon, Lat: lat + h},
	}
}

func TestSimplify_DropsCollinearVertices(t *testing.T) {
	full := &domain.Boundary{Polygons: []domain.Polygon{{
		Shell: squareWithEdgeMidpoints(-78, 19, 0.5),
	}}}

	simplified := Simplify(full, domain.TierTolerances[domain.TierDetail])

	assert.Equal(t, 4, simplified.VertexCount(), "edge midpoints deviate by nothing and must go")
	assert.True(t, ValidateBoundary(simplified).OK)
}

func TestSimplify_NeverIncreasesVertexCount(t *testing.T) {
	full := &domain.Boundary{Polygons: []domain.Polygon{{
		Shell: squareWithEdgeMidpoints(-78, 19, 0.5),
		Holes: []domain.Ring{squareRing(-77.9, 19.1, 0.2)},
	}}}

	for tier, tol := range domain.TierTolerances {
		simplified := Simplify(full, tol)
		assert.LessOrEqual(t, simplified.VertexCount(), full.VertexCount(),
			"tier %s must not add vertices", tier)
	}
}

func TestSimplify_ZeroToleranceCopies(t *testing.T) {
	full := squareBoundary(-78, 19, 0.5)
	out := Simplify(full, 0)

	assert.Equal(t, full, out)
	out.Polygons[0].Shell[0].Lon = -99
	assert.Equal(t, -78.0, full.Polygons[0].Shell[0].Lon, "output must not alias the input")
}

func TestSimplify_ShellSurvivesCoarseTolerance(t *testing.T) {
	full := squareBoundary(-78, 19, 0.5)

	// Tolerance far larger than the shape would collapse the square; the
	// shell must fall back to its original ring instead.
	out := Simplify(full, 5.0)

	require.Len(t, out.Polygons, 1)
	assert.Equal(t, full.Polygons[0].Shell, out.Polygons[0].Shell)
}

func TestSimplify_DegenerateHoleDropped(t *testing.T) {
	tiny := squareRing(-77.8, 19.2, 0.001)
	full := &domain.Boundary{Polygons: []domain.Polygon{{
		Shell: squareRing(-78, 19, 0.5),
		Holes: []domain.Ring{tiny},
	}}}

	detail := Simplify(full, domain.TierTolerances[domain.TierDetail])
	require.Len(t, detail.Polygons[0].Holes, 1, "detail tier keeps the small hole")

	low := Simplify(full, domain.TierTolerances[domain.TierLow])
	assert.Empty(t, low.Polygons[0].Holes, "the 100m hole collapses at coarse resolution")
}

func TestDeriveTiers(t *testing.T) {
	full := &domain.Boundary{Polygons: []domain.Polygon{{
		Shell: squareWithEdgeMidpoints(-78, 19, 0.5),
	}}}

	tiers := DeriveTiers(full)

	for _, tier := range []domain.SimplificationTier{domain.TierDetail, domain.TierMedium, domain.TierLow} {
		b := tiers.ForTier(tier)
		require.NotNil(t, b, "tier %s must be derived", tier)
		assert.True(t, ValidateBoundary(b).OK, "tier %s must pass the validity gates", tier)
		assert.LessOrEqual(t, b.VertexCount(), full.VertexCount())
	}
}
