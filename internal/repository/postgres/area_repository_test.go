package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
	"github.com/caribdigital/coralledgerblue-sub004/internal/domain/repository"
	"github.com/caribdigital/coralledgerblue-sub004/internal/pkg/errors"
	"github.com/caribdigital/coralledgerblue-sub004/internal/repository/postgres/testhelpers"
)

// testSquareBoundary builds a single-polygon boundary whose shell is an
// axis-aligned square of the given side, in degrees. Shared by every suite
// in this package.
func testSquareBoundary(lon, lat, side float64) *domain.Boundary {
	return &domain.Boundary{
		Polygons: []domain.Polygon{{
			Shell: domain.Ring{
				{Lon: lon, Lat: lat},
				{Lon: lon + side, Lat: lat},
				{Lon: lon + side, Lat: lat + side},
				{Lon: lon, Lat: lat + side},
			},
		}},
	}
}

type AreaRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.AreaRepository
	ctx    context.Context
}

func (s *AreaRepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	err := testhelpers.ApplyMigrations(s.testDB.DB.DB, "../../../migrations")
	s.NoError(err, "Failed to apply migrations")

	s.repo = testhelpers.NewAreaRepositoryForTest(s.testDB.DB, s.testDB.Logger)
}

func (s *AreaRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

func (s *AreaRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	err := s.testDB.Cleanup(s.ctx)
	s.NoError(err, "Failed to cleanup test database")
}

// ============================================================================
// GetByID Tests
// ============================================================================

func (s *AreaRepositoryTestSuite) TestGetByID_ParsesBoundaryAndTiers() {
	// Arrange
	boundary := testSquareBoundary(-81.5, 19.0, 0.5)
	id := s.testDB.SeedArea(s.T(), &domain.ProtectedArea{
		Name:         "Bloody Bay Marine Reserve",
		Designation:  "marine_reserve",
		IsNoTakeZone: true,
		Boundary:     boundary,
		Tiers:        domain.TierSet{Detail: boundary.Clone()},
		CenterLat:    19.25,
		CenterLon:    -81.25,
		AreaSqKm:     2918.0,
	})

	// Act
	area, err := s.repo.GetByID(s.ctx, id)

	// Assert
	s.NoError(err)
	s.NotNil(area)
	s.Equal("Bloody Bay Marine Reserve", area.Name)
	s.True(area.IsNoTakeZone)
	s.NotNil(area.Boundary)
	s.Equal(4, area.Boundary.VertexCount())
	s.NotNil(area.Tiers.Detail)
	s.Nil(area.Tiers.Medium)
	s.Nil(area.Tiers.Low)
	s.InDelta(19.25, area.CenterLat, 0.0001)
	s.InDelta(-81.25, area.CenterLon, 0.0001)
}

func (s *AreaRepositoryTestSuite) TestGetByID_NotFound() {
	// Act
	area, err := s.repo.GetByID(s.ctx, uuid.New())

	// Assert
	s.ErrorIs(err, errors.ErrAreaNotFound)
	s.Nil(area)
}

// ============================================================================
// GetAll Tests
// ============================================================================

func (s *AreaRepositoryTestSuite) TestGetAll_OrderedByName() {
	// Arrange
	s.testDB.SeedArea(s.T(), &domain.ProtectedArea{
		Name:     "Zapatilla Cays",
		Boundary: testSquareBoundary(-82.0, 9.2, 0.1),
	})
	s.testDB.SeedArea(s.T(), &domain.ProtectedArea{
		Name:     "Andros Barrier Reef",
		Boundary: testSquareBoundary(-78.0, 24.5, 0.3),
	})

	// Act
	areas, err := s.repo.GetAll(s.ctx)

	// Assert
	s.NoError(err)
	s.Len(areas, 2)
	s.Equal("Andros Barrier Reef", areas[0].Name)
	s.Equal("Zapatilla Cays", areas[1].Name)
}

func (s *AreaRepositoryTestSuite) TestGetAll_SkipsCorruptGeometry() {
	// Arrange
	s.testDB.SeedArea(s.T(), &domain.ProtectedArea{
		Name:     "Hol Chan Marine Reserve",
		Boundary: testSquareBoundary(-88.0, 17.9, 0.05),
	})
	s.testDB.SeedCorruptArea(s.T(), "Broken Row")

	// Act
	areas, err := s.repo.GetAll(s.ctx)

	// Assert
	s.NoError(err)
	s.Len(areas, 1)
	s.Equal("Hol Chan Marine Reserve", areas[0].Name)
}

// ============================================================================
// UpdateBoundary Tests
// ============================================================================

func (s *AreaRepositoryTestSuite) TestUpdateBoundary_RoundTrip() {
	// Arrange
	id := s.testDB.SeedArea(s.T(), &domain.ProtectedArea{
		Name:     "Exuma Cays Land and Sea Park",
		Boundary: testSquareBoundary(-76.8, 24.3, 0.2),
		AreaSqKm: 456.0,
	})

	updated := testSquareBoundary(-76.9, 24.2, 0.4)
	area := &domain.ProtectedArea{
		ID:        id,
		Boundary:  updated,
		Tiers:     domain.TierSet{Detail: updated.Clone(), Medium: updated.Clone(), Low: updated.Clone()},
		CenterLat: 24.4,
		CenterLon: -76.7,
		AreaSqKm:  1812.0,
	}

	// Act
	err := s.repo.UpdateBoundary(s.ctx, area)

	// Assert
	s.NoError(err)

	stored, err := s.repo.GetByID(s.ctx, id)
	s.NoError(err)
	s.Equal(4, stored.Boundary.VertexCount())
	s.InDelta(-76.9, stored.Boundary.Polygons[0].Shell[0].Lon, 1e-9)
	s.InDelta(1812.0, stored.AreaSqKm, 0.001)
	s.NotNil(stored.Tiers.Detail)
	s.NotNil(stored.Tiers.Medium)
	s.NotNil(stored.Tiers.Low)
}

func (s *AreaRepositoryTestSuite) TestUpdateBoundary_NotFound() {
	// Arrange
	boundary := testSquareBoundary(-80.0, 18.0, 0.1)
	area := &domain.ProtectedArea{
		ID:       uuid.New(),
		Boundary: boundary,
	}

	// Act
	err := s.repo.UpdateBoundary(s.ctx, area)

	// Assert
	s.ErrorIs(err, errors.ErrAreaNotFound)
}

// ============================================================================
// Test Suite Runner
// ============================================================================

func TestAreaRepositorySuite(t *testing.T) {
	suite.Run(t, new(AreaRepositoryTestSuite))
}
