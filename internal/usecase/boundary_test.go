package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
	"github.com/caribdigital/coralledgerblue-sub004/internal/pkg/errors"
	"github.com/caribdigital/coralledgerblue-sub004/internal/usecase"
	"github.com/caribdigital/coralledgerblue-sub004/internal/usecase/dto"
)

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) GetTierBoundary(ctx context.Context, areaID uuid.UUID, tier domain.SimplificationTier) (*domain.Boundary, error) {
	args := m.Called(ctx, areaID, tier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Boundary), args.Error(1)
}

func (m *MockCacheRepository) SetTierBoundary(ctx context.Context, areaID uuid.UUID, tier domain.SimplificationTier, b *domain.Boundary, ttl time.Duration) error {
	args := m.Called(ctx, areaID, tier, b, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) DeleteTierBoundaries(ctx context.Context, areaID uuid.UUID) error {
	args := m.Called(ctx, areaID)
	return args.Error(0)
}

// Proposed geometries, as delivered by clients in GeoJSON.
var (
	sameSquareGeoJSON = json.RawMessage(`{"type":"Polygon","coordinates":[[[-81.4,19.2],[-81.2,19.2],[-81.2,19.4],[-81.4,19.4],[-81.4,19.2]]]}`)

	// Four times the area, same centroid.
	grownSquareGeoJSON = json.RawMessage(`{"type":"Polygon","coordinates":[[[-81.5,19.1],[-81.1,19.1],[-81.1,19.5],[-81.5,19.5],[-81.5,19.1]]]}`)

	// Edges cross, fails the self-intersection gate.
	bowtieGeoJSON = json.RawMessage(`{"type":"Polygon","coordinates":[[[-81.4,19.2],[-81.2,19.4],[-81.2,19.2],[-81.4,19.4],[-81.4,19.2]]]}`)
)

func newBoundaryUseCase(areas *MockAreaRepository, cache *MockCacheRepository) *usecase.BoundaryUseCase {
	logger := zap.NewNop()
	containment := usecase.NewContainmentUseCase(areas, nil, logger, 4)
	return usecase.NewBoundaryUseCase(areas, cache, containment, logger, time.Hour)
}

func TestBoundaryUseCase_PreviewChange(t *testing.T) {
	ctx := context.Background()

	t.Run("equivalent boundary needs no confirmation", func(t *testing.T) {
		mockAreas := &MockAreaRepository{}
		mockCache := &MockCacheRepository{}
		area := squareArea()
		mockAreas.On("GetByID", ctx, area.ID).Return(area, nil)

		uc := newBoundaryUseCase(mockAreas, mockCache)

		resp, err := uc.PreviewChange(ctx, area.ID, sameSquareGeoJSON)

		assert.NoError(t, err)
		assert.True(t, resp.Valid)
		assert.Empty(t, resp.FailedGates)
		assert.Equal(t, domain.ChangeEquivalent, resp.Comparison.Class)
		assert.False(t, resp.RequiresConfirmation)

		mockAreas.AssertExpectations(t)
	})

	t.Run("grown boundary is significant", func(t *testing.T) {
		mockAreas := &MockAreaRepository{}
		mockCache := &MockCacheRepository{}
		area := squareArea()
		mockAreas.On("GetByID", ctx, area.ID).Return(area, nil)

		uc := newBoundaryUseCase(mockAreas, mockCache)

		resp, err := uc.PreviewChange(ctx, area.ID, grownSquareGeoJSON)

		assert.NoError(t, err)
		assert.True(t, resp.Valid)
		assert.Equal(t, domain.ChangeSignificant, resp.Comparison.Class)
		assert.True(t, resp.RequiresConfirmation)
		assert.Greater(t, resp.Comparison.AreaDeltaPct, 20.0)

		mockAreas.AssertExpectations(t)
	})

	t.Run("gate failures are a preview outcome, not an error", func(t *testing.T) {
		mockAreas := &MockAreaRepository{}
		mockCache := &MockCacheRepository{}
		area := squareArea()
		mockAreas.On("GetByID", ctx, area.ID).Return(area, nil)

		uc := newBoundaryUseCase(mockAreas, mockCache)

		resp, err := uc.PreviewChange(ctx, area.ID, bowtieGeoJSON)

		assert.NoError(t, err)
		assert.False(t, resp.Valid)
		assert.NotEmpty(t, resp.FailedGates)
		assert.Nil(t, resp.Comparison)

		mockAreas.AssertExpectations(t)
	})

	t.Run("unparseable geometry is rejected", func(t *testing.T) {
		mockAreas := &MockAreaRepository{}
		mockCache := &MockCacheRepository{}
		area := squareArea()
		mockAreas.On("GetByID", ctx, area.ID).Return(area, nil)

		uc := newBoundaryUseCase(mockAreas, mockCache)

		resp, err := uc.PreviewChange(ctx, area.ID, json.RawMessage(`{"type":"LineString"}`))

		assert.Error(t, err)
		assert.Nil(t, resp)

		appErr, ok := err.(*errors.AppError)
		assert.True(t, ok)
		assert.Equal(t, "INVALID_GEOMETRY", appErr.Code)

		mockAreas.AssertExpectations(t)
	})

	t.Run("unknown area propagates not found", func(t *testing.T) {
		mockAreas := &MockAreaRepository{}
		mockCache := &MockCacheRepository{}
		missing := uuid.New()
		mockAreas.On("GetByID", ctx, missing).Return(nil, errors.ErrAreaNotFound)

		uc := newBoundaryUseCase(mockAreas, mockCache)

		resp, err := uc.PreviewChange(ctx, missing, sameSquareGeoJSON)

		assert.Error(t, err)
		assert.Nil(t, resp)
		assert.Equal(t, errors.ErrAreaNotFound, err)

		mockAreas.AssertExpectations(t)
	})
}

func TestBoundaryUseCase_ApplyChange(t *testing.T) {
	ctx := context.Background()

	t.Run("significant change without confirmation is refused", func(t *testing.T) {
		mockAreas := &MockAreaRepository{}
		mockCache := &MockCacheRepository{}
		area := squareArea()
		mockAreas.On("GetByID", ctx, area.ID).Return(area, nil)

		uc := newBoundaryUseCase(mockAreas, mockCache)

		resp, err := uc.ApplyChange(ctx, area.ID, &dto.BoundaryUpdateRequest{
			Geometry: grownSquareGeoJSON,
		})

		assert.Error(t, err)
		assert.Nil(t, resp)

		appErr, ok := err.(*errors.AppError)
		assert.True(t, ok)
		assert.Equal(t, "UNCONFIRMED_SIGNIFICANT_CHANGE", appErr.Code)
		assert.NotEmpty(t, appErr.Details["summary"])

		// UpdateBoundary was never expected: the refused change must not
		// touch the database.
		mockAreas.AssertExpectations(t)
	})

	t.Run("confirmed significant change lands", func(t *testing.T) {
		mockAreas := &MockAreaRepository{}
		mockCache := &MockCacheRepository{}
		area := squareArea()
		originalArea := area.AreaSqKm

		mockAreas.On("GetByID", ctx, area.ID).Return(area, nil)
		mockAreas.On("UpdateBoundary", ctx, mock.MatchedBy(func(a *domain.ProtectedArea) bool {
			return a.ID == area.ID && a.Boundary.VertexCount() == 4 && a.AreaSqKm > originalArea
		})).Return(nil)
		mockCache.On("DeleteTierBoundaries", ctx, area.ID).Return(nil)
		mockCache.On("SetTierBoundary", ctx, area.ID, mock.Anything, mock.Anything, time.Hour).
			Return(nil).Times(3)

		uc := newBoundaryUseCase(mockAreas, mockCache)

		resp, err := uc.ApplyChange(ctx, area.ID, &dto.BoundaryUpdateRequest{
			Geometry: grownSquareGeoJSON,
			Confirm:  true,
		})

		assert.NoError(t, err)
		assert.Equal(t, area.ID, resp.AreaID)
		assert.Equal(t, domain.ChangeSignificant, resp.Comparison.Class)
		assert.Greater(t, resp.AreaSqKm, 0.0)
		assert.Equal(t, 4, resp.TierVertices["full"])

		mockAreas.AssertExpectations(t)
		mockCache.AssertExpectations(t)
	})

	t.Run("equivalent change applies without confirmation", func(t *testing.T) {
		mockAreas := &MockAreaRepository{}
		mockCache := &MockCacheRepository{}
		area := squareArea()

		mockAreas.On("GetByID", ctx, area.ID).Return(area, nil)
		mockAreas.On("UpdateBoundary", ctx, mock.Anything).Return(nil)
		mockCache.On("DeleteTierBoundaries", ctx, area.ID).Return(nil)
		mockCache.On("SetTierBoundary", ctx, area.ID, mock.Anything, mock.Anything, time.Hour).
			Return(nil).Times(3)

		uc := newBoundaryUseCase(mockAreas, mockCache)

		resp, err := uc.ApplyChange(ctx, area.ID, &dto.BoundaryUpdateRequest{
			Geometry: sameSquareGeoJSON,
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.ChangeEquivalent, resp.Comparison.Class)

		mockAreas.AssertExpectations(t)
		mockCache.AssertExpectations(t)
	})

	t.Run("failing gates reject the apply", func(t *testing.T) {
		mockAreas := &MockAreaRepository{}
		mockCache := &MockCacheRepository{}
		area := squareArea()
		mockAreas.On("GetByID", ctx, area.ID).Return(area, nil)

		uc := newBoundaryUseCase(mockAreas, mockCache)

		resp, err := uc.ApplyChange(ctx, area.ID, &dto.BoundaryUpdateRequest{
			Geometry: bowtieGeoJSON,
			Confirm:  true,
		})

		assert.Error(t, err)
		assert.Nil(t, resp)

		appErr, ok := err.(*errors.AppError)
		assert.True(t, ok)
		assert.Equal(t, "INVALID_GEOMETRY", appErr.Code)
		assert.NotNil(t, appErr.Details["failed_gates"])

		mockAreas.AssertExpectations(t)
	})

	t.Run("cache trouble does not fail the apply", func(t *testing.T) {
		mockAreas := &MockAreaRepository{}
		mockCache := &MockCacheRepository{}
		area := squareArea()

		mockAreas.On("GetByID", ctx, area.ID).Return(area, nil)
		mockAreas.On("UpdateBoundary", ctx, mock.Anything).Return(nil)
		mockCache.On("DeleteTierBoundaries", ctx, area.ID).Return(errors.ErrCacheError)

		uc := newBoundaryUseCase(mockAreas, mockCache)

		resp, err := uc.ApplyChange(ctx, area.ID, &dto.BoundaryUpdateRequest{
			Geometry: sameSquareGeoJSON,
		})

		assert.NoError(t, err)
		assert.NotNil(t, resp)

		mockAreas.AssertExpectations(t)
		mockCache.AssertExpectations(t)
	})
}

func TestBoundaryUseCase_GetTier(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown tier name is rejected", func(t *testing.T) {
		mockAreas := &MockAreaRepository{}
		mockCache := &MockCacheRepository{}

		uc := newBoundaryUseCase(mockAreas, mockCache)

		b, err := uc.GetTier(ctx, uuid.New(), "ultra")

		assert.Error(t, err)
		assert.Nil(t, b)

		appErr, ok := err.(*errors.AppError)
		assert.True(t, ok)
		assert.Equal(t, "INVALID_TIER", appErr.Code)
	})

	t.Run("cache hit skips the database", func(t *testing.T) {
		mockAreas := &MockAreaRepository{}
		mockCache := &MockCacheRepository{}
		areaID := uuid.New()
		cached := squareArea().Boundary

		mockCache.On("GetTierBoundary", ctx, areaID, domain.TierMedium).Return(cached, nil)

		uc := newBoundaryUseCase(mockAreas, mockCache)

		b, err := uc.GetTier(ctx, areaID, "medium")

		assert.NoError(t, err)
		assert.Equal(t, cached, b)

		mockAreas.AssertExpectations(t)
		mockCache.AssertExpectations(t)
	})

	t.Run("cache miss loads stored tier and backfills", func(t *testing.T) {
		mockAreas := &MockAreaRepository{}
		mockCache := &MockCacheRepository{}
		area := squareArea()
		tierBoundary := area.Boundary.Clone()
		area.Tiers.SetTier(domain.TierLow, tierBoundary)

		mockCache.On("GetTierBoundary", ctx, area.ID, domain.TierLow).Return(nil, nil)
		mockAreas.On("GetByID", ctx, area.ID).Return(area, nil)
		mockCache.On("SetTierBoundary", ctx, area.ID, domain.TierLow, tierBoundary, time.Hour).
			Return(nil)

		uc := newBoundaryUseCase(mockAreas, mockCache)

		b, err := uc.GetTier(ctx, area.ID, "low")

		assert.NoError(t, err)
		assert.Equal(t, tierBoundary, b)

		mockAreas.AssertExpectations(t)
		mockCache.AssertExpectations(t)
	})

	t.Run("missing tier falls back to the full boundary", func(t *testing.T) {
		mockAreas := &MockAreaRepository{}
		mockCache := &MockCacheRepository{}
		area := squareArea()

		mockCache.On("GetTierBoundary", ctx, area.ID, domain.TierDetail).Return(nil, nil)
		mockAreas.On("GetByID", ctx, area.ID).Return(area, nil)
		mockCache.On("SetTierBoundary", ctx, area.ID, domain.TierDetail, area.Boundary, time.Hour).
			Return(nil)

		uc := newBoundaryUseCase(mockAreas, mockCache)

		b, err := uc.GetTier(ctx, area.ID, "detail")

		assert.NoError(t, err)
		assert.Equal(t, area.Boundary, b)

		mockAreas.AssertExpectations(t)
		mockCache.AssertExpectations(t)
	})
}
