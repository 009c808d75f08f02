package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
	"github.com/caribdigital/coralledgerblue-sub004/internal/usecase"
	"github.com/caribdigital/coralledgerblue-sub004/internal/usecase/dto"
)

// squareArea is a 0.2 degree square reserve centered on (-81.3, 19.3).
func squareArea() *domain.ProtectedArea {
	return &domain.ProtectedArea{
		ID:   uuid.New(),
		Name: "Test Reserve",
		Boundary: &domain.Boundary{
			Polygons: []domain.Polygon{{
				Shell: domain.Ring{
					{Lon: -81.4, Lat: 19.2},
					{Lon: -81.2, Lat: 19.2},
					{Lon: -81.2, Lat: 19.4},
					{Lon: -81.4, Lat: 19.4},
				},
			}},
		},
		CenterLat: 19.3,
		CenterLon: -81.3,
	}
}

func TestContainmentUseCase_CheckBatch(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("points resolve against indexed areas", func(t *testing.T) {
		mockAreas := &MockAreaRepository{}
		area := squareArea()
		mockAreas.On("GetAll", ctx).Return([]*domain.ProtectedArea{area}, nil)

		uc := usecase.NewContainmentUseCase(mockAreas, nil, logger, 4)

		req := &dto.ContainmentBatchRequest{
			Points: []dto.Point{
				{Lon: -81.3, Lat: 19.3},  // inside
				{Lon: -80.0, Lat: 19.3},  // outside
				{Lon: -81.3, Lat: 95.0},  // invalid latitude
			},
		}

		resp, err := uc.CheckBatch(ctx, req)

		assert.NoError(t, err)
		assert.Len(t, resp.Results, 3)

		assert.True(t, resp.Results[0].Inside)
		assert.Equal(t, &area.ID, resp.Results[0].ProtectedAreaID)

		assert.False(t, resp.Results[1].Inside)
		assert.Nil(t, resp.Results[1].ProtectedAreaID)

		assert.False(t, resp.Results[2].Inside)
		assert.Nil(t, resp.Results[2].ProtectedAreaID)

		assert.Equal(t, 3, resp.Meta.Points)
		assert.Equal(t, 1, resp.Meta.IndexedAreas)

		mockAreas.AssertExpectations(t)
	})

	t.Run("index is built once and reused", func(t *testing.T) {
		mockAreas := &MockAreaRepository{}
		mockAreas.On("GetAll", ctx).Return([]*domain.ProtectedArea{squareArea()}, nil).Once()

		uc := usecase.NewContainmentUseCase(mockAreas, nil, logger, 4)

		req := &dto.ContainmentBatchRequest{Points: []dto.Point{{Lon: -81.3, Lat: 19.3}}}

		_, err := uc.CheckBatch(ctx, req)
		assert.NoError(t, err)
		_, err = uc.CheckBatch(ctx, req)
		assert.NoError(t, err)

		mockAreas.AssertExpectations(t)
	})

	t.Run("invalidate forces a rebuild", func(t *testing.T) {
		mockAreas := &MockAreaRepository{}
		mockAreas.On("GetAll", ctx).Return([]*domain.ProtectedArea{squareArea()}, nil).Twice()

		uc := usecase.NewContainmentUseCase(mockAreas, nil, logger, 4)

		req := &dto.ContainmentBatchRequest{Points: []dto.Point{{Lon: -81.3, Lat: 19.3}}}

		_, err := uc.CheckBatch(ctx, req)
		assert.NoError(t, err)

		uc.Invalidate()

		_, err = uc.CheckBatch(ctx, req)
		assert.NoError(t, err)

		mockAreas.AssertExpectations(t)
	})

	t.Run("area load failure surfaces", func(t *testing.T) {
		mockAreas := &MockAreaRepository{}
		mockAreas.On("GetAll", ctx).Return(nil, errors.New("database down"))

		uc := usecase.NewContainmentUseCase(mockAreas, nil, logger, 4)

		resp, err := uc.CheckBatch(ctx, &dto.ContainmentBatchRequest{
			Points: []dto.Point{{Lon: -81.3, Lat: 19.3}},
		})

		assert.Error(t, err)
		assert.Nil(t, resp)

		mockAreas.AssertExpectations(t)
	})

	t.Run("area without a boundary is not indexed", func(t *testing.T) {
		mockAreas := &MockAreaRepository{}
		bare := &domain.ProtectedArea{ID: uuid.New(), Name: "Proposed Reserve"}
		mockAreas.On("GetAll", ctx).Return([]*domain.ProtectedArea{bare}, nil)

		uc := usecase.NewContainmentUseCase(mockAreas, nil, logger, 4)

		resp, err := uc.CheckBatch(ctx, &dto.ContainmentBatchRequest{
			Points: []dto.Point{{Lon: -81.3, Lat: 19.3}},
		})

		assert.NoError(t, err)
		assert.Equal(t, 0, resp.Meta.IndexedAreas)
		assert.False(t, resp.Results[0].Inside)

		mockAreas.AssertExpectations(t)
	})
}
