package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
	"github.com/caribdigital/coralledgerblue-sub004/internal/domain/repository"
	"github.com/caribdigital/coralledgerblue-sub004/internal/pkg/geo"
	"github.com/caribdigital/coralledgerblue-sub004/internal/observability"
	"github.com/caribdigital/coralledgerblue-sub004/internal/usecase/dto"
)

// ContainmentUseCase answers batch point-in-area queries against a cached
// boundary index.
type ContainmentUseCase struct {
	areaRepo repository.AreaRepository
	metrics  *observability.EngineCollector
	logger   *zap.Logger
	workers  int

	mu    sync.RWMutex
	index *geo.BoundaryIndex
}

// NewContainmentUseCase creates the containment query service. workers
// caps the goroutines per batch; zero means one per CPU.
func NewContainmentUseCase(areaRepo repository.AreaRepository, metrics *observability.EngineCollector, logger *zap.Logger, workers int) *ContainmentUseCase {
	return &ContainmentUseCase{
		areaRepo: areaRepo,
		metrics:  metrics,
		logger:   logger,
		workers:  workers,
	}
}

// Index returns the cached boundary index, building it on first use.
func (uc *ContainmentUseCase) Index(ctx context.Context) (*geo.BoundaryIndex, error) {
	uc.mu.RLock()
	idx := uc.index
	uc.mu.RUnlock()
	if idx != nil {
		return idx, nil
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.index != nil {
		return uc.index, nil
	}

	areas, err := uc.areaRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load areas for index: %w", err)
	}
	boundaries := make([]geo.IndexedBoundary, 0, len(areas))
	for _, a := range areas {
		if a.Boundary == nil {
			continue
		}
		boundaries = append(boundaries, geo.IndexedBoundary{AreaID: a.ID, Boundary: a.Boundary})
	}
	uc.index = geo.NewBoundaryIndex(boundaries)
	uc.metrics.SetIndexedAreas(uc.index.AreaCount())
	uc.logger.Info("Boundary index rebuilt", zap.Int("areas", uc.index.AreaCount()))
	return uc.index, nil
}

// Invalidate drops the cached index so the next query rebuilds it. Called
// after a boundary change lands.
func (uc *ContainmentUseCase) Invalidate() {
	uc.mu.Lock()
	uc.index = nil
	uc.mu.Unlock()
}

// CheckBatch resolves every point in the request to the protected area
// containing it, or to no match. A point with out-of-range coordinates
// comes back not contained; it never fails the batch.
func (uc *ContainmentUseCase) CheckBatch(ctx context.Context, req *dto.ContainmentBatchRequest) (*dto.ContainmentBatchResponse, error) {
	idx, err := uc.Index(ctx)
	if err != nil {
		return nil, err
	}

	points := make([]domain.Coordinate, len(req.Points))
	for i, p := range req.Points {
		points[i] = domain.Coordinate{Lon: p.Lon, Lat: p.Lat}
	}

	started := time.Now()
	matches := idx.MatchBatch(ctx, points, uc.workers)
	elapsed := time.Since(started)
	uc.metrics.ObserveContainment(len(points), elapsed)

	results := make([]dto.PointResult, len(matches))
	for i, id := range matches {
		results[i] = dto.PointResult{Index: i, Inside: id != uuid.Nil}
		if id != uuid.Nil {
			aid := id
			results[i].ProtectedAreaID = &aid
		}
	}
	return &dto.ContainmentBatchResponse{
		Results: results,
		Meta: dto.ContainmentMeta{
			Points:       len(points),
			IndexedAreas: idx.AreaCount(),
			ElapsedMs:    elapsed.Milliseconds(),
		},
	}, nil
}
