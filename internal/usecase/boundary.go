package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
	"github.com/caribdigital/coralledgerblue-sub004/internal/domain/repository"
	"github.com/caribdigital/coralledgerblue-sub004/internal/pkg/errors"
	"github.com/caribdigital/coralledgerblue-sub004/internal/pkg/geo"
	"github.com/caribdigital/coralledgerblue-sub004/internal/usecase/dto"
)

// BoundaryUseCase manages protected area boundary changes: validation,
// impact preview, the confirmation gate and the derived tier cache.
type BoundaryUseCase struct {
	areaRepo    repository.AreaRepository
	cache       repository.CacheRepository
	containment *ContainmentUseCase
	logger      *zap.Logger
	tierTTL     time.Duration
}

// NewBoundaryUseCase creates the boundary management service.
func NewBoundaryUseCase(
	areaRepo repository.AreaRepository,
	cache repository.CacheRepository,
	containment *ContainmentUseCase,
	logger *zap.Logger,
	tierTTL time.Duration,
) *BoundaryUseCase {
	return &BoundaryUseCase{
		areaRepo:    areaRepo,
		cache:       cache,
		containment: containment,
		logger:      logger,
		tierTTL:     tierTTL,
	}
}

// PreviewChange validates a proposed boundary and reports how it differs
// from the current one without touching anything. A geometry that fails
// the validation gates is a valid preview outcome, not an error.
func (uc *BoundaryUseCase) PreviewChange(ctx context.Context, areaID uuid.UUID, geometry json.RawMessage) (*dto.BoundaryPreviewResponse, error) {
	area, err := uc.areaRepo.GetByID(ctx, areaID)
	if err != nil {
		return nil, err
	}

	proposed, err := domain.UnmarshalBoundaryGeoJSON(geometry)
	if err != nil {
		return nil, errors.ErrInvalidGeometry.WithDetails(map[string]interface{}{
			"parse_error": err.Error(),
		})
	}

	result := geo.ValidateBoundary(proposed)
	if !result.OK {
		return &dto.BoundaryPreviewResponse{Valid: false, FailedGates: result.Failures}, nil
	}

	cmp := geo.Compare(area.Boundary, proposed)
	return &dto.BoundaryPreviewResponse{
		Valid:                true,
		Comparison:           &cmp,
		RequiresConfirmation: cmp.RequiresConfirmation(),
	}, nil
}

// ApplyChange validates, compares and stores a new boundary. Significant
// changes are refused until the caller confirms them. On success the
// derived tiers are regenerated, the tier cache refreshed and the
// containment index invalidated.
func (uc *BoundaryUseCase) ApplyChange(ctx context.Context, areaID uuid.UUID, req *dto.BoundaryUpdateRequest) (*dto.BoundaryApplyResponse, error) {
	area, err := uc.areaRepo.GetByID(ctx, areaID)
	if err != nil {
		return nil, err
	}

	proposed, err := domain.UnmarshalBoundaryGeoJSON(req.Geometry)
	if err != nil {
		return nil, errors.ErrInvalidGeometry.WithDetails(map[string]interface{}{
			"parse_error": err.Error(),
		})
	}

	result := geo.ValidateBoundary(proposed)
	if !result.OK {
		return nil, errors.ErrInvalidGeometry.WithDetails(map[string]interface{}{
			"failed_gates": result.Failures,
		})
	}

	cmp := geo.Compare(area.Boundary, proposed)
	if cmp.RequiresConfirmation() && !req.Confirm {
		return nil, errors.ErrUnconfirmedChange.WithDetails(map[string]interface{}{
			"summary":           cmp.Summary,
			"area_delta_pct":    cmp.AreaDeltaPct,
			"centroid_shift_km": cmp.CentroidShiftKm,
		})
	}

	center := geo.Centroid(proposed)
	area.Boundary = proposed
	area.CenterLon = center.Lon
	area.CenterLat = center.Lat
	area.AreaSqKm = geo.AreaSqKm(proposed)
	area.Tiers = geo.DeriveTiers(proposed)

	if err := uc.areaRepo.UpdateBoundary(ctx, area); err != nil {
		return nil, err
	}

	uc.refreshTierCache(ctx, area)
	uc.containment.Invalidate()

	uc.logger.Info("Boundary updated",
		zap.String("area_id", area.ID.String()),
		zap.String("change", string(cmp.Class)),
		zap.Float64("area_sq_km", area.AreaSqKm))

	return &dto.BoundaryApplyResponse{
		AreaID:       area.ID,
		Comparison:   cmp,
		AreaSqKm:     area.AreaSqKm,
		TierVertices: tierVertexCounts(area),
	}, nil
}

// GetTier returns one simplification tier for an area, trying the cache
// before the database. Tiers the derivation floored away fall back to the
// full boundary.
func (uc *BoundaryUseCase) GetTier(ctx context.Context, areaID uuid.UUID, tierName string) (*domain.Boundary, error) {
	tier, err := domain.ParseTier(tierName)
	if err != nil {
		return nil, errors.ErrInvalidTier.WithDetails(map[string]interface{}{
			"tier": tierName,
		})
	}

	cached, err := uc.cache.GetTierBoundary(ctx, areaID, tier)
	if err != nil {
		uc.logger.Warn("Tier cache read failed",
			zap.String("area_id", areaID.String()),
			zap.String("tier", string(tier)),
			zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	area, err := uc.areaRepo.GetByID(ctx, areaID)
	if err != nil {
		return nil, err
	}

	b := area.Tiers.ForTier(tier)
	if b == nil {
		b = area.Boundary
	}

	// Cache trouble is logged, never fatal: the database copy is
	// authoritative.
	if err := uc.cache.SetTierBoundary(ctx, areaID, tier, b, uc.tierTTL); err != nil {
		uc.logger.Warn("Tier cache write failed",
			zap.String("area_id", areaID.String()),
			zap.String("tier", string(tier)),
			zap.Error(err))
	}
	return b, nil
}

func (uc *BoundaryUseCase) refreshTierCache(ctx context.Context, area *domain.ProtectedArea) {
	if err := uc.cache.DeleteTierBoundaries(ctx, area.ID); err != nil {
		uc.logger.Warn("Tier cache purge failed",
			zap.String("area_id", area.ID.String()),
			zap.Error(err))
		return
	}
	for _, tier := range domain.Tiers() {
		b := area.Tiers.ForTier(tier)
		if b == nil {
			continue
		}
		if err := uc.cache.SetTierBoundary(ctx, area.ID, tier, b, uc.tierTTL); err != nil {
			uc.logger.Warn("Tier cache write failed",
				zap.String("area_id", area.ID.String()),
				zap.String("tier", string(tier)),
				zap.Error(err))
		}
	}
}

// tierVertexCounts reports the vertex count of the stored boundary and
// every derived tier, keyed by tier name with "full" for the original.
func tierVertexCounts(area *domain.ProtectedArea) map[string]int {
	counts := map[string]int{"full": area.Boundary.VertexCount()}
	for _, tier := range domain.Tiers() {
		if b := area.Tiers.ForTier(tier); b != nil {
			counts[string(tier)] = b.VertexCount()
		}
	}
	return counts
}
