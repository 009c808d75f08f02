package handler

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/caribdigital/coralledgerblue-sub004/internal/pkg/errors"
	"github.com/caribdigital/coralledgerblue-sub004/internal/pkg/utils"
	"github.com/caribdigital/coralledgerblue-sub004/internal/pkg/validator"
	"github.com/caribdigital/coralledgerblue-sub004/internal/usecase"
	"github.com/caribdigital/coralledgerblue-sub004/internal/usecase/dto"
)

// BoundaryHandler - protected-area boundary review, update and tier access
type BoundaryHandler struct {
	boundaryUC *usecase.BoundaryUseCase
	logger     *zap.Logger
}

// NewBoundaryHandler - create a new BoundaryHandler
func NewBoundaryHandler(boundaryUC *usecase.BoundaryUseCase, logger *zap.Logger) *BoundaryHandler {
	return &BoundaryHandler{
		boundaryUC: boundaryUC,
		logger:     logger,
	}
}

// Preview godoc
// @Summary Preview a boundary change
// @Description Validates a proposed geometry and compares it against the current boundary without applying anything. A geometry that fails the validation gates is reported as invalid, not as an error.
// @Tags Boundaries
// @Accept json
// @Produce json
// @Param id path string true "Protected area ID"
// @Param request body dto.BoundaryUpdateRequest true "Proposed geometry"
// @Success 200 {object} utils.SuccessResponse{data=dto.BoundaryPreviewResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/boundaries/{id}/preview [post]
func (h *BoundaryHandler) Preview(c *fiber.Ctx) error {
	areaID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"id": c.Params("id"),
		}))
	}

	var req dto.BoundaryUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Warn("Failed to parse boundary preview", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	preview, err := h.boundaryUC.PreviewChange(c.Context(), areaID, req.Geometry)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, preview, nil)
}

// Apply godoc
// @Summary Apply a boundary change
// @Description Validates, compares and stores a new boundary. Significant changes (area delta of 20% or more, or a centroid shift of half the characteristic radius or more) require confirm=true; the refusal carries the comparison so the caller can show it. On success the simplification tiers are rebuilt and the containment index is invalidated.
// @Tags Boundaries
// @Accept json
// @Produce json
// @Param id path string true "Protected area ID"
// @Param request body dto.BoundaryUpdateRequest true "New geometry"
// @Success 200 {object} utils.SuccessResponse{data=dto.BoundaryApplyResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/boundaries/{id} [put]
func (h *BoundaryHandler) Apply(c *fiber.Ctx) error {
	areaID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"id": c.Params("id"),
		}))
	}

	var req dto.BoundaryUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Warn("Failed to parse boundary update", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	result, err := h.boundaryUC.ApplyChange(c.Context(), areaID, &req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// GetTier godoc
// @Summary Fetch a simplified boundary
// @Description Returns the boundary of a protected area at the requested simplification tier as GeoJSON. Tiers are detail, medium and low; a tier that was never derived falls back to the full boundary.
// @Tags Boundaries
// @Accept json
// @Produce json
// @Param id path string true "Protected area ID"
// @Param tier path string true "Simplification tier" Enums(detail, medium, low)
// @Success 200 {object} utils.SuccessResponse{data=object}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/boundaries/{id}/tiers/{tier} [get]
func (h *BoundaryHandler) GetTier(c *fiber.Ctx) error {
	areaID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"id": c.Params("id"),
		}))
	}

	boundary, err := h.boundaryUC.GetTier(c.Context(), areaID, c.Params("tier"))
	if err != nil {
		return utils.SendError(c, err)
	}

	geojson, err := boundary.MarshalGeoJSON()
	if err != nil {
		h.logger.Error("Stored boundary failed to marshal", zap.String("area_id", areaID.String()), zap.Error(err))
		return utils.SendError(c, errors.ErrInternalServer)
	}

	return utils.SendSuccess(c, json.RawMessage(geojson), nil)
}
