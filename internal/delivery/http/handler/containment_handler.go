package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/caribdigital/coralledgerblue-sub004/internal/pkg/errors"
	"github.com/caribdigital/coralledgerblue-sub004/internal/pkg/utils"
	"github.com/caribdigital/coralledgerblue-sub004/internal/pkg/validator"
	"github.com/caribdigital/coralledgerblue-sub004/internal/usecase"
	"github.com/caribdigital/coralledgerblue-sub004/internal/usecase/dto"
)

// ContainmentHandler - batch point-in-area queries
type ContainmentHandler struct {
	containmentUC *usecase.ContainmentUseCase
	logger        *zap.Logger
}

// NewContainmentHandler - create a new ContainmentHandler
func NewContainmentHandler(containmentUC *usecase.ContainmentUseCase, logger *zap.Logger) *ContainmentHandler {
	return &ContainmentHandler{
		containmentUC: containmentUC,
		logger:        logger,
	}
}

// CheckBatch godoc
// @Summary Resolve points against protected areas
// @Description Checks up to 10000 points against every protected-area boundary in one call. Results are positional: results[i] answers points[i]. Points with out-of-range coordinates come back not contained instead of failing the batch.
// @Tags Containment
// @Accept json
// @Produce json
// @Param request body dto.ContainmentBatchRequest true "Points to resolve"
// @Success 200 {object} utils.SuccessResponse{data=dto.ContainmentBatchResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/containment/batch [post]
func (h *ContainmentHandler) CheckBatch(c *fiber.Ctx) error {
	var req dto.ContainmentBatchRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Warn("Failed to parse containment batch", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	result, err := h.containmentUC.CheckBatch(c.Context(), &req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
