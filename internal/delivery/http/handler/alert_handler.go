package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
	"github.com/caribdigital/coralledgerblue-sub004/internal/pkg/errors"
	"github.com/caribdigital/coralledgerblue-sub004/internal/pkg/utils"
	"github.com/caribdigital/coralledgerblue-sub004/internal/usecase"
	"github.com/caribdigital/coralledgerblue-sub004/internal/usecase/dto"
)

// AlertHandler - endpoints for evaluation passes, alerts and rules
type AlertHandler struct {
	engineUC *usecase.EngineUseCase
	alertUC  *usecase.AlertUseCase
	logger   *zap.Logger
}

// NewAlertHandler - create a new AlertHandler
func NewAlertHandler(engineUC *usecase.EngineUseCase, alertUC *usecase.AlertUseCase, logger *zap.Logger) *AlertHandler {
	return &AlertHandler{
		engineUC: engineUC,
		alertUC:  alertUC,
		logger:   logger,
	}
}

// EvaluateAll godoc
// @Summary Run a full evaluation pass
// @Description Evaluates every active alert rule against the latest monitoring data, persists the alerts that fired and dispatches them to their notification channels. Returns the pass summary.
// @Tags Alerts
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.EvaluateResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/alerts/evaluate [post]
func (h *AlertHandler) EvaluateAll(c *fiber.Ctx) error {
	summary, err := h.engineUC.EvaluateAndDispatch(c.Context(), usecase.TriggerManual)
	if err != nil {
		h.logger.Error("Manual evaluation pass failed", zap.Error(err))
		return utils.SendError(c, errors.ErrEvaluationFailed)
	}

	return utils.SendSuccess(c, dto.NewEvaluateResponse(summary), nil)
}

// EvaluateRule godoc
// @Summary Re-run a single rule
// @Description Evaluates one rule by ID regardless of its type. The cooldown gate still applies.
// @Tags Alerts
// @Accept json
// @Produce json
// @Param id path string true "Rule ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.EvaluateResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/alerts/evaluate/rule/{id} [post]
func (h *AlertHandler) EvaluateRule(c *fiber.Ctx) error {
	ruleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"id": c.Params("id"),
		}))
	}

	summary, err := h.engineUC.EvaluateAndDispatchOne(c.Context(), usecase.TriggerManual, ruleID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.NewEvaluateResponse(summary), nil)
}

// EvaluateType godoc
// @Summary Run rules of one alert type
// @Description Evaluates only the active rules of the given type. Ingest pipelines call this right after landing fresh data for that feed.
// @Tags Alerts
// @Accept json
// @Produce json
// @Param type path string true "Alert type" Enums(bleaching, fishing_activity, vessel_in_mpa, vessel_dark, temperature, citizen_observation)
// @Success 200 {object} utils.SuccessResponse{data=dto.EvaluateResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/alerts/evaluate/type/{type} [post]
func (h *AlertHandler) EvaluateType(c *fiber.Ctx) error {
	alertType, err := domain.ParseAlertType(c.Params("type"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidAlertType.WithDetails(map[string]interface{}{
			"type": c.Params("type"),
		}))
	}

	summary, err := h.engineUC.EvaluateAndDispatchByType(c.Context(), usecase.TriggerManual, alertType)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.NewEvaluateResponse(summary), nil)
}

// GetRecent godoc
// @Summary Recent alerts
// @Description Returns the newest persisted alerts, newest first.
// @Tags Alerts
// @Accept json
// @Produce json
// @Param limit query int false "Maximum number of alerts" default(50)
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Alert}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/alerts/recent [get]
func (h *AlertHandler) GetRecent(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)

	alerts, err := h.alertUC.RecentAlerts(c.Context(), limit)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, alerts, &utils.Meta{
		Total: len(alerts),
	})
}

// ListRules godoc
// @Summary List alert rules
// @Description Returns every configured rule, active or not, with raw conditions.
// @Tags Rules
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.AlertRule}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/rules [get]
func (h *AlertHandler) ListRules(c *fiber.Ctx) error {
	rules, err := h.alertUC.ListRules(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, rules, &utils.Meta{
		Total: len(rules),
	})
}

// GetRule godoc
// @Summary Get one rule
// @Description Returns a single rule by ID.
// @Tags Rules
// @Accept json
// @Produce json
// @Param id path string true "Rule ID"
// @Success 200 {object} utils.SuccessResponse{data=domain.AlertRule}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/rules/{id} [get]
func (h *AlertHandler) GetRule(c *fiber.Ctx) error {
	ruleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"id": c.Params("id"),
		}))
	}

	rule, err := h.alertUC.GetRule(c.Context(), ruleID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, rule, nil)
}
