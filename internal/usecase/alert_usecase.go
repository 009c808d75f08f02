package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
	"github.com/caribdigital/coralledgerblue-sub004/internal/domain/repository"
	"github.com/caribdigital/coralledgerblue-sub004/internal/observability"
)

const (
	defaultRecentLimit = 50
	maxRecentLimit     = 200
)

// AlertUseCase serves alert and rule reads plus expiry housekeeping.
type AlertUseCase struct {
	alertRepo repository.AlertRepository
	ruleRepo  repository.RuleRepository
	metrics   *observability.EngineCollector
	logger    *zap.Logger
}

// NewAlertUseCase creates the alert query service.
func NewAlertUseCase(alertRepo repository.AlertRepository, ruleRepo repository.RuleRepository, metrics *observability.EngineCollector, logger *zap.Logger) *AlertUseCase {
	return &AlertUseCase{
		alertRepo: alertRepo,
		ruleRepo:  ruleRepo,
		metrics:   metrics,
		logger:    logger,
	}
}

// RecentAlerts returns the newest alerts, newest first.
func (uc *AlertUseCase) RecentAlerts(ctx context.Context, limit int) ([]*domain.Alert, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	return uc.alertRepo.GetRecent(ctx, limit)
}

// ListRules returns every rule, active or not.
func (uc *AlertUseCase) ListRules(ctx context.Context) ([]*domain.AlertRule, error) {
	return uc.ruleRepo.GetAll(ctx)
}

// GetRule returns one rule by ID.
func (uc *AlertUseCase) GetRule(ctx context.Context, id uuid.UUID) (*domain.AlertRule, error) {
	return uc.ruleRepo.GetByID(ctx, id)
}

// ExpireOld deletes alerts past their expiry timestamp and reports how
// many were removed.
func (uc *AlertUseCase) ExpireOld(ctx context.Context) (int64, error) {
	removed, err := uc.alertRepo.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		uc.metrics.RecordExpired(removed)
		uc.logger.Info("Expired alerts purged", zap.Int64("removed", removed))
	}
	return removed, nil
}
