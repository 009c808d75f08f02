package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
)

// RuleRepository defines access to alert rule definitions.
type RuleRepository interface {
	// GetActive returns every active rule, oldest first.
	GetActive(ctx context.Context) ([]*domain.AlertRule, error)

	// GetActiveByType returns active rules of one alert type.
	GetActiveByType(ctx context.Context, alertType domain.AlertType) ([]*domain.AlertRule, error)

	// GetByID returns one rule regardless of active state.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AlertRule, error)

	// GetAll returns every rule for inspection endpoints.
	GetAll(ctx context.Context) ([]*domain.AlertRule, error)
}
