package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
	"github.com/caribdigital/coralledgerblue-sub004/internal/domain/repository"
	"github.com/caribdigital/coralledgerblue-sub004/internal/pkg/errors"
)

const ruleColumns = `
	id, name, type, conditions, severity, channels,
	protected_area_id, email_recipients, cooldown_seconds,
	last_triggered_at, is_active, created_at, updated_at
`

type ruleRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewRuleRepository creates the Postgres-backed rule repository.
func NewRuleRepository(db *DB) repository.RuleRepository {
	return &ruleRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// GetActive returns every active rule, oldest first.
func (r *ruleRepository) GetActive(ctx context.Context) ([]*domain.AlertRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM alert_rules
		WHERE is_active
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to get active rules", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	return r.collectRules(rows)
}

// GetActiveByType returns active rules watching one alert type.
func (r *ruleRepository) GetActiveByType(ctx context.Context, alertType domain.AlertType) ([]*domain.AlertRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM alert_rules
		WHERE is_active AND type = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, string(alertType))
	if err != nil {
		r.logger.Error("Failed to get rules by type",
			zap.String("type", string(alertType)),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	return r.collectRules(rows)
}

// GetByID returns one rule regardless of active state.
func (r *ruleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AlertRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM alert_rules
		WHERE id = $1
	`

	rule, err := scanRule(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.ErrRuleNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get rule by ID", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return rule, nil
}

// GetAll returns every rule for the inspection endpoints.
func (r *ruleRepository) GetAll(ctx context.Context) ([]*domain.AlertRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM alert_rules
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to get all rules", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	return r.collectRules(rows)
}

func (r *ruleRepository) collectRules(rows *sql.Rows) ([]*domain.AlertRule, error) {
	var rules []*domain.AlertRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			r.logger.Error("Failed to scan rule", zap.Error(err))
			continue
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating rule rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return rules, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(row rowScanner) (*domain.AlertRule, error) {
	var rule domain.AlertRule
	var conditions []byte
	var channels int16
	var recipients pq.StringArray

	err := row.Scan(
		&rule.ID, &rule.Name, &rule.Type, &conditions, &rule.Severity, &channels,
		&rule.ProtectedAreaID, &recipients, &rule.CooldownSeconds,
		&rule.LastTriggeredAt, &rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.Conditions = conditions
	rule.Channels = domain.NotificationChannel(channels)
	rule.EmailRecipients = recipients

	return &rule, nil
}
