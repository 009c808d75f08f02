package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
	"github.com/caribdigital/coralledgerblue-sub004/internal/domain/repository"
	"github.com/caribdigital/coralledgerblue-sub004/internal/pkg/errors"
)

type alertRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewAlertRepository creates the Postgres-backed alert repository.
func NewAlertRepository(db *DB) repository.AlertRepository {
	return &alertRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// PersistBatch stores the alerts and stamps last_triggered_at on every
// distinct source rule inside one transaction.
func (r *alertRepository) PersistBatch(ctx context.Context, alerts []*domain.Alert, triggeredAt time.Time) error {
	if len(alerts) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin alert transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback()

	insertQuery := `
		INSERT INTO alerts (
			id, rule_id, type, severity, title, message,
			lat, lon, protected_area_id, vessel_id, details,
			is_acknowledged, created_at, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	for _, a := range alerts {
		details := []byte("{}")
		if a.Details != nil {
			details, err = json.Marshal(a.Details)
			if err != nil {
				r.logger.Error("Failed to encode alert details",
					zap.String("alert_id", a.ID.String()),
					zap.Error(err),
				)
				return errors.ErrDatabaseError
			}
		}

		var lat, lon *float64
		if a.Location != nil {
			lat = &a.Location.Lat
			lon = &a.Location.Lon
		}

		_, err = tx.ExecContext(ctx, insertQuery,
			a.ID, a.RuleID, string(a.Type), string(a.Severity), a.Title, a.Message,
			lat, lon, a.ProtectedAreaID, a.VesselID, details,
			a.IsAcknowledged, a.CreatedAt, a.ExpiresAt,
		)
		if err != nil {
			r.logger.Error("Failed to insert alert",
				zap.String("alert_id", a.ID.String()),
				zap.String("rule_id", a.RuleID.String()),
				zap.Error(err),
			)
			return errors.ErrDatabaseError
		}
	}

	stampQuery := `
		UPDATE alert_rules
		SET last_triggered_at = $1, updated_at = $1
		WHERE id = $2
	`

	stamped := make(map[uuid.UUID]struct{}, len(alerts))
	for _, a := range alerts {
		if _, ok := stamped[a.RuleID]; ok {
			continue
		}
		stamped[a.RuleID] = struct{}{}

		if _, err = tx.ExecContext(ctx, stampQuery, triggeredAt, a.RuleID); err != nil {
			r.logger.Error("Failed to stamp rule trigger time",
				zap.String("rule_id", a.RuleID.String()),
				zap.Error(err),
			)
			return errors.ErrDatabaseError
		}
	}

	if err = tx.Commit(); err != nil {
		r.logger.Error("Failed to commit alert transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

// GetRecent returns the newest alerts, newest first.
func (r *alertRepository) GetRecent(ctx context.Context, limit int) ([]*domain.Alert, error) {
	query := `
		SELECT
			id, rule_id, type, severity, title, message,
			lat, lon, protected_area_id, vessel_id, details,
			is_acknowledged, created_at, expires_at
		FROM alerts
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		r.logger.Error("Failed to get recent alerts", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var alerts []*domain.Alert
	for rows.Next() {
		var a domain.Alert
		var lat, lon sql.NullFloat64
		var details []byte

		err := rows.Scan(
			&a.ID, &a.RuleID, &a.Type, &a.Severity, &a.Title, &a.Message,
			&lat, &lon, &a.ProtectedAreaID, &a.VesselID, &details,
			&a.IsAcknowledged, &a.CreatedAt, &a.ExpiresAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan alert", zap.Error(err))
			continue
		}

		if lat.Valid && lon.Valid {
			a.Location = &domain.Coordinate{Lon: lon.Float64, Lat: lat.Float64}
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &a.Details); err != nil {
				r.logger.Warn("Failed to decode alert details",
					zap.String("alert_id", a.ID.String()),
					zap.Error(err),
				)
			}
		}

		alerts = append(alerts, &a)
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating alert rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return alerts, nil
}

// DeleteExpired removes alerts whose expiry passed before the cutoff.
func (r *alertRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM alerts WHERE expires_at < $1`

	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		r.logger.Error("Failed to delete expired alerts", zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		r.logger.Error("Failed to count deleted alerts", zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	return deleted, nil
}
