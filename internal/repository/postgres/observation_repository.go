package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
	"github.com/caribdigital/coralledgerblue-sub004/internal/domain/repository"
	"github.com/caribdigital/coralledgerblue-sub004/internal/pkg/errors"
)

type observationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewObservationRepository creates the Postgres-backed citizen observation
// repository.
func NewObservationRepository(db *DB) repository.ObservationRepository {
	return &observationRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// GetSince returns observations submitted at or after the cutoff, newest
// first.
func (r *observationRepository) GetSince(ctx context.Context, cutoff time.Time) ([]*domain.CitizenObservation, error) {
	query := `
		SELECT
			id, reporter, health_status, notes,
			lat, lon, protected_area_id, observed_at
		FROM citizen_observations
		WHERE observed_at >= $1
		ORDER BY observed_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		r.logger.Error("Failed to get citizen observations", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var observations []*domain.CitizenObservation
	for rows.Next() {
		var o domain.CitizenObservation
		err := rows.Scan(
			&o.ID, &o.Reporter, &o.HealthStatus, &o.Notes,
			&o.Lat, &o.Lon, &o.ProtectedAreaID, &o.ObservedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan citizen observation", zap.Error(err))
			continue
		}
		observations = append(observations, &o)
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating citizen observation rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return observations, nil
}
