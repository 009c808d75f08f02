package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
	"github.com/caribdigital/coralledgerblue-sub004/internal/domain/repository"
	"github.com/caribdigital/coralledgerblue-sub004/internal/pkg/errors"
)

type vesselRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewVesselRepository creates the Postgres-backed vessel event repository.
func NewVesselRepository(db *DB) repository.VesselRepository {
	return &vesselRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// GetEventsSince returns events of one type that started at or after the
// cutoff, open or closed, newest first.
func (r *vesselRepository) GetEventsSince(ctx context.Context, eventType domain.VesselEventType, cutoff time.Time) ([]*domain.VesselEvent, error) {
	query := `
		SELECT
			id, vessel_id, vessel_name, is_fishing_vessel, event_type,
			lat, lon, protected_area_id, started_at, ended_at
		FROM vessel_events
		WHERE event_type = $1 AND started_at >= $2
		ORDER BY started_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, string(eventType), cutoff)
	if err != nil {
		r.logger.Error("Failed to get vessel events",
			zap.String("event_type", string(eventType)),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	return r.collectEvents(rows)
}

// GetOpenEvents returns events of one type that have not ended yet, oldest
// first so the longest running episodes come up first.
func (r *vesselRepository) GetOpenEvents(ctx context.Context, eventType domain.VesselEventType) ([]*domain.VesselEvent, error) {
	query := `
		SELECT
			id, vessel_id, vessel_name, is_fishing_vessel, event_type,
			lat, lon, protected_area_id, started_at, ended_at
		FROM vessel_events
		WHERE event_type = $1 AND ended_at IS NULL
		ORDER BY started_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, string(eventType))
	if err != nil {
		r.logger.Error("Failed to get open vessel events",
			zap.String("event_type", string(eventType)),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	return r.collectEvents(rows)
}

func (r *vesselRepository) collectEvents(rows *sql.Rows) ([]*domain.VesselEvent, error) {
	var events []*domain.VesselEvent
	for rows.Next() {
		var e domain.VesselEvent
		err := rows.Scan(
			&e.ID, &e.VesselID, &e.VesselName, &e.IsFishingVessel, &e.EventType,
			&e.Lat, &e.Lon, &e.ProtectedAreaID, &e.StartedAt, &e.EndedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan vessel event", zap.Error(err))
			continue
		}
		events = append(events, &e)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating vessel event rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return events, nil
}
