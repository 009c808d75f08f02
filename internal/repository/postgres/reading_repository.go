package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
	"github.com/caribdigital/coralledgerblue-sub004/internal/domain/repository"
	"github.com/caribdigital/coralledgerblue-sub004/internal/pkg/errors"
)

type readingRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewReadingRepository creates the Postgres-backed bleaching reading
// repository.
func NewReadingRepository(db *DB) repository.ReadingRepository {
	return &readingRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// GetSince returns readings measured at or after the cutoff, newest first.
func (r *readingRepository) GetSince(ctx context.Context, cutoff time.Time) ([]*domain.BleachingReading, error) {
	query := `
		SELECT
			id, site_name, lat, lon, alert_level,
			degree_heating_week, sst_anomaly, sst_celsius,
			protected_area_id, measured_at
		FROM bleaching_readings
		WHERE measured_at >= $1
		ORDER BY measured_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		r.logger.Error("Failed to get bleaching readings", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	return r.collectReadings(rows)
}

// GetSinceForArea narrows GetSince to one protected area.
func (r *readingRepository) GetSinceForArea(ctx context.Context, areaID uuid.UUID, cutoff time.Time) ([]*domain.BleachingReading, error) {
	query := `
		SELECT
			id, site_name, lat, lon, alert_level,
			degree_heating_week, sst_anomaly, sst_celsius,
			protected_area_id, measured_at
		FROM bleaching_readings
		WHERE protected_area_id = $1 AND measured_at >= $2
		ORDER BY measured_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, areaID, cutoff)
	if err != nil {
		r.logger.Error("Failed to get bleaching readings for area",
			zap.String("area_id", areaID.String()),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	return r.collectReadings(rows)
}

func (r *readingRepository) collectReadings(rows *sql.Rows) ([]*domain.BleachingReading, error) {
	var readings []*domain.BleachingReading
	for rows.Next() {
		var reading domain.BleachingReading
		err := rows.Scan(
			&reading.ID, &reading.SiteName, &reading.Lat, &reading.Lon, &reading.AlertLevel,
			&reading.DegreeHeatingWeek, &reading.SstAnomaly, &reading.SstCelsius,
			&reading.ProtectedAreaID, &reading.MeasuredAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan bleaching reading", zap.Error(err))
			continue
		}
		readings = append(readings, &reading)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating bleaching reading rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return readings, nil
}
