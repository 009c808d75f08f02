package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
	"github.com/caribdigital/coralledgerblue-sub004/internal/domain/repository"
	"github.com/caribdigital/coralledgerblue-sub004/internal/pkg/errors"
)

type areaRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewAreaRepository creates the Postgres-backed protected area repository.
func NewAreaRepository(db *DB) repository.AreaRepository {
	return &areaRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// GetAll returns every protected area with its full boundary parsed. Areas
// whose stored geometry no longer parses are logged and skipped so one bad
// row cannot take the containment index down.
func (r *areaRepository) GetAll(ctx context.Context) ([]*domain.ProtectedArea, error) {
	query := `
		SELECT
			id, name, designation, is_no_take_zone,
			boundary_geojson, tier_detail_geojson, tier_medium_geojson, tier_low_geojson,
			center_lat, center_lon, area_sq_km, created_at, updated_at
		FROM protected_areas
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to get protected areas", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var areas []*domain.ProtectedArea
	for rows.Next() {
		area, err := r.scanArea(rows)
		if err != nil {
			r.logger.Error("Failed to scan protected area", zap.Error(err))
			continue
		}
		areas = append(areas, area)
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating protected area rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return areas, nil
}

// GetByID returns one protected area with boundary and tiers parsed.
func (r *areaRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProtectedArea, error) {
	query := `
		SELECT
			id, name, designation, is_no_take_zone,
			boundary_geojson, tier_detail_geojson, tier_medium_geojson, tier_low_geojson,
			center_lat, center_lon, area_sq_km, created_at, updated_at
		FROM protected_areas
		WHERE id = $1
	`

	area, err := r.scanArea(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.ErrAreaNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get protected area by ID",
			zap.String("id", id.String()),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}

	return area, nil
}

// UpdateBoundary replaces the boundary, the derived metrics and all three
// simplification tiers in one statement.
func (r *areaRepository) UpdateBoundary(ctx context.Context, area *domain.ProtectedArea) error {
	boundary, err := area.Boundary.MarshalGeoJSON()
	if err != nil {
		r.logger.Error("Failed to encode boundary",
			zap.String("id", area.ID.String()),
			zap.Error(err),
		)
		return errors.ErrInvalidGeometry
	}

	detail, err := marshalTier(area.Tiers.Detail)
	if err != nil {
		return r.tierEncodeError(area.ID, err)
	}
	medium, err := marshalTier(area.Tiers.Medium)
	if err != nil {
		return r.tierEncodeError(area.ID, err)
	}
	low, err := marshalTier(area.Tiers.Low)
	if err != nil {
		return r.tierEncodeError(area.ID, err)
	}

	query := `
		UPDATE protected_areas
		SET boundary_geojson = $1,
			tier_detail_geojson = $2,
			tier_medium_geojson = $3,
			tier_low_geojson = $4,
			center_lat = $5,
			center_lon = $6,
			area_sq_km = $7,
			updated_at = NOW()
		WHERE id = $8
	`

	res, err := r.db.ExecContext(ctx, query,
		string(boundary), detail, medium, low,
		area.CenterLat, area.CenterLon, area.AreaSqKm, area.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update boundary",
			zap.String("id", area.ID.String()),
			zap.Error(err),
		)
		return errors.ErrDatabaseError
	}

	affected, err := res.RowsAffected()
	if err != nil {
		r.logger.Error("Failed to read update result", zap.Error(err))
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrAreaNotFound
	}

	return nil
}

func (r *areaRepository) tierEncodeError(id uuid.UUID, err error) error {
	r.logger.Error("Failed to encode boundary tier",
		zap.String("id", id.String()),
		zap.Error(err),
	)
	return errors.ErrInvalidGeometry
}

func (r *areaRepository) scanArea(row rowScanner) (*domain.ProtectedArea, error) {
	var area domain.ProtectedArea
	var boundary string
	var detail, medium, low sql.NullString

	err := row.Scan(
		&area.ID, &area.Name, &area.Designation, &area.IsNoTakeZone,
		&boundary, &detail, &medium, &low,
		&area.CenterLat, &area.CenterLon, &area.AreaSqKm,
		&area.CreatedAt, &area.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	area.Boundary, err = domain.UnmarshalBoundaryGeoJSON([]byte(boundary))
	if err != nil {
		return nil, err
	}

	area.Tiers.Detail = r.parseTier(area.ID, domain.TierDetail, detail)
	area.Tiers.Medium = r.parseTier(area.ID, domain.TierMedium, medium)
	area.Tiers.Low = r.parseTier(area.ID, domain.TierLow, low)

	return &area, nil
}

// parseTier decodes an optional stored tier. A tier that fails to parse is
// treated as absent; callers fall back to the full boundary.
func (r *areaRepository) parseTier(id uuid.UUID, tier domain.SimplificationTier, col sql.NullString) *domain.Boundary {
	if !col.Valid || col.String == "" {
		return nil
	}

	b, err := domain.UnmarshalBoundaryGeoJSON([]byte(col.String))
	if err != nil {
		r.logger.Warn("Failed to parse stored tier",
			zap.String("area_id", id.String()),
			zap.String("tier", string(tier)),
			zap.Error(err),
		)
		return nil
	}

	return b
}

func marshalTier(b *domain.Boundary) (*string, error) {
	if b == nil {
		return nil, nil
	}

	data, err := b.MarshalGeoJSON()
	if err != nil {
		return nil, err
	}

	s := string(data)
	return &s, nil
}
