package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain/repository"
	"github.com/caribdigital/coralledgerblue-sub004/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewRuleRepositoryForTest creates a rule repository with test database and logger
func NewRuleRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.RuleRepository {
	return postgres.NewRuleRepository(NewDBForTest(db, logger))
}

// NewAlertRepositoryForTest creates an alert repository with test database and logger
func NewAlertRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.AlertRepository {
	return postgres.NewAlertRepository(NewDBForTest(db, logger))
}

// NewAreaRepositoryForTest creates an area repository with test database and logger
func NewAreaRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.AreaRepository {
	return postgres.NewAreaRepository(NewDBForTest(db, logger))
}

// NewReadingRepositoryForTest creates a reading repository with test database and logger
func NewReadingRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.ReadingRepository {
	return postgres.NewReadingRepository(NewDBForTest(db, logger))
}

// NewVesselRepositoryForTest creates a vessel repository with test database and logger
func NewVesselRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.VesselRepository {
	return postgres.NewVesselRepository(NewDBForTest(db, logger))
}

// NewObservationRepositoryForTest creates an observation repository with test database and logger
func NewObservationRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.ObservationRepository {
	return postgres.NewObservationRepository(NewDBForTest(db, logger))
}
