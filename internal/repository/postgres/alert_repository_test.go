package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
	"github.com/caribdigital/coralledgerblue-sub004/internal/domain/repository"
	"github.com/caribdigital/coralledgerblue-sub004/internal/repository/postgres/testhelpers"
)

type AlertRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.AlertRepository
	ctx    context.Context

	ruleA uuid.UUID
	ruleB uuid.UUID
}

func (s *AlertRepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	err := testhelpers.ApplyMigrations(s.testDB.DB.DB, "../../../migrations")
	s.NoError(err, "Failed to apply migrations")

	s.repo = testhelpers.NewAlertRepositoryForTest(s.testDB.DB, s.testDB.Logger)
}

func (s *AlertRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

func (s *AlertRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	err := s.testDB.Cleanup(s.ctx)
	s.NoError(err, "Failed to cleanup test database")

	s.ruleA = s.testDB.SeedRule(s.T(), &domain.AlertRule{
		Name:     "Rule A",
		Type:     domain.AlertTypeBleaching,
		IsActive: true,
	})
	s.ruleB = s.testDB.SeedRule(s.T(), &domain.AlertRule{
		Name:     "Rule B",
		Type:     domain.AlertTypeVesselInMPA,
		IsActive: true,
	})
}

func (s *AlertRepositoryTestSuite) newAlert(ruleID uuid.UUID, createdAt time.Time) *domain.Alert {
	return &domain.Alert{
		ID:        uuid.New(),
		RuleID:    ruleID,
		Type:      domain.AlertTypeBleaching,
		Severity:  domain.SeverityWarning,
		Title:     "Heat stress detected",
		Message:   "Alert level reached the configured threshold",
		Location:  &domain.Coordinate{Lon: -81.4, Lat: 19.3},
		Details:   map[string]interface{}{"alert_level": 3},
		CreatedAt: createdAt,
		ExpiresAt: createdAt.Add(72 * time.Hour),
	}
}

// ============================================================================
// PersistBatch Tests
// ============================================================================

func (s *AlertRepositoryTestSuite) TestPersistBatch_StoresAndStampsRules() {
	// Arrange
	now := time.Now().UTC().Truncate(time.Millisecond)
	alerts := []*domain.Alert{
		s.newAlert(s.ruleA, now),
		s.newAlert(s.ruleA, now),
		s.newAlert(s.ruleB, now),
	}

	// Act
	err := s.repo.PersistBatch(s.ctx, alerts, now)

	// Assert
	s.NoError(err)
	s.Equal(3, s.testDB.CountAlerts(s.T()))

	triggeredA := s.testDB.RuleTriggeredAt(s.T(), s.ruleA)
	s.NotNil(triggeredA)
	s.WithinDuration(now, *triggeredA, time.Millisecond)

	triggeredB := s.testDB.RuleTriggeredAt(s.T(), s.ruleB)
	s.NotNil(triggeredB)
	s.WithinDuration(now, *triggeredB, time.Millisecond)
}

func (s *AlertRepositoryTestSuite) TestPersistBatch_Empty() {
	// Act
	err := s.repo.PersistBatch(s.ctx, nil, time.Now())

	// Assert
	s.NoError(err)
	s.Equal(0, s.testDB.CountAlerts(s.T()))
}

func (s *AlertRepositoryTestSuite) TestPersistBatch_AtomicOnFailure() {
	// Arrange - second alert references a rule that does not exist, which
	// violates the FK and must roll back the whole batch.
	now := time.Now().UTC()
	alerts := []*domain.Alert{
		s.newAlert(s.ruleA, now),
		s.newAlert(uuid.New(), now),
	}

	// Act
	err := s.repo.PersistBatch(s.ctx, alerts, now)

	// Assert
	s.Error(err)
	s.Equal(0, s.testDB.CountAlerts(s.T()), "no alert from a failed batch may land")
	s.Nil(s.testDB.RuleTriggeredAt(s.T(), s.ruleA), "rule must not be stamped by a failed batch")
}

// ============================================================================
// GetRecent Tests
// ============================================================================

func (s *AlertRepositoryTestSuite) TestGetRecent_NewestFirstAndCapped() {
	// Arrange
	base := time.Now().UTC().Add(-time.Hour)
	var batch []*domain.Alert
	for i := 0; i < 3; i++ {
		batch = append(batch, s.newAlert(s.ruleA, base.Add(time.Duration(i)*time.Minute)))
	}
	s.NoError(s.repo.PersistBatch(s.ctx, batch, time.Now().UTC()))

	// Act
	alerts, err := s.repo.GetRecent(s.ctx, 2)

	// Assert
	s.NoError(err)
	s.Len(alerts, 2)
	s.True(alerts[0].CreatedAt.After(alerts[1].CreatedAt))
	s.Equal(batch[2].ID, alerts[0].ID)
}

func (s *AlertRepositoryTestSuite) TestGetRecent_RestoresLocationAndDetails() {
	// Arrange
	now := time.Now().UTC()
	s.NoError(s.repo.PersistBatch(s.ctx, []*domain.Alert{s.newAlert(s.ruleA, now)}, now))

	// Act
	alerts, err := s.repo.GetRecent(s.ctx, 10)

	// Assert
	s.NoError(err)
	s.Len(alerts, 1)
	s.NotNil(alerts[0].Location)
	s.InDelta(-81.4, alerts[0].Location.Lon, 1e-9)
	s.InDelta(19.3, alerts[0].Location.Lat, 1e-9)
	s.EqualValues(3, alerts[0].Details["alert_level"])
}

// ============================================================================
// DeleteExpired Tests
// ============================================================================

func (s *AlertRepositoryTestSuite) TestDeleteExpired() {
	// Arrange
	now := time.Now().UTC()
	live := s.newAlert(s.ruleA, now)
	expired := s.newAlert(s.ruleB, now.Add(-100*time.Hour))
	s.NoError(s.repo.PersistBatch(s.ctx, []*domain.Alert{live, expired}, now))

	// Act
	deleted, err := s.repo.DeleteExpired(s.ctx, now)

	// Assert
	s.NoError(err)
	s.Equal(int64(1), deleted)

	remaining, err := s.repo.GetRecent(s.ctx, 10)
	s.NoError(err)
	s.Len(remaining, 1)
	s.Equal(live.ID, remaining[0].ID)
}

// ============================================================================
// Test Suite Runner
// ============================================================================

func TestAlertRepositorySuite(t *testing.T) {
	suite.Run(t, new(AlertRepositoryTestSuite))
}
