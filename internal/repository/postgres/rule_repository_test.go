package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
	"github.com/caribdigital/coralledgerblue-sub004/internal/domain/repository"
	"github.com/caribdigital/coralledgerblue-sub004/internal/pkg/errors"
	"github.com/caribdigital/coralledgerblue-sub004/internal/repository/postgres/testhelpers"
)

type RuleRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.RuleRepository
	ctx    context.Context
}

func (s *RuleRepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	err := testhelpers.ApplyMigrations(s.testDB.DB.DB, "../../../migrations")
	s.NoError(err, "Failed to apply migrations")

	s.repo = testhelpers.NewRuleRepositoryForTest(s.testDB.DB, s.testDB.Logger)
}

func (s *RuleRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

func (s *RuleRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	err := s.testDB.Cleanup(s.ctx)
	s.NoError(err, "Failed to cleanup test database")
}

func (s *RuleRepositoryTestSuite) seedThreeRules() (uuid.UUID, uuid.UUID, uuid.UUID) {
	older := time.Now().UTC().Add(-2 * time.Hour)
	newer := time.Now().UTC().Add(-1 * time.Hour)

	activeBleaching := s.testDB.SeedRule(s.T(), &domain.AlertRule{
		Name:            "Reef heat stress watch",
		Type:            domain.AlertTypeBleaching,
		Conditions:      []byte(`{"min_alert_level": 3}`),
		Severity:        domain.SeverityCritical,
		Channels:        domain.ChannelRealTime | domain.ChannelEmail,
		EmailRecipients: []string{"warden@coralledger.blue"},
		CooldownSeconds: 3600,
		IsActive:        true,
		CreatedAt:       older,
		UpdatedAt:       older,
	})
	inactive := s.testDB.SeedRule(s.T(), &domain.AlertRule{
		Name:      "Disabled watch",
		Type:      domain.AlertTypeBleaching,
		IsActive:  false,
		CreatedAt: newer,
		UpdatedAt: newer,
	})
	activeFishing := s.testDB.SeedRule(s.T(), &domain.AlertRule{
		Name:      "Illegal fishing watch",
		Type:      domain.AlertTypeFishingActivity,
		Severity:  domain.SeverityWarning,
		Channels:  domain.ChannelDashboard,
		IsActive:  true,
		CreatedAt: newer,
		UpdatedAt: newer,
	})

	return activeBleaching, inactive, activeFishing
}

// ============================================================================
// GetActive Tests
// ============================================================================

func (s *RuleRepositoryTestSuite) TestGetActive_FiltersAndOrders() {
	// Arrange
	activeBleaching, _, activeFishing := s.seedThreeRules()

	// Act
	rules, err := s.repo.GetActive(s.ctx)

	// Assert
	s.NoError(err)
	s.Len(rules, 2)
	s.Equal(activeBleaching, rules[0].ID, "oldest active rule comes first")
	s.Equal(activeFishing, rules[1].ID)
}

func (s *RuleRepositoryTestSuite) TestGetActive_Empty() {
	// Act
	rules, err := s.repo.GetActive(s.ctx)

	// Assert
	s.NoError(err)
	s.Empty(rules)
}

// ============================================================================
// GetActiveByType Tests
// ============================================================================

func (s *RuleRepositoryTestSuite) TestGetActiveByType() {
	// Arrange
	activeBleaching, _, _ := s.seedThreeRules()

	// Act
	rules, err := s.repo.GetActiveByType(s.ctx, domain.AlertTypeBleaching)

	// Assert
	s.NoError(err)
	s.Len(rules, 1)
	s.Equal(activeBleaching, rules[0].ID)
}

// ============================================================================
// GetByID Tests
// ============================================================================

func (s *RuleRepositoryTestSuite) TestGetByID_RoundTrip() {
	// Arrange
	id, _, _ := s.seedThreeRules()

	// Act
	rule, err := s.repo.GetByID(s.ctx, id)

	// Assert
	s.NoError(err)
	s.Equal("Reef heat stress watch", rule.Name)
	s.Equal(domain.AlertTypeBleaching, rule.Type)
	s.Equal(domain.SeverityCritical, rule.Severity)
	s.True(rule.Channels.Has(domain.ChannelRealTime))
	s.True(rule.Channels.Has(domain.ChannelEmail))
	s.False(rule.Channels.Has(domain.ChannelPush))
	s.Equal([]string{"warden@coralledger.blue"}, rule.EmailRecipients)
	s.Equal(int64(3600), rule.CooldownSeconds)
	s.Nil(rule.LastTriggeredAt)

	// Stored conditions decode against the rule type.
	cond, err := domain.DecodeConditions(rule.Type, rule.Conditions)
	s.NoError(err)
	bleaching, ok := cond.(*domain.BleachingCondition)
	s.True(ok)
	s.Equal(3, bleaching.MinAlertLevel)
}

func (s *RuleRepositoryTestSuite) TestGetByID_NotFound() {
	// Act
	rule, err := s.repo.GetByID(s.ctx, uuid.New())

	// Assert
	s.ErrorIs(err, errors.ErrRuleNotFound)
	s.Nil(rule)
}

func (s *RuleRepositoryTestSuite) TestGetByID_InactiveStillVisible() {
	// Arrange
	_, inactive, _ := s.seedThreeRules()

	// Act
	rule, err := s.repo.GetByID(s.ctx, inactive)

	// Assert
	s.NoError(err)
	s.False(rule.IsActive)
}

// ============================================================================
// GetAll Tests
// ============================================================================

func (s *RuleRepositoryTestSuite) TestGetAll_IncludesInactive() {
	// Arrange
	s.seedThreeRules()

	// Act
	rules, err := s.repo.GetAll(s.ctx)

	// Assert
	s.NoError(err)
	s.Len(rules, 3)
}

// ============================================================================
// Test Suite Runner
// ============================================================================

func TestRuleRepositorySuite(t *testing.T) {
	suite.Run(t, new(RuleRepositoryTestSuite))
}
