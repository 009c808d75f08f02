package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
	"github.com/caribdigital/coralledgerblue-sub004/internal/usecase"
)

func TestAlertUseCase_RecentAlerts(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("zero limit falls back to the default", func(t *testing.T) {
		mockAlerts := &MockAlertRepository{}
		mockRules := &MockRuleRepository{}
		uc := usecase.NewAlertUseCase(mockAlerts, mockRules, nil, logger)

		mockAlerts.On("GetRecent", ctx, 50).Return([]*domain.Alert{}, nil)

		_, err := uc.RecentAlerts(ctx, 0)

		assert.NoError(t, err)
		mockAlerts.AssertExpectations(t)
	})

	t.Run("oversized limit is clamped", func(t *testing.T) {
		mockAlerts := &MockAlertRepository{}
		mockRules := &MockRuleRepository{}
		uc := usecase.NewAlertUseCase(mockAlerts, mockRules, nil, logger)

		mockAlerts.On("GetRecent", ctx, 200).Return([]*domain.Alert{}, nil)

		_, err := uc.RecentAlerts(ctx, 5000)

		assert.NoError(t, err)
		mockAlerts.AssertExpectations(t)
	})

	t.Run("explicit limit passes through", func(t *testing.T) {
		mockAlerts := &MockAlertRepository{}
		mockRules := &MockRuleRepository{}
		uc := usecase.NewAlertUseCase(mockAlerts, mockRules, nil, logger)

		alerts := []*domain.Alert{{ID: uuid.New()}}
		mockAlerts.On("GetRecent", ctx, 10).Return(alerts, nil)

		got, err := uc.RecentAlerts(ctx, 10)

		assert.NoError(t, err)
		assert.Equal(t, alerts, got)
		mockAlerts.AssertExpectations(t)
	})
}

func TestAlertUseCase_ExpireOld(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("reports how many alerts went away", func(t *testing.T) {
		mockAlerts := &MockAlertRepository{}
		mockRules := &MockRuleRepository{}
		uc := usecase.NewAlertUseCase(mockAlerts, mockRules, nil, logger)

		mockAlerts.On("DeleteExpired", ctx, mock.Anything).Return(int64(7), nil)

		removed, err := uc.ExpireOld(ctx)

		assert.NoError(t, err)
		assert.Equal(t, int64(7), removed)
		mockAlerts.AssertExpectations(t)
	})

	t.Run("sweep failure surfaces", func(t *testing.T) {
		mockAlerts := &MockAlertRepository{}
		mockRules := &MockRuleRepository{}
		uc := usecase.NewAlertUseCase(mockAlerts, mockRules, nil, logger)

		mockAlerts.On("DeleteExpired", ctx, mock.Anything).
			Return(int64(0), errors.New("lock timeout"))

		removed, err := uc.ExpireOld(ctx)

		assert.Error(t, err)
		assert.Equal(t, int64(0), removed)
		mockAlerts.AssertExpectations(t)
	})
}

func TestAlertUseCase_Rules(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("lists every rule", func(t *testing.T) {
		mockAlerts := &MockAlertRepository{}
		mockRules := &MockRuleRepository{}
		uc := usecase.NewAlertUseCase(mockAlerts, mockRules, nil, logger)

		rules := []*domain.AlertRule{bleachingRule(), fishingRule()}
		mockRules.On("GetAll", ctx).Return(rules, nil)

		got, err := uc.ListRules(ctx)

		assert.NoError(t, err)
		assert.Len(t, got, 2)
		mockRules.AssertExpectations(t)
	})

	t.Run("fetches one rule by id", func(t *testing.T) {
		mockAlerts := &MockAlertRepository{}
		mockRules := &MockRuleRepository{}
		uc := usecase.NewAlertUseCase(mockAlerts, mockRules, nil, logger)

		rule := bleachingRule()
		mockRules.On("GetByID", ctx, rule.ID).Return(rule, nil)

		got, err := uc.GetRule(ctx, rule.ID)

		assert.NoError(t, err)
		assert.Equal(t, rule, got)
		mockRules.AssertExpectations(t)
	})
}
