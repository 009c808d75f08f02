package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
	"github.com/caribdigital/coralledgerblue-sub004/internal/usecase"
)

func TestDispatchUseCase_Dispatch(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	newDispatcher := func() (*usecase.DispatchUseCase, *MockRealtimePublisher, *MockEmailSender, *MockPushSender) {
		realtime := &MockRealtimePublisher{}
		email := &MockEmailSender{}
		push := &MockPushSender{}
		uc := usecase.NewDispatchUseCase(realtime, email, push, nil, logger, 5*time.Second)
		return uc, realtime, email, push
	}

	alert := &domain.Alert{
		ID:       uuid.New(),
		RuleID:   uuid.New(),
		Type:     domain.AlertTypeVesselInMPA,
		Severity: domain.SeverityCritical,
		Title:    "Vessel inside no-take zone",
	}

	t.Run("every requested channel is attempted", func(t *testing.T) {
		uc, realtime, email, push := newDispatcher()
		rule := &domain.AlertRule{
			ID:              uuid.New(),
			Channels:        domain.ChannelRealTime | domain.ChannelEmail | domain.ChannelPush,
			EmailRecipients: []string{"rangers@coralledger.blue"},
		}

		realtime.On("PublishAlert", mock.Anything, mock.Anything).Return(nil)
		email.On("SendAlert", mock.Anything, alert, rule.EmailRecipients).Return(nil)
		push.On("SendAlert", mock.Anything, alert).Return(nil)

		failed := uc.Dispatch(ctx, alert, rule)

		assert.Empty(t, failed)
		realtime.AssertExpectations(t)
		email.AssertExpectations(t)
		push.AssertExpectations(t)
	})

	t.Run("one failing channel does not block the others", func(t *testing.T) {
		uc, realtime, email, push := newDispatcher()
		rule := &domain.AlertRule{
			ID:              uuid.New(),
			Channels:        domain.ChannelRealTime | domain.ChannelEmail | domain.ChannelPush,
			EmailRecipients: []string{"rangers@coralledger.blue"},
		}

		realtime.On("PublishAlert", mock.Anything, mock.Anything).Return(nil)
		email.On("SendAlert", mock.Anything, alert, rule.EmailRecipients).
			Return(errors.New("smtp relay down"))
		push.On("SendAlert", mock.Anything, alert).Return(nil)

		failed := uc.Dispatch(ctx, alert, rule)

		assert.Len(t, failed, 1)
		assert.Equal(t, "email", failed[0].Channel)
		assert.Contains(t, failed[0].Err.Error(), "smtp relay down")

		realtime.AssertExpectations(t)
		email.AssertExpectations(t)
		push.AssertExpectations(t)
	})

	t.Run("dashboard and realtime share one publish", func(t *testing.T) {
		uc, realtime, _, _ := newDispatcher()
		rule := &domain.AlertRule{
			ID:       uuid.New(),
			Channels: domain.ChannelRealTime | domain.ChannelDashboard,
		}

		realtime.On("PublishAlert", mock.Anything, mock.Anything).Return(nil).Once()

		failed := uc.Dispatch(ctx, alert, rule)

		assert.Empty(t, failed)
		realtime.AssertExpectations(t)
	})

	t.Run("dashboard only still reaches the feed", func(t *testing.T) {
		uc, realtime, _, _ := newDispatcher()
		rule := &domain.AlertRule{
			ID:       uuid.New(),
			Channels: domain.ChannelDashboard,
		}

		realtime.On("PublishAlert", mock.Anything, mock.Anything).Return(nil).Once()

		failed := uc.Dispatch(ctx, alert, rule)

		assert.Empty(t, failed)
		realtime.AssertExpectations(t)
	})

	t.Run("email without recipients is skipped quietly", func(t *testing.T) {
		uc, realtime, email, push := newDispatcher()
		rule := &domain.AlertRule{
			ID:       uuid.New(),
			Channels: domain.ChannelEmail,
		}

		failed := uc.Dispatch(ctx, alert, rule)

		assert.Empty(t, failed)
		realtime.AssertExpectations(t)
		email.AssertExpectations(t)
		push.AssertExpectations(t)
	})

	t.Run("no channels means no deliveries", func(t *testing.T) {
		uc, realtime, email, push := newDispatcher()
		rule := &domain.AlertRule{ID: uuid.New()}

		failed := uc.Dispatch(ctx, alert, rule)

		assert.Empty(t, failed)
		realtime.AssertExpectations(t)
		email.AssertExpectations(t)
		push.AssertExpectations(t)
	})
}
