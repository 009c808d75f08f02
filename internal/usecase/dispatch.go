package usecase

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
	"github.com/caribdigital/coralledgerblue-sub004/internal/domain/repository"
	"github.com/caribdigital/coralledgerblue-sub004/internal/observability"
)

// ChannelError records a single channel's delivery failure.
type ChannelError struct {
	Channel string
	Err     error
}

// DispatchUseCase fans persisted alerts out to their notification channels.
type DispatchUseCase struct {
	realtime       repository.RealtimePublisher
	email          repository.EmailSender
	push           repository.PushSender
	metrics        *observability.EngineCollector
	logger         *zap.Logger
	channelTimeout time.Duration
}

// NewDispatchUseCase creates the notification dispatcher.
func NewDispatchUseCase(
	realtime repository.RealtimePublisher,
	email repository.EmailSender,
	push repository.PushSender,
	metrics *observability.EngineCollector,
	logger *zap.Logger,
	channelTimeout time.Duration,
) *DispatchUseCase {
	return &DispatchUseCase{
		realtime:       realtime,
		email:          email,
		push:           push,
		metrics:        metrics,
		logger:         logger,
		channelTimeout: channelTimeout,
	}
}

// Dispatch fans one persisted alert out to every channel its rule
// requests, concurrently, and waits for all of them to settle. Channel
// failures are logged and counted but never propagated: a failed delivery
// must not look like a failed alert.
func (uc *DispatchUseCase) Dispatch(ctx context.Context, alert *domain.Alert, rule *domain.AlertRule) []ChannelError {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed []ChannelError
	)

	deliver := func(channel string, send func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sendCtx, cancel := context.WithTimeout(ctx, uc.channelTimeout)
			defer cancel()

			err := send(sendCtx)
			uc.metrics.ObserveNotification(channel, err)
			if err != nil {
				uc.logger.Error("Alert delivery failed",
					zap.String("channel", channel),
					zap.String("alert_id", alert.ID.String()),
					zap.Error(err))
				mu.Lock()
				failed = append(failed, ChannelError{Channel: channel, Err: err})
				mu.Unlock()
				return
			}
			uc.logger.Debug("Alert delivered",
				zap.String("channel", channel),
				zap.String("alert_id", alert.ID.String()))
		}()
	}

	// Dashboards ride the same pub/sub feed as other realtime subscribers,
	// so both flags map to one publish.
	if rule.Channels.Has(domain.ChannelRealTime) || rule.Channels.Has(domain.ChannelDashboard) {
		label := "realtime"
		if !rule.Channels.Has(domain.ChannelRealTime) {
			label = "dashboard"
		}
		event := domain.NewAlertEvent(alert)
		deliver(label, func(sendCtx context.Context) error {
			return uc.realtime.PublishAlert(sendCtx, event)
		})
	}

	if rule.Channels.Has(domain.ChannelEmail) {
		if len(rule.EmailRecipients) == 0 {
			uc.logger.Warn("Email channel requested but rule has no recipients",
				zap.String("rule_id", rule.ID.String()))
		} else {
			deliver("email", func(sendCtx context.Context) error {
				return uc.email.SendAlert(sendCtx, alert, rule.EmailRecipients)
			})
		}
	}

	if rule.Channels.Has(domain.ChannelPush) {
		deliver("push", func(sendCtx context.Context) error {
			return uc.push.SendAlert(sendCtx, alert)
		})
	}

	wg.Wait()
	return failed
}
