package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
	"github.com/caribdigital/coralledgerblue-sub004/internal/domain/repository"
)

type realtimePublisher struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRealtimePublisher creates the pub/sub bridge the websocket hubs
// subscribe to.
func NewRealtimePublisher(client *redis.Client, logger *zap.Logger) repository.RealtimePublisher {
	return &realtimePublisher{
		client: client,
		logger: logger,
	}
}

// PublishAlert publishes the event on the global channel and, when the
// alert is scoped to a protected area, on that area's channel too.
func (r *realtimePublisher) PublishAlert(ctx context.Context, event *domain.AlertEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		r.logger.Error("Failed to marshal alert event", zap.Error(err))
		return fmt.Errorf("marshal alert event: %w", err)
	}

	if err := r.client.Publish(ctx, domain.ChannelAlertsAll, payload).Err(); err != nil {
		r.logger.Error("Failed to publish alert event",
			zap.String("channel", domain.ChannelAlertsAll),
			zap.Error(err))
		return fmt.Errorf("publish alert event: %w", err)
	}

	if event.Alert != nil && event.Alert.ProtectedAreaID != nil {
		channel := domain.ChannelAlertsArea(*event.Alert.ProtectedAreaID)
		if err := r.client.Publish(ctx, channel, payload).Err(); err != nil {
			r.logger.Error("Failed to publish alert event",
				zap.String("channel", channel),
				zap.Error(err))
			return fmt.Errorf("publish alert event: %w", err)
		}
	}

	return nil
}
