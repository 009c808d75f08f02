package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
	"github.com/caribdigital/coralledgerblue-sub004/internal/domain/repository"
	"github.com/caribdigital/coralledgerblue-sub004/internal/usecase"
	"github.com/caribdigital/coralledgerblue-sub004/internal/worker"
)

// TriggerWorker consumes on-demand evaluation triggers from the Redis
// stream. Ingest pipelines publish one after landing fresh data so the
// matching rules run immediately instead of waiting for the schedule.
type TriggerWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	engineUC     *usecase.EngineUseCase
	consumerName string
}

// NewTriggerWorker - create a new TriggerWorker
func NewTriggerWorker(
	streamRepo repository.StreamRepository,
	engineUC *usecase.EngineUseCase,
	consumerGroup string,
	logger *zap.Logger,
) *TriggerWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &TriggerWorker{
		BaseWorker:   worker.NewBaseWorker("evaluation-trigger", consumerGroup, logger),
		streamRepo:   streamRepo,
		engineUC:     engineUC,
		consumerName: consumerName,
	}
}

// Start runs the worker until it is stopped.
func (w *TriggerWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting TriggerWorker",
		zap.String("stream", domain.StreamAlertsEvaluate),
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamAlertsEvaluate, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	msgChan, err := w.streamRepo.ConsumeStream(ctx, domain.StreamAlertsEvaluate, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-msgChan:
			if !ok {
				logger.Info("Stream channel closed")
				return nil
			}
			w.handleMessage(ctx, msg)
		}
	}
}

// handleMessage runs the requested evaluation and acks the message. Every
// message gets acked, malformed ones included: a trigger that cannot be
// understood or served now gains nothing from redelivery, the next
// scheduled pass covers the same ground.
func (w *TriggerWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()
	defer func() {
		_ = w.streamRepo.AckMessage(ctx, domain.StreamAlertsEvaluate, w.ConsumerGroup(), msg.ID)
	}()

	var event domain.EvaluateTriggerEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Warn("Failed to parse trigger event, skipping",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		return
	}

	if event.Type == "" {
		logger.Info("Trigger received, running full pass",
			zap.String("source", event.Source))
		if _, err := w.engineUC.EvaluateAndDispatch(ctx, usecase.TriggerStream); err != nil {
			logger.Error("Triggered evaluation pass failed", zap.Error(err))
		}
		return
	}

	alertType, err := event.AlertType()
	if err != nil {
		logger.Warn("Trigger event has unknown type, skipping",
			zap.String("message_id", msg.ID),
			zap.String("type", event.Type),
			zap.Error(err))
		return
	}

	logger.Info("Trigger received, running typed pass",
		zap.String("type", string(alertType)),
		zap.String("source", event.Source))
	if _, err := w.engineUC.EvaluateAndDispatchByType(ctx, usecase.TriggerStream, alertType); err != nil {
		logger.Error("Triggered evaluation pass failed",
			zap.String("type", string(alertType)),
			zap.Error(err))
	}
}
