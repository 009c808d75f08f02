package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/caribdigital/coralledgerblue-sub004/internal/usecase"
	"github.com/caribdigital/coralledgerblue-sub004/internal/worker"
)

// EvaluationWorker runs the full rule evaluation pass on a fixed schedule.
type EvaluationWorker struct {
	*worker.BaseWorker
	engineUC *usecase.EngineUseCase
	interval time.Duration
}

// NewEvaluationWorker - create a new EvaluationWorker
func NewEvaluationWorker(engineUC *usecase.EngineUseCase, interval time.Duration, logger *zap.Logger) *EvaluationWorker {
	return &EvaluationWorker{
		BaseWorker: worker.NewBaseWorker("scheduled-evaluation", "", logger),
		engineUC:   engineUC,
		interval:   interval,
	}
}

// Start runs the worker until it is stopped.
func (w *EvaluationWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting EvaluationWorker",
		zap.Duration("interval", w.interval))

	// Run one pass right away so a restart does not wait a full interval.
	w.runPass(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case <-ticker.C:
			w.runPass(ctx)
		}
	}
}

func (w *EvaluationWorker) runPass(ctx context.Context) {
	if _, err := w.engineUC.EvaluateAndDispatch(ctx, usecase.TriggerScheduled); err != nil {
		w.Logger().Error("Scheduled evaluation pass failed", zap.Error(err))
	}
}
