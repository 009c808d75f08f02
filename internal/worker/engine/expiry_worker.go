package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/caribdigital/coralledgerblue-sub004/internal/usecase"
	"github.com/caribdigital/coralledgerblue-sub004/internal/worker"
)

// ExpiryWorker purges alerts whose lifetime has ended.
type ExpiryWorker struct {
	*worker.BaseWorker
	alertUC  *usecase.AlertUseCase
	interval time.Duration
}

// NewExpiryWorker - create a new ExpiryWorker
func NewExpiryWorker(alertUC *usecase.AlertUseCase, interval time.Duration, logger *zap.Logger) *ExpiryWorker {
	return &ExpiryWorker{
		BaseWorker: worker.NewBaseWorker("alert-expiry", "", logger),
		alertUC:    alertUC,
		interval:   interval,
	}
}

// Start runs the worker until it is stopped.
func (w *ExpiryWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting ExpiryWorker",
		zap.Duration("interval", w.interval))

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
			if _, err := w.alertUC.ExpireOld(ctx); err != nil {
				logger.Error("Expiry sweep failed", zap.Error(err))
			}
		}
	}
}
