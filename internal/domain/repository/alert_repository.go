package repository

import (
	"context"
	"time"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
)

// AlertRepository persists triggered alerts.
type AlertRepository interface {
	// PersistBatch stores the alerts and stamps last_triggered_at on every
	// distinct source rule inside a single transaction. Either everything
	// lands or nothing does; callers dispatch notifications only after it
	// returns nil.
	PersistBatch(ctx context.Context, alerts []*domain.Alert, triggeredAt time.Time) error

	// GetRecent returns the newest alerts, newest first, capped at limit.
	GetRecent(ctx context.Context, limit int) ([]*domain.Alert, error)

	// DeleteExpired removes alerts whose expiry passed before the cutoff
	// and returns how many rows went away.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
