package repository

import (
	"context"
	"time"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
)

// ObservationRepository defines read access to citizen reef reports.
type ObservationRepository interface {
	// GetSince returns observations submitted at or after the cutoff,
	// newest first.
	GetSince(ctx context.Context, cutoff time.Time) ([]*domain.CitizenObservation, error)
}
