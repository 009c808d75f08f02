package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
)

// ReadingRepository defines read access to satellite bleaching readings.
type ReadingRepository interface {
	// GetSince returns readings measured at or after the cutoff, newest
	// first.
	GetSince(ctx context.Context, cutoff time.Time) ([]*domain.BleachingReading, error)

	// GetSinceForArea narrows GetSince to one protected area.
	GetSinceForArea(ctx context.Context, areaID uuid.UUID, cutoff time.Time) ([]*domain.BleachingReading, error)
}
