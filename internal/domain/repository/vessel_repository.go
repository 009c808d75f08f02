package repository

import (
	"context"
	"time"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
)

// VesselRepository defines read access to vessel tracking events.
type VesselRepository interface {
	// GetEventsSince returns events of one type that started at or after
	// the cutoff, open or closed, newest first.
	GetEventsSince(ctx context.Context, eventType domain.VesselEventType, cutoff time.Time) ([]*domain.VesselEvent, error)

	// GetOpenEvents returns events of one type that have not ended yet.
	GetOpenEvents(ctx context.Context, eventType domain.VesselEventType) ([]*domain.VesselEvent, error)
}
