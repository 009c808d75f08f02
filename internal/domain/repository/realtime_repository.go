package repository

import (
	"context"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
)

// RealtimePublisher pushes alert events to live subscribers (websocket hub
// instances subscribe to the underlying channels).
type RealtimePublisher interface {
	// PublishAlert publishes the event on the global channel and, when the
	// alert is scoped to an area, on that area's channel too.
	PublishAlert(ctx context.Context, event *domain.AlertEvent) error
}
