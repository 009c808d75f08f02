package repository

import (
	"context"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
)

// EmailSender defines the outbound email provider used for alert delivery.
type EmailSender interface {
	// SendAlert delivers one alert to the given recipients.
	SendAlert(ctx context.Context, alert *domain.Alert, recipients []string) error
}

// PushSender defines the mobile push provider used for alert delivery.
type PushSender interface {
	// SendAlert delivers one alert as a push notification. Targeting is
	// topic-based: subscribers of the alert's area topic receive it.
	SendAlert(ctx context.Context, alert *domain.Alert) error
}
