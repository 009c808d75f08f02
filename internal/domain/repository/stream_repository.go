package repository

import (
	"context"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
)

// StreamRepository - interface for Redis Streams access
type StreamRepository interface {
	// ConsumeStream reads messages from the stream via a consumer group
	ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	// AckMessage confirms a message was processed
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// CreateConsumerGroup creates the consumer group if it does not exist
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// PublishToStream publishes a message to the stream
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
