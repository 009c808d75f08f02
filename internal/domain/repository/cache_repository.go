package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
)

// CacheRepository defines the cache used for simplified boundary tiers and
// other computed values.
type CacheRepository interface {
	// Get reads a raw value by key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a raw value with a TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Exists checks whether a key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// GetTierBoundary reads one cached simplified boundary.
	GetTierBoundary(ctx context.Context, areaID uuid.UUID, tier domain.SimplificationTier) (*domain.Boundary, error)

	// SetTierBoundary caches one simplified boundary with a TTL.
	SetTierBoundary(ctx context.Context, areaID uuid.UUID, tier domain.SimplificationTier, b *domain.Boundary, ttl time.Duration) error

	// DeleteTierBoundaries drops every cached tier of one area, used when
	// a boundary change lands.
	DeleteTierBoundaries(ctx context.Context, areaID uuid.UUID) error
}
