package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
	"github.com/caribdigital/coralledgerblue-sub004/internal/domain/repository"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

// GetTierBoundary reads one cached simplified boundary. A miss and a
// corrupt entry both come back as nil so callers regenerate.
func (r *cacheRepository) GetTierBoundary(ctx context.Context, areaID uuid.UUID, tier domain.SimplificationTier) (*domain.Boundary, error) {
	data, err := r.Get(ctx, tierKey(areaID, tier))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	boundary, err := domain.UnmarshalBoundaryGeoJSON(data)
	if err != nil {
		r.logger.Warn("Dropping corrupt cached tier",
			zap.String("area_id", areaID.String()),
			zap.String("tier", string(tier)),
			zap.Error(err),
		)
		_ = r.Delete(ctx, tierKey(areaID, tier))
		return nil, nil
	}

	return boundary, nil
}

// SetTierBoundary caches one simplified boundary with a TTL.
func (r *cacheRepository) SetTierBoundary(ctx context.Context, areaID uuid.UUID, tier domain.SimplificationTier, b *domain.Boundary, ttl time.Duration) error {
	data, err := b.MarshalGeoJSON()
	if err != nil {
		r.logger.Error("Failed to marshal tier boundary",
			zap.String("area_id", areaID.String()),
			zap.String("tier", string(tier)),
			zap.Error(err),
		)
		return fmt.Errorf("marshal tier boundary: %w", err)
	}

	return r.Set(ctx, tierKey(areaID, tier), data, ttl)
}

// DeleteTierBoundaries drops every cached tier of one area. Called when a
// boundary change lands so stale simplifications never get served.
func (r *cacheRepository) DeleteTierBoundaries(ctx context.Context, areaID uuid.UUID) error {
	keys := make([]string, 0, len(domain.TierTolerances))
	for tier := range domain.TierTolerances {
		keys = append(keys, tierKey(areaID, tier))
	}

	err := r.client.Del(ctx, keys...).Err()
	if err != nil {
		r.logger.Error("Failed to delete cached tiers",
			zap.String("area_id", areaID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("cache delete error: %w", err)
	}

	return nil
}

func tierKey(areaID uuid.UUID, tier domain.SimplificationTier) string {
	return fmt.Sprintf("boundary:tier:%s:%s", areaID, tier)
}
