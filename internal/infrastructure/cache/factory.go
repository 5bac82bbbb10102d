package cache

import (
	"github.com/redis/go-redis/v9"
	"github.com/tlsy/handicrafts/internal/domain/shared"
	"go.uber.org/zap"
)

// NewDedupeStore returns a Redis-backed store when client is set and an in-memory one otherwise
func NewDedupeStore(client *redis.Client, logger *zap.Logger) shared.IdempotencyStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if client != nil {
		logger.Info("Using Redis for duplicate submission detection")
		return NewRedisIdempotencyStore(client, DefaultDedupeKeyPrefix)
	}
	logger.Warn("Redis disabled, duplicate submission detection is per instance")
	return NewInMemoryIdempotencyStore()
}
