package database

import (
	"context"
	"errors"
	"fmt"

	"dm-server/internal/interfaces"
	"dm-server/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Compile-time check to ensure redisTokenRepository implements TokenRepository
var _ interfaces.TokenRepository = (*redisTokenRepository)(nil)

// AccessTokenKey - ключ, под которым сервис авторизации хранит живой access-токен.
func AccessTokenKey(accessUUID string) string {
	return fmt.Sprintf("access_uuid:%s", accessUUID)
}

type redisTokenRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisTokenRepository creates a new Redis-backed TokenRepository.
func NewRedisTokenRepository(client *redis.Client, logger *zap.Logger) interfaces.TokenRepository {
	return &redisTokenRepository{
		client: client,
		logger: logger.Named("RedisTokenRepo"),
	}
}

// GetUserIDByAccessUUID retrieves the UserID associated with an AccessUUID.
func (r *redisTokenRepository) GetUserIDByAccessUUID(ctx context.Context, accessUUID string) (uuid.UUID, error) {
	key := AccessTokenKey(accessUUID)
	userIDStr, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug("Access token not found in Redis", zap.String("accessUUID", accessUUID))
			return uuid.Nil, models.ErrTokenNotFound
		}
		r.logger.Error("Failed to get token from redis", zap.Error(err), zap.String("key", key))
		return uuid.Nil, fmt.Errorf("failed to get token from redis: %w", err)
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		r.logger.Error("Failed to parse userID (UUID) from redis data for access token",
			zap.Error(err),
			zap.String("accessUUID", accessUUID),
		)
		return uuid.Nil, fmt.Errorf("corrupted userID data in redis for access token %s: %w", accessUUID, err)
	}
	return userID, nil
}
