package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TokenRepository 以 Redis 保存用戶的 refresh token
// 換發時會覆寫舊值，讓同一用戶只有一個有效的 refresh token
type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, userID uuid.UUID) (string, error)
	DeleteRefreshToken(ctx context.Context, userID uuid.UUID) error
}

type tokenRepository struct {
	client *redis.Client
}

func NewTokenRepository(client *redis.Client) TokenRepository {
	return &tokenRepository{client: client}
}

func refreshKey(userID uuid.UUID) string {
	return "refresh_token:" + userID.String()
}

func (r *tokenRepository) SaveRefreshToken(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error {
	return r.client.Set(ctx, refreshKey(userID), token, ttl).Err()
}

func (r *tokenRepository) GetRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return r.client.Get(ctx, refreshKey(userID)).Result()
}

func (r *tokenRepository) DeleteRefreshToken(ctx context.Context, userID uuid.UUID) error {
	return r.client.Del(ctx, refreshKey(userID)).Err()
}
