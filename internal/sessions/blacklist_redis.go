package sessions

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedPrefix = "revoked:access:"

// RedisRevoker keeps revoked tokens in Redis with the token's remaining TTL,
// so every API instance sees a logout.
type RedisRevoker struct {
	client *redis.Client
}

func NewRedisRevoker(c *redis.Client) *RedisRevoker {
	return &RedisRevoker{client: c}
}

func (r *RedisRevoker) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedPrefix+tokenKey(token), "1", ttl).Err()
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, token string) (bool, error) {
	exists, err := r.client.Exists(ctx, revokedPrefix+tokenKey(token)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}
