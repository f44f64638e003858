package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/koswara-dev/BarayaApp-sub000/domain"
)

// RedisTokenStoreImpl implements domain.TokenStore on Redis under a fixed
// service key. Used by device farms and integration rigs where the
// credential must outlive a single filesystem.
type RedisTokenStoreImpl struct {
	client *redis.Client
	key    string
}

// NewRedisTokenStore creates a redis-backed token store.
func NewRedisTokenStore(client *redis.Client, serviceName string) domain.TokenStore {
	return &RedisTokenStoreImpl{
		client: client,
		key:    "credential:" + serviceName,
	}
}

// Save implements domain.TokenStore. The credential never expires on its
// own; expiry is the token's own claim, enforced by the codec.
func (s *RedisTokenStoreImpl) Save(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key, token, 0).Err(); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	return nil
}

// Load implements domain.TokenStore.
func (s *RedisTokenStoreImpl) Load(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", domain.ErrTokenNotFound
		}
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return token, nil
}

// Delete implements domain.TokenStore.
func (s *RedisTokenStoreImpl) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	return nil
}
