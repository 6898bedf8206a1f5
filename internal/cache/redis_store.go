package cache

import (
	"context"
	"time"

	"github.com/angelmondragon/skuexport/pkg/redis"
)

type redisBackend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Ping(ctx context.Context) error
	ExportKey(hash string) string
	OptionsKey(kind string) string
}

// RedisStore keeps cache entries in Redis under the service namespace.
type RedisStore struct {
	client redisBackend
}

// NewRedisStore wraps the shared redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.client.Get(ctx, key)
	if err != nil {
		if redis.IsMiss(err) {
			return nil, ErrMiss
		}
		return nil, err
	}
	return []byte(raw), nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, string(value), ttl)
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *RedisStore) ExportKey(hash string) string {
	return s.client.ExportKey(hash)
}

func (s *RedisStore) OptionsKey(kind string) string {
	return s.client.OptionsKey(kind)
}
