package tokenstore

import (
	"context"

	"greenjobs/internal/cache"
)

// RedisStore keeps the token in redis. Keys are namespaced by the cache
// client's prefix.
type RedisStore struct {
	cache *cache.Client
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a new redis-backed store.
func NewRedisStore(c *cache.Client) *RedisStore {
	return &RedisStore{cache: c}
}

func (s *RedisStore) Load(ctx context.Context) (string, error) {
	b, err := s.cache.Get(ctx, Key)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *RedisStore) Save(ctx context.Context, token string) error {
	return s.cache.Set(ctx, Key, []byte(token), 0)
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.cache.Delete(ctx, Key)
}
