package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

const redisPrefix = "minimarket:snapshot:"

// RedisStore persists each collection as one JSON value under
// minimarket:snapshot:<coleccion>.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore creates and validates a go-redis backed snapshot store.
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	// Validate connectivity at startup
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{rdb: rdb}, nil
}

func (s *RedisStore) Load(ctx context.Context, coleccion string, dest any) error {
	raw, err := s.rdb.Get(ctx, redisPrefix+coleccion).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func (s *RedisStore) Save(ctx context.Context, coleccion string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, redisPrefix+coleccion, raw, 0).Err()
}

func (s *RedisStore) Close() error { return s.rdb.Close() }
