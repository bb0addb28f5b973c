package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/TOLUWALASE007/worldclock/internal/cityinfo"
)

const keyPrefix = "worldclock:bundle:"

// RedisOptions configures the Redis bundle cache.
type RedisOptions struct {
	Address  string
	Username string
	Password string
	DB       int
}

// RedisStore caches bundles as JSON documents with a Redis TTL, so several
// instances can share resolved bundles.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Address,
		Username: opts.Username,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Address, err)
	}
	return &RedisStore{rdb: rdb}, nil
}

// Put stores a bundle for ttl.
func (s *RedisStore) Put(ctx context.Context, key string, b cityinfo.Bundle, ttl time.Duration) error {
	payload, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("encode bundle: %w", err)
	}
	if err := s.rdb.Set(ctx, keyPrefix+key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Get returns the cached bundle for key.
func (s *RedisStore) Get(ctx context.Context, key string) (cityinfo.Bundle, error) {
	payload, err := s.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return cityinfo.Bundle{}, ErrNotFound
	}
	if err != nil {
		return cityinfo.Bundle{}, fmt.Errorf("redis get %s: %w", key, err)
	}

	var b cityinfo.Bundle
	if err := json.Unmarshal(payload, &b); err != nil {
		return cityinfo.Bundle{}, fmt.Errorf("decode bundle %s: %w", key, err)
	}
	return b, nil
}

// Close releases the Redis connection pool.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
