package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/warehouse-bot/internal/domain/shared"
	"github.com/redis/go-redis/v9"
)

// RedisIdempotencyStore remembers processed save tokens in Redis so a
// replayed save confirmation is a no-op on every instance of the
// service, not just the one that committed the line.
type RedisIdempotencyStore struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisIdempotencyStore connects to Redis and verifies the
// connection before returning the store.
func NewRedisIdempotencyStore(cfg RedisConfig) (*RedisIdempotencyStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisIdempotencyStore{client: client, keyPrefix: "wms:save-token:"}, nil
}

// MarkProcessed records a save token with the given TTL. SETNX makes
// the check-and-set atomic: exactly one concurrent caller gets true,
// every replay within the TTL gets false.
func (s *RedisIdempotencyStore) MarkProcessed(ctx context.Context, token string, ttl time.Duration) (bool, error) {
	fresh, err := s.client.SetNX(ctx, s.keyPrefix+token, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("mark save token: %w", err)
	}
	return fresh, nil
}

// IsProcessed reports whether a save token is still remembered.
func (s *RedisIdempotencyStore) IsProcessed(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, s.keyPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("check save token: %w", err)
	}
	return n > 0, nil
}

// Close closes the Redis client.
func (s *RedisIdempotencyStore) Close() error {
	return s.client.Close()
}

var _ shared.IdempotencyStore = (*RedisIdempotencyStore)(nil)
