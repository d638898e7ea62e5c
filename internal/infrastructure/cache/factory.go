package cache

import (
	"fmt"

	"github.com/erp/warehouse-bot/internal/domain/shared"
	"github.com/erp/warehouse-bot/internal/infrastructure/config"
	"go.uber.org/zap"
)

// IdempotencyStoreFactory decides where processed save tokens are
// remembered: in Redis when it is enabled and reachable, otherwise in
// process memory.
type IdempotencyStoreFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// IdempotencyStoreFactoryOption configures the factory
type IdempotencyStoreFactoryOption func(*IdempotencyStoreFactory)

// WithLogger sets the factory logger
func WithLogger(logger *zap.Logger) IdempotencyStoreFactoryOption {
	return func(f *IdempotencyStoreFactory) { f.logger = logger }
}

// WithInMemoryFallback controls what happens when Redis is enabled but
// unreachable. The default (true) falls back to the in-memory store:
// duplicate-save protection then only covers this instance, which beats
// refusing to start. Set false to make Redis a hard requirement.
func WithInMemoryFallback(allow bool) IdempotencyStoreFactoryOption {
	return func(f *IdempotencyStoreFactory) { f.allowInMemoryFallback = allow }
}

// NewIdempotencyStoreFactory creates a factory for the given Redis
// configuration.
func NewIdempotencyStoreFactory(cfg config.RedisConfig, opts ...IdempotencyStoreFactoryOption) *IdempotencyStoreFactory {
	f := &IdempotencyStoreFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateRedisStore builds the Redis-backed save-token store.
func (f *IdempotencyStoreFactory) CreateRedisStore() (shared.IdempotencyStore, error) {
	store, err := NewRedisIdempotencyStore(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("redis save-token store: %w", err)
	}
	return store, nil
}

// CreateInMemoryStore builds the process-local save-token store.
func (f *IdempotencyStoreFactory) CreateInMemoryStore() shared.IdempotencyStore {
	return NewInMemoryIdempotencyStore()
}

// CreateStore picks the save-token store for the configuration: the
// in-memory store when Redis is disabled, Redis when reachable, and the
// in-memory fallback (if allowed) when it is not.
func (f *IdempotencyStoreFactory) CreateStore() (shared.IdempotencyStore, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("redis disabled, save tokens kept in memory")
		return f.CreateInMemoryStore(), nil
	}

	store, err := f.CreateRedisStore()
	if err == nil {
		f.logger.Info("save tokens kept in redis")
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for save-token dedup but unavailable: %w", err)
	}

	f.logger.Warn("redis unavailable, save tokens kept in memory for this instance", zap.Error(err))
	return f.CreateInMemoryStore(), nil
}
