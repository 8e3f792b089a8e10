package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ckobasti77/alati-sub000/internal/domain/catalog"
	"github.com/ckobasti77/alati-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisConfig holds the Redis connection settings for caches
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisProductCache implements catalog.ProductCache using Redis
type RedisProductCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	config     catalog.CacheConfig
	logger     *zap.Logger
}

// RedisProductCacheOption is a functional option for configuring the cache
type RedisProductCacheOption func(*RedisProductCache)

// WithCacheConfig sets the cache configuration
func WithCacheConfig(config catalog.CacheConfig) RedisProductCacheOption {
	return func(c *RedisProductCache) {
		c.config = config
	}
}

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) RedisProductCacheOption {
	return func(c *RedisProductCache) {
		c.logger = logger
	}
}

// NewRedisProductCache creates a new Redis-based product cache
func NewRedisProductCache(cfg RedisConfig, opts ...RedisProductCacheOption) (*RedisProductCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisProductCache{
		client:     client,
		ownsClient: true,
		config:     catalog.DefaultCacheConfig(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache, nil
}

// NewRedisProductCacheWithClient creates a cache with an existing Redis
// client. The caller retains ownership of the client.
func NewRedisProductCacheWithClient(client *redis.Client, opts ...RedisProductCacheOption) *RedisProductCache {
	cache := &RedisProductCache{
		client:     client,
		ownsClient: false,
		config:     catalog.DefaultCacheConfig(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache
}

// Get returns the cached product or nil on a miss
func (c *RedisProductCache) Get(ctx context.Context, scope shared.Scope, id uuid.UUID) (*catalog.Product, error) {
	data, err := c.client.Get(ctx, c.key(scope, id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var product catalog.Product
	if err := json.Unmarshal(data, &product); err != nil {
		// a corrupt entry behaves like a miss; drop it
		c.logger.Warn("dropping unreadable product cache entry",
			zap.String("product_id", id.String()),
			zap.Error(err))
		c.client.Del(ctx, c.key(scope, id))
		return nil, nil
	}
	return &product, nil
}

// Set stores a product with the configured TTL
func (c *RedisProductCache) Set(ctx context.Context, product *catalog.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("marshal product: %w", err)
	}
	if err := c.client.Set(ctx, c.key(product.Scope, product.ID), data, c.config.TTL).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Invalidate drops one product from the cache
func (c *RedisProductCache) Invalidate(ctx context.Context, scope shared.Scope, id uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(scope, id)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Close closes the Redis client if this cache owns it
func (c *RedisProductCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

func (c *RedisProductCache) key(scope shared.Scope, id uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", c.config.KeyPrefix, scope, id)
}
