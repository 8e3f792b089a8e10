package cache

import (
	"fmt"

	"github.com/ckobasti77/alati-sub000/internal/domain/catalog"
	"github.com/ckobasti77/alati-sub000/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ProductCacheFactory creates product caches based on configuration
type ProductCacheFactory struct {
	redisConfig           config.RedisConfig
	cacheConfig           catalog.CacheConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// ProductCacheFactoryOption is a functional option for configuring the factory
type ProductCacheFactoryOption func(*ProductCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) ProductCacheFactoryOption {
	return func(f *ProductCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) ProductCacheFactoryOption {
	return func(f *ProductCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// WithProductCacheConfig sets the cache settings used by created caches
func WithProductCacheConfig(cfg catalog.CacheConfig) ProductCacheFactoryOption {
	return func(f *ProductCacheFactory) {
		f.cacheConfig = cfg
	}
}

// NewProductCacheFactory creates a new factory
func NewProductCacheFactory(cfg config.RedisConfig, opts ...ProductCacheFactoryOption) *ProductCacheFactory {
	f := &ProductCacheFactory{
		redisConfig:           cfg,
		cacheConfig:           catalog.DefaultCacheConfig(),
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateCache creates a product cache: Redis when reachable, falling back to
// in-memory when allowed
func (f *ProductCacheFactory) CreateCache() (catalog.ProductCache, error) {
	redisCfg := RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}

	cache, err := NewRedisProductCache(redisCfg, WithCacheConfig(f.cacheConfig), WithCacheLogger(f.logger))
	if err == nil {
		f.logger.Info("using Redis product cache")
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for product cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory product cache",
		zap.Error(err))
	return NewInMemoryProductCache(f.cacheConfig.TTL), nil
}
