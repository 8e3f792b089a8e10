package cache

import (
	"context"

	"github.com/ckobasti77/alati-sub000/internal/domain/catalog"
	"github.com/ckobasti77/alati-sub000/internal/domain/shared"
	"github.com/ckobasti77/alati-sub000/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CachedProductRepository decorates a catalog.ProductRepository with a
// read-through product cache. Cache failures degrade to the underlying
// repository with a warning; they never fail the read.
type CachedProductRepository struct {
	inner catalog.ProductRepository
	cache catalog.ProductCache
}

// NewCachedProductRepository creates a read-through cached repository
func NewCachedProductRepository(inner catalog.ProductRepository, cache catalog.ProductCache) *CachedProductRepository {
	return &CachedProductRepository{inner: inner, cache: cache}
}

// FindByID returns the cached product when present, loading and caching it
// otherwise
func (r *CachedProductRepository) FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*catalog.Product, error) {
	cached, err := r.cache.Get(ctx, scope, id)
	if err != nil {
		logger.FromContext(ctx).Warn("product cache read failed",
			zap.String("product_id", id.String()),
			zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	product, err := r.inner.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, product); err != nil {
		logger.FromContext(ctx).Warn("product cache write failed",
			zap.String("product_id", id.String()),
			zap.Error(err))
	}
	return product, nil
}

// FindAll delegates to the underlying repository; list queries are not cached
func (r *CachedProductRepository) FindAll(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]catalog.Product, int64, error) {
	return r.inner.FindAll(ctx, scope, filter)
}
