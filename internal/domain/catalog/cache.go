package catalog

import (
	"context"
	"time"

	"github.com/ckobasti77/alati-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductCache caches fully-loaded products (variants and offers included)
// in front of the catalog repository. A miss is (nil, nil); errors are
// reserved for backend failures.
type ProductCache interface {
	// Get returns the cached product or nil on a miss
	Get(ctx context.Context, scope shared.Scope, id uuid.UUID) (*Product, error)

	// Set stores a product
	Set(ctx context.Context, product *Product) error

	// Invalidate drops one product from the cache
	Invalidate(ctx context.Context, scope shared.Scope, id uuid.UUID) error

	// Close releases cache resources
	Close() error
}

// CacheConfig holds product cache settings
type CacheConfig struct {
	TTL       time.Duration
	KeyPrefix string
}

// DefaultCacheConfig returns the default product cache settings
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:       5 * time.Minute,
		KeyPrefix: "catalog:product",
	}
}
