package catalog

import (
	"context"

	"github.com/ckobasti77/alati-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines read access to the catalog. Product records are
// maintained by the surrounding administration tooling; the order core only
// reads them.
type ProductRepository interface {
	// FindByID finds a product with its variants and offers preloaded
	FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*Product, error)

	// FindAll lists products for a scope
	FindAll(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]Product, int64, error)
}
