package order

import (
	"context"
	"time"

	"github.com/ckobasti77/alati-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// Filter narrows a list query. All predicates are applied server-side,
// combined with pagination.
type Filter struct {
	Stages       []Stage    // stage membership, empty means all
	PovratVracen *bool      // return-settled flag
	PickupOnly   bool       // only pickup orders
	From         *time.Time // creation date range
	To           *time.Time
	Page         int
	PageSize     int
}

// DefaultFilter returns a filter with default pagination
func DefaultFilter() Filter {
	return Filter{Page: 1, PageSize: 20}
}

// SortIndexUpdate is one entry of a batch reorder call
type SortIndexUpdate struct {
	OrderID   uuid.UUID
	SortIndex int64
}

// Repository defines persistence for orders. Every operation is keyed by the
// collection scope; Save performs a full-payload replace of the stored order.
type Repository interface {
	// FindByID finds an order by ID within a scope
	FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*Order, error)

	// FindAll finds orders for a scope with filtering and pagination,
	// returning the page of orders and the total matching count
	FindAll(ctx context.Context, scope shared.Scope, filter Filter) ([]Order, int64, error)

	// Save creates or fully replaces an order
	Save(ctx context.Context, o *Order) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, o *Order) error

	// Delete removes an order and its items within a scope
	Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error

	// UpdateSortIndexes applies a batch of manual-reorder sort indexes
	UpdateSortIndexes(ctx context.Context, scope shared.Scope, updates []SortIndexUpdate) error

	// Count counts orders for a scope matching a filter
	Count(ctx context.Context, scope shared.Scope, filter Filter) (int64, error)
}
