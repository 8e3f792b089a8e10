package partner

import (
	"context"
	"strings"

	"github.com/ckobasti77/alati-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// Supplier is a source a product can be purchased from. Maintained by the
// surrounding administration tooling; the order core reads the id→name
// mapping to label supplier offers.
type Supplier struct {
	shared.ScopedAggregateRoot
	Name  string
	Phone string
	Note  string
}

// NewSupplier creates a new supplier
func NewSupplier(scope shared.Scope, name string) (*Supplier, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("Supplier name cannot be empty")
	}
	return &Supplier{
		ScopedAggregateRoot: shared.NewScopedAggregateRoot(scope),
		Name:                strings.TrimSpace(name),
	}, nil
}

// SupplierRepository defines read access to suppliers
type SupplierRepository interface {
	// FindByID finds a supplier by ID within a scope
	FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*Supplier, error)

	// FindAll lists all suppliers for a scope
	FindAll(ctx context.Context, scope shared.Scope) ([]Supplier, error)

	// NameMap returns the supplier id to name mapping for a scope
	NameMap(ctx context.Context, scope shared.Scope) (map[uuid.UUID]string, error)
}
