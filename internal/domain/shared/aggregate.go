package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity provides the identity and timestamp fields shared by all
// persisted entities
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// BaseAggregateRoot adds the version counter used for optimistic locking
type BaseAggregateRoot struct {
	BaseEntity
	Version int `gorm:"not null;default:1"`
}

// IncrementVersion increments the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

// ScopedAggregateRoot extends BaseAggregateRoot with the collection scope.
// The two order collections are fully independent; the scope is part of
// every aggregate's identity the same way a tenant id would be.
type ScopedAggregateRoot struct {
	BaseAggregateRoot
	Scope Scope `gorm:"type:varchar(20);not null;index"`
}

// NewScopedAggregateRoot creates a new scope-bound aggregate root
func NewScopedAggregateRoot(scope Scope) ScopedAggregateRoot {
	return ScopedAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		Scope:             scope,
	}
}

// GetScope returns the collection scope
func (s *ScopedAggregateRoot) GetScope() Scope {
	return s.Scope
}
