package persistence

import (
	"context"
	"errors"

	"github.com/ckobasti77/alati-sub000/internal/domain/partner"
	"github.com/ckobasti77/alati-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSupplierRepository implements partner.SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByID finds a supplier by ID within a scope
func (r *GormSupplierRepository) FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*partner.Supplier, error) {
	var supplier partner.Supplier
	if err := r.db.WithContext(ctx).
		Where("scope = ? AND id = ?", scope, id).
		First(&supplier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// FindAll lists all suppliers for a scope
func (r *GormSupplierRepository) FindAll(ctx context.Context, scope shared.Scope) ([]partner.Supplier, error) {
	var suppliers []partner.Supplier
	if err := r.db.WithContext(ctx).
		Where("scope = ?", scope).
		Order("name ASC").
		Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

// NameMap returns the supplier id to name mapping for a scope
func (r *GormSupplierRepository) NameMap(ctx context.Context, scope shared.Scope) (map[uuid.UUID]string, error) {
	type row struct {
		ID   uuid.UUID
		Name string
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&partner.Supplier{}).
		Where("scope = ?", scope).
		Select("id", "name").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string, len(rows))
	for _, entry := range rows {
		names[entry.ID] = entry.Name
	}
	return names, nil
}
