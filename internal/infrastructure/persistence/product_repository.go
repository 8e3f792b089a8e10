package persistence

import (
	"context"
	"errors"

	"github.com/ckobasti77/alati-sub000/internal/domain/catalog"
	"github.com/ckobasti77/alati-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product with its variants and offers preloaded
func (r *GormProductRepository) FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("Variants").
		Preload("Offers").
		Where("scope = ? AND id = ?", scope, id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAll lists products for a scope with pagination and optional name search
func (r *GormProductRepository) FindAll(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]catalog.Product, int64, error) {
	base := func() *gorm.DB {
		query := r.db.WithContext(ctx).Where("scope = ?", scope)
		if filter.Search != "" {
			query = query.Where("name LIKE ?", "%"+filter.Search+"%")
		}
		return query
	}

	var total int64
	if err := base().Model(&catalog.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	var products []catalog.Product
	if err := base().
		Preload("Variants").
		Preload("Offers").
		Order("name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}
