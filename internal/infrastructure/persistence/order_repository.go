package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/ckobasti77/alati-sub000/internal/domain/order"
	"github.com/ckobasti77/alati-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its items within a scope
func (r *GormOrderRepository) FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("scope = ? AND id = ?", scope, id).
		First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindAll finds orders for a scope with filtering, ordered by the effective
// sort key: the manual sort index where set, the creation timestamp in unix
// milliseconds otherwise, newest first.
func (r *GormOrderRepository) FindAll(ctx context.Context, scope shared.Scope, filter order.Filter) ([]order.Order, int64, error) {
	var total int64
	if err := r.applyFilter(
		r.db.WithContext(ctx).Model(&order.Order{}).Where("scope = ?", scope),
		filter,
	).Count(&total).Error; err != nil {
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

	var orders []order.Order
	if err := r.applyFilter(
		r.db.WithContext(ctx).Where("scope = ?", scope),
		filter,
	).
		Preload("Items").
		Order(r.effectiveSortExpr()).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// Save creates or fully replaces an order together with its items
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(o).Error; err != nil {
			return err
		}
		return saveItems(tx, o)
	})
}

// SaveWithLock saves with optimistic locking on the aggregate version
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		if err := tx.Model(&order.Order{}).
			Where("scope = ? AND id = ?", o.Scope, o.ID).
			Select("version").
			Scan(&currentVersion).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if currentVersion != o.Version {
			return shared.ErrConcurrencyConflict
		}

		o.Version++
		o.UpdatedAt = time.Now()

		result := tx.Model(&order.Order{}).
			Where("scope = ? AND id = ? AND version = ?", o.Scope, o.ID, currentVersion).
			Updates(map[string]interface{}{
				"sort_index":        o.SortIndex,
				"stage":             o.Stage,
				"customer_name":     o.CustomerName,
				"customer_phone":    o.CustomerPhone,
				"address":           o.Address,
				"pickup":            o.Pickup,
				"transport_cost":    o.TransportCost,
				"transport_mode":    o.TransportMode,
				"shipping_mode":     o.ShippingMode,
				"shipping_owner":    o.ShippingOwner,
				"shipment_number":   o.ShipmentNumber,
				"my_profit_percent": o.MyProfitPercent,
				"povrat_vracen":     o.PovratVracen,
				"note":              o.Note,
				"version":           o.Version,
				"updated_at":        o.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		return saveItems(tx, o)
	})
}

// Delete removes an order and its items within a scope
func (r *GormOrderRepository) Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&order.OrderItem{}).Error; err != nil {
			return err
		}

		result := tx.Where("scope = ? AND id = ?", scope, id).Delete(&order.Order{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// UpdateSortIndexes applies a batch of manual-reorder sort indexes in one
// transaction. Ids outside the scope are skipped rather than failing the
// whole batch.
func (r *GormOrderRepository) UpdateSortIndexes(ctx context.Context, scope shared.Scope, updates []order.SortIndexUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		for _, update := range updates {
			if err := tx.Model(&order.Order{}).
				Where("scope = ? AND id = ?", scope, update.OrderID).
				Updates(map[string]interface{}{
					"sort_index": update.SortIndex,
					"updated_at": now,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Count counts orders for a scope matching a filter
func (r *GormOrderRepository) Count(ctx context.Context, scope shared.Scope, filter order.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(
		r.db.WithContext(ctx).Model(&order.Order{}).Where("scope = ?", scope),
		filter,
	).Count(&count).Error
	return count, err
}

// applyFilter applies the list predicates to a query
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter order.Filter) *gorm.DB {
	if len(filter.Stages) > 0 {
		query = query.Where("stage IN ?", filter.Stages)
	}
	if filter.PovratVracen != nil {
		query = query.Where("povrat_vracen = ?", *filter.PovratVracen)
	}
	if filter.PickupOnly {
		query = query.Where("pickup = ?", true)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}
	return query
}

// effectiveSortExpr builds the dialect-specific ordering expression for
// "manual sort index, falling back to creation time in unix milliseconds"
func (r *GormOrderRepository) effectiveSortExpr() string {
	if r.db.Dialector.Name() == "sqlite" {
		return "COALESCE(sort_index, CAST(strftime('%s', created_at) AS INTEGER) * 1000) DESC, created_at DESC"
	}
	return "COALESCE(sort_index, (EXTRACT(EPOCH FROM created_at) * 1000)::bigint) DESC, created_at DESC"
}

// saveItems replaces the stored item set with the aggregate's current one:
// rows no longer present are deleted, the rest upserted
func saveItems(tx *gorm.DB, o *order.Order) error {
	currentItemIDs := make([]uuid.UUID, len(o.Items))
	for i, item := range o.Items {
		currentItemIDs[i] = item.ID
	}

	if len(currentItemIDs) > 0 {
		if err := tx.Where("order_id = ? AND id NOT IN ?", o.ID, currentItemIDs).
			Delete(&order.OrderItem{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("order_id = ?", o.ID).
			Delete(&order.OrderItem{}).Error; err != nil {
			return err
		}
	}

	for i := range o.Items {
		o.Items[i].OrderID = o.ID
		if err := tx.Save(&o.Items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
