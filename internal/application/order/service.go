package order

import (
	"context"
	"fmt"
	"time"

	"github.com/ckobasti77/alati-sub000/internal/domain/catalog"
	"github.com/ckobasti77/alati-sub000/internal/domain/order"
	"github.com/ckobasti77/alati-sub000/internal/domain/shared"
	"github.com/ckobasti77/alati-sub000/internal/domain/shared/valueobject"
	"github.com/ckobasti77/alati-sub000/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier sends the best-effort outbound notification after an order is
// created. Failures are surfaced as warnings only and never roll back the
// already-created order.
type Notifier interface {
	OrderCreated(ctx context.Context, o *order.Order) error
}

// OrderService handles order lifecycle operations for both collections
type OrderService struct {
	orderRepo   order.Repository
	productRepo catalog.ProductRepository
	notifier    Notifier
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo order.Repository, productRepo catalog.ProductRepository) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// SetNotifier sets the outbound notifier for order creation
func (s *OrderService) SetNotifier(notifier Notifier) {
	s.notifier = notifier
}

// Create creates a new order, resolving each line's prices from the catalog
// and snapshotting display titles at add time
func (s *OrderService) Create(ctx context.Context, scope shared.Scope, req CreateOrderRequest) (*OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewValidationError("An order needs at least one item")
	}

	items := make([]order.OrderItem, 0, len(req.Items))
	for _, lineReq := range req.Items {
		item, err := s.resolveItem(ctx, scope, lineReq)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	o, err := order.NewOrder(scope, req.CustomerName, req.CustomerPhone, items[0])
	if err != nil {
		return nil, err
	}
	for _, item := range items[1:] {
		o.AddItem(item)
	}
	if err := o.SetCustomer(req.CustomerName, req.CustomerPhone, req.Address, req.Pickup); err != nil {
		return nil, err
	}
	if req.Note != "" {
		o.SetNote(req.Note)
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, shared.NewRemoteFailure(err.Error())
	}

	s.notifyCreated(ctx, o)

	resp := ToOrderResponse(o)
	return &resp, nil
}

// GetByID retrieves an order
func (s *OrderService) GetByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// List retrieves one page of orders with the aggregate over that page
func (s *OrderService) List(ctx context.Context, scope shared.Scope, filter ListFilter) (*OrderListResponse, error) {
	domainFilter, err := toDomainFilter(filter)
	if err != nil {
		return nil, err
	}

	orders, total, err := s.orderRepo.FindAll(ctx, scope, domainFilter)
	if err != nil {
		return nil, shared.NewRemoteFailure(err.Error())
	}

	items := make([]OrderResponse, 0, len(orders))
	for idx := range orders {
		items = append(items, ToOrderResponse(&orders[idx]))
	}

	totalPages := int(total) / domainFilter.PageSize
	if int(total)%domainFilter.PageSize > 0 {
		totalPages++
	}

	return &OrderListResponse{
		Items:      items,
		Aggregate:  order.Aggregate(orders),
		Total:      total,
		Page:       domainFilter.Page,
		PageSize:   domainFilter.PageSize,
		TotalPages: totalPages,
	}, nil
}

// Update replaces the operator-editable fields of an order wholesale
func (s *OrderService) Update(ctx context.Context, scope shared.Scope, id uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	return s.mutate(ctx, scope, id, func(o *order.Order) error {
		return applyUpdate(o, req)
	})
}

// ChangeStage moves an order to a target stage, enforcing the shipment
// number precondition for poslato
func (s *OrderService) ChangeStage(ctx context.Context, scope shared.Scope, id uuid.UUID, req ChangeStageRequest) (*OrderResponse, error) {
	return s.mutate(ctx, scope, id, func(o *order.Order) error {
		return o.ChangeStage(order.Stage(req.Stage), req.ShipmentNumber)
	})
}

// AddItem resolves a catalog line and appends it to an existing order
func (s *OrderService) AddItem(ctx context.Context, scope shared.Scope, id uuid.UUID, req CreateOrderItemRequest) (*OrderResponse, error) {
	item, err := s.resolveItem(ctx, scope, req)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, scope, id, func(o *order.Order) error {
		o.AddItem(*item)
		return nil
	})
}

// UpdateItem edits quantity and/or manually overrides the sale price of one line
func (s *OrderService) UpdateItem(ctx context.Context, scope shared.Scope, id, itemID uuid.UUID, req UpdateItemRequest) (*OrderResponse, error) {
	var salePrice *valueobject.Money
	if req.SalePrice != nil {
		d, err := valueobject.ParseNonNegativeAmount(*req.SalePrice)
		if err != nil {
			return nil, shared.NewValidationError(err.Error())
		}
		m := valueobject.NewMoneyRSD(d)
		salePrice = &m
	}

	return s.mutate(ctx, scope, id, func(o *order.Order) error {
		if req.Kolicina != nil {
			if err := o.UpdateItemQuantity(itemID, *req.Kolicina); err != nil {
				return err
			}
		}
		if salePrice != nil {
			if err := o.UpdateItemSalePrice(itemID, salePrice.Amount()); err != nil {
				return err
			}
		}
		return nil
	})
}

// RemoveItem removes a line, rejecting removal of the last one
func (s *OrderService) RemoveItem(ctx context.Context, scope shared.Scope, id, itemID uuid.UUID) (*OrderResponse, error) {
	return s.mutate(ctx, scope, id, func(o *order.Order) error {
		return o.RemoveItem(itemID)
	})
}

// Delete removes an order, enforcing the typed confirmation phrase for
// orders already arrived, settled or returned
func (s *OrderService) Delete(ctx context.Context, scope shared.Scope, id uuid.UUID, req DeleteOrderRequest) error {
	o, err := s.orderRepo.FindByID(ctx, scope, id)
	if err != nil {
		return err
	}
	if err := o.ConfirmDelete(req.Confirmation); err != nil {
		return err
	}
	if err := s.orderRepo.Delete(ctx, scope, id); err != nil {
		return shared.NewRemoteFailure(err.Error())
	}
	return nil
}

// Reorder persists a manual drag-reorder: each id gets a sort index of the
// base timestamp minus its position in the new sequence
func (s *OrderService) Reorder(ctx context.Context, scope shared.Scope, req ReorderRequest) error {
	base := req.BaseMillis
	if base <= 0 {
		base = time.Now().UnixMilli()
	}
	updates := make([]order.SortIndexUpdate, 0, len(req.OrderedIDs))
	for pos, id := range req.OrderedIDs {
		updates = append(updates, order.SortIndexUpdate{OrderID: id, SortIndex: base - int64(pos)})
	}
	if err := s.orderRepo.UpdateSortIndexes(ctx, scope, updates); err != nil {
		return shared.NewRemoteFailure(err.Error())
	}
	return nil
}

// mutate runs one transform through the optimistic coordinator against the
// latest stored order
func (s *OrderService) mutate(ctx context.Context, scope shared.Scope, id uuid.UUID, transform func(*order.Order) error) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	session := NewOrderSession(s.orderRepo, o)
	if err := session.Apply(ctx, transform); err != nil {
		return nil, err
	}

	resp := ToOrderResponse(session.Current())
	return &resp, nil
}

// resolveItem turns a requested line into a priced, titled order item
func (s *OrderService) resolveItem(ctx context.Context, scope shared.Scope, req CreateOrderItemRequest) (*order.OrderItem, error) {
	product, err := s.productRepo.FindByID(ctx, scope, req.ProductID)
	if err != nil {
		return nil, err
	}

	resolved, err := catalog.ResolvePrice(product, req.VariantID, req.SupplierID, req.ManualSalePrice)
	if err != nil {
		return nil, err
	}

	title, variantLabel := product.DisplayTitle(req.VariantID)
	return order.NewOrderItem(uuid.Nil, product.ID, req.VariantID, title, variantLabel,
		resolved.Purchase, resolved.Sale, req.Kolicina, req.ManualSalePrice != nil)
}

// notifyCreated fires the best-effort creation notification
func (s *OrderService) notifyCreated(ctx context.Context, o *order.Order) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.OrderCreated(ctx, o); err != nil {
		logger.FromContext(ctx).Warn("order created notification failed",
			zap.String("order_id", o.ID.String()),
			zap.String("scope", o.Scope.String()),
			zap.Error(err))
	}
}

// applyUpdate maps the full-payload update request onto the order, parsing
// operator-entered numeric strings with comma/dot tolerance
func applyUpdate(o *order.Order, req UpdateOrderRequest) error {
	if err := o.SetCustomer(req.CustomerName, req.CustomerPhone, req.Address, req.Pickup); err != nil {
		return err
	}

	if req.TransportCost == nil {
		if err := o.SetTransportCost(nil); err != nil {
			return err
		}
	} else {
		d, err := valueobject.ParseNonNegativeAmount(*req.TransportCost)
		if err != nil {
			return shared.NewValidationError(fmt.Sprintf("Invalid transport cost: %v", err))
		}
		m := valueobject.NewMoneyRSD(d)
		if err := o.SetTransportCost(&m); err != nil {
			return err
		}
	}

	if req.TransportMode == nil {
		if err := o.SetTransportMode(nil); err != nil {
			return err
		}
	} else {
		mode := order.TransportMode(*req.TransportMode)
		if err := o.SetTransportMode(&mode); err != nil {
			return err
		}
	}

	if req.ShippingMode == nil {
		if err := o.SetShipping(nil, ""); err != nil {
			return err
		}
	} else {
		mode := order.ShippingMode(*req.ShippingMode)
		if err := o.SetShipping(&mode, req.ShippingOwner); err != nil {
			return err
		}
	}

	if req.MyProfitPercent == nil {
		if err := o.SetMyProfitPercent(nil); err != nil {
			return err
		}
	} else {
		d, err := valueobject.ParsePercent(*req.MyProfitPercent)
		if err != nil {
			return shared.NewValidationError(fmt.Sprintf("Invalid profit percentage: %v", err))
		}
		if err := o.SetMyProfitPercent(&d); err != nil {
			return err
		}
	}

	o.SetPovratVracen(req.PovratVracen)
	o.SetNote(req.Note)
	return nil
}

// toDomainFilter validates and converts the HTTP-facing filter
func toDomainFilter(filter ListFilter) (order.Filter, error) {
	domainFilter := order.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	for _, raw := range filter.Stages {
		stage := order.Stage(raw)
		if !stage.IsValid() {
			return order.Filter{}, shared.NewValidationError(fmt.Sprintf("Unknown stage %q", raw))
		}
		domainFilter.Stages = append(domainFilter.Stages, stage)
	}
	domainFilter.PovratVracen = filter.PovratVracen
	domainFilter.PickupOnly = filter.PickupOnly
	domainFilter.From = filter.From
	domainFilter.To = filter.To
	return domainFilter, nil
}
