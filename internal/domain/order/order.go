package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/ckobasti77/alati-sub000/internal/domain/shared"
	"github.com/ckobasti77/alati-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is one product/variant line within an order.
// Title and VariantLabel are snapshots captured at add time so historical
// orders stay stable even if the catalog changes afterwards.
type OrderItem struct {
	ID              uuid.UUID
	OrderID         uuid.UUID
	ProductID       uuid.UUID
	VariantID       *uuid.UUID
	Title           string
	VariantLabel    string
	NabavnaCena     decimal.Decimal // resolved purchase price per unit
	ProdajnaCena    decimal.Decimal // resolved sale price per unit
	Kolicina        int             // quantity, always >= 1
	ManualSalePrice bool            // true when the sale price was typed in by the operator
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewOrderItem creates a new order line item
func NewOrderItem(orderID, productID uuid.UUID, variantID *uuid.UUID, title, variantLabel string, nabavna, prodajna decimal.Decimal, kolicina int, manualSalePrice bool) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("Product ID cannot be empty")
	}
	if title == "" {
		return nil, shared.NewValidationError("Item title cannot be empty")
	}
	if kolicina < 1 {
		return nil, shared.NewValidationError("Quantity must be at least 1")
	}
	if nabavna.IsNegative() {
		return nil, shared.NewValidationError("Purchase price cannot be negative")
	}
	if prodajna.IsNegative() {
		return nil, shared.NewValidationError("Sale price cannot be negative")
	}

	now := time.Now()
	return &OrderItem{
		ID:              uuid.New(),
		OrderID:         orderID,
		ProductID:       productID,
		VariantID:       variantID,
		Title:           title,
		VariantLabel:    variantLabel,
		NabavnaCena:     nabavna,
		ProdajnaCena:    prodajna,
		Kolicina:        kolicina,
		ManualSalePrice: manualSalePrice,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// SaleTotal returns sale price * quantity for this line
func (i *OrderItem) SaleTotal() decimal.Decimal {
	return i.ProdajnaCena.Mul(decimal.NewFromInt(int64(i.Kolicina)))
}

// PurchaseTotal returns purchase price * quantity for this line
func (i *OrderItem) PurchaseTotal() decimal.Decimal {
	return i.NabavnaCena.Mul(decimal.NewFromInt(int64(i.Kolicina)))
}

// UpdateQuantity updates the line quantity
func (i *OrderItem) UpdateQuantity(kolicina int) error {
	if kolicina < 1 {
		return shared.NewValidationError("Quantity must be at least 1")
	}
	i.Kolicina = kolicina
	i.UpdatedAt = time.Now()
	return nil
}

// UpdateSalePrice overrides the sale price and marks the line as manually priced
func (i *OrderItem) UpdateSalePrice(prodajna decimal.Decimal) error {
	if prodajna.IsNegative() {
		return shared.NewValidationError("Sale price cannot be negative")
	}
	i.ProdajnaCena = prodajna
	i.ManualSalePrice = true
	i.UpdatedAt = time.Now()
	return nil
}

// Order is the aggregate root for one purchase/sale order in a collection.
// It owns its items exclusively; product/variant references inside items are
// weak references into the external catalog.
type Order struct {
	shared.ScopedAggregateRoot

	// SortIndex overrides creation-time ordering when the operator has
	// manually reordered the list. Unix milliseconds; nil means "order by
	// creation time".
	SortIndex *int64

	Stage Stage
	Items []OrderItem

	// Customer
	CustomerName  string
	CustomerPhone string
	Address       string // ignored when Pickup is true
	Pickup        bool

	// Logistics
	TransportCost  *valueobject.Money
	TransportMode  *TransportMode
	ShippingMode   *ShippingMode
	ShippingOwner  string // only meaningful when ShippingMode is set
	ShipmentNumber string // non-empty exactly while Stage == poslato

	// Financial configuration
	MyProfitPercent *decimal.Decimal // nil reads as DefaultMyProfitPercent
	PovratVracen    bool             // return amount has been paid back

	Note string
}

// NewOrder creates a new order in stage poruceno with a single initial item.
// An order can never exist without at least one line item, so the first item
// is part of construction.
func NewOrder(scope shared.Scope, customerName, customerPhone string, firstItem OrderItem) (*Order, error) {
	if !scope.IsValid() {
		return nil, shared.NewValidationError(fmt.Sprintf("Unknown scope %q", scope))
	}
	if strings.TrimSpace(customerName) == "" {
		return nil, shared.NewValidationError("Customer name cannot be empty")
	}

	o := &Order{
		ScopedAggregateRoot: shared.NewScopedAggregateRoot(scope),
		Stage:               StagePoruceno,
		CustomerName:        strings.TrimSpace(customerName),
		CustomerPhone:       strings.TrimSpace(customerPhone),
		Items:               make([]OrderItem, 0, 1),
	}

	firstItem.OrderID = o.ID
	o.Items = append(o.Items, firstItem)

	return o, nil
}

// AddItem appends a line item to the order
func (o *Order) AddItem(item OrderItem) {
	item.OrderID = o.ID
	o.Items = append(o.Items, item)
	o.UpdatedAt = time.Now()
}

// UpdateItemQuantity updates the quantity of an existing line
func (o *Order) UpdateItemQuantity(itemID uuid.UUID, kolicina int) error {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			if err := o.Items[idx].UpdateQuantity(kolicina); err != nil {
				return err
			}
			o.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError(shared.CodeNotFound, "Order item not found")
}

// UpdateItemSalePrice manually overrides the sale price of an existing line
func (o *Order) UpdateItemSalePrice(itemID uuid.UUID, prodajna decimal.Decimal) error {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			if err := o.Items[idx].UpdateSalePrice(prodajna); err != nil {
				return err
			}
			o.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError(shared.CodeNotFound, "Order item not found")
}

// RemoveItem removes a line item. Removing the last remaining item is
// rejected: an order must always retain at least one line.
func (o *Order) RemoveItem(itemID uuid.UUID) error {
	if len(o.Items) <= 1 {
		return shared.NewDomainError(shared.CodeLastItem, "Cannot remove the last remaining item from an order")
	}
	for idx, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError(shared.CodeNotFound, "Order item not found")
}

// GetItem returns an item by its ID, or nil
func (o *Order) GetItem(itemID uuid.UUID) *OrderItem {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}

// ChangeStage moves the order to the target stage. Transitions are
// operator-selected so any valid stage is reachable, with two rules:
//   - entering poslato requires a non-empty shipment number supplied
//     atomically with the transition; without one the transition is blocked
//     and the stage is left unchanged
//   - leaving poslato for any other stage clears the shipment number
//
// Stage changes never touch the financial fields.
func (o *Order) ChangeStage(target Stage, shipmentNumber string) error {
	if !target.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Unknown stage %q", target))
	}

	shipmentNumber = strings.TrimSpace(shipmentNumber)
	if target.RequiresShipmentNumber() && shipmentNumber == "" {
		return shared.NewTransitionBlocked("Shipment number is required to mark an order as shipped")
	}

	wasPoslato := o.Stage == StagePoslato
	o.Stage = target

	switch {
	case target.RequiresShipmentNumber():
		o.ShipmentNumber = shipmentNumber
	case wasPoslato:
		o.ShipmentNumber = ""
	}

	o.UpdatedAt = time.Now()
	return nil
}

// ConfirmDelete checks the destructive-action gate for this order. For
// orders in stiglo, legle_pare or vraceno the operator must have typed the
// confirmation phrase; other stages delete without ceremony.
func (o *Order) ConfirmDelete(phrase string) error {
	if !o.Stage.RequiresDeleteConfirmation() {
		return nil
	}
	if !MatchesDeleteConfirmation(phrase) {
		return shared.NewDomainError(shared.CodeDeleteNotConfirmed,
			fmt.Sprintf("Deleting an order in stage %s requires typing %q", o.Stage, DeleteConfirmationPhrase))
	}
	return nil
}

// SetCustomer updates the customer fields. The address is cleared when the
// customer picks the order up in person.
func (o *Order) SetCustomer(name, phone, address string, pickup bool) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewValidationError("Customer name cannot be empty")
	}
	o.CustomerName = strings.TrimSpace(name)
	o.CustomerPhone = strings.TrimSpace(phone)
	o.Pickup = pickup
	if pickup {
		o.Address = ""
	} else {
		o.Address = strings.TrimSpace(address)
	}
	o.UpdatedAt = time.Now()
	return nil
}

// SetTransportCost sets or clears the transport cost
func (o *Order) SetTransportCost(cost *valueobject.Money) error {
	if cost != nil && cost.IsNegative() {
		return shared.NewValidationError("Transport cost cannot be negative")
	}
	o.TransportCost = cost
	o.UpdatedAt = time.Now()
	return nil
}

// SetTransportMode sets or clears the transport mode
func (o *Order) SetTransportMode(mode *TransportMode) error {
	if mode != nil && !mode.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Unknown transport mode %q", *mode))
	}
	o.TransportMode = mode
	o.UpdatedAt = time.Now()
	return nil
}

// SetShipping sets or clears the shipping mode together with the owner.
// The owner text only means anything while a shipping mode is set, so
// clearing the mode clears the owner too.
func (o *Order) SetShipping(mode *ShippingMode, owner string) error {
	if mode == nil {
		o.ShippingMode = nil
		o.ShippingOwner = ""
		o.UpdatedAt = time.Now()
		return nil
	}
	if !mode.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Unknown shipping mode %q", *mode))
	}
	o.ShippingMode = mode
	o.ShippingOwner = strings.TrimSpace(owner)
	o.UpdatedAt = time.Now()
	return nil
}

// SetMyProfitPercent sets or clears the operator profit percentage.
// Values outside [0,100] are rejected; nil falls back to the default at
// derivation time.
func (o *Order) SetMyProfitPercent(percent *decimal.Decimal) error {
	if percent != nil {
		if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
			return shared.NewValidationError("Profit percentage must be between 0 and 100")
		}
	}
	o.MyProfitPercent = percent
	o.UpdatedAt = time.Now()
	return nil
}

// SetPovratVracen flags whether the return amount has been settled
func (o *Order) SetPovratVracen(vracen bool) {
	o.PovratVracen = vracen
	o.UpdatedAt = time.Now()
}

// SetNote updates the free-text note
func (o *Order) SetNote(note string) {
	o.Note = note
	o.UpdatedAt = time.Now()
}

// SetSortIndex sets or clears the manual ordering override
func (o *Order) SetSortIndex(sortIndex *int64) {
	o.SortIndex = sortIndex
	o.UpdatedAt = time.Now()
}

// EffectiveSortKey is the list ordering key: the manual sort index when the
// operator has dragged the order somewhere, otherwise the creation time
func (o *Order) EffectiveSortKey() int64 {
	if o.SortIndex != nil {
		return *o.SortIndex
	}
	return o.CreatedAt.UnixMilli()
}

// TotalQuantity returns the sum of all line quantities
func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.Items {
		total += item.Kolicina
	}
	return total
}

// Clone returns a deep copy of the order. Used by the mutation coordinator
// to snapshot state before an optimistic transform.
func (o *Order) Clone() *Order {
	clone := *o

	clone.Items = make([]OrderItem, len(o.Items))
	copy(clone.Items, o.Items)
	for idx := range clone.Items {
		if v := o.Items[idx].VariantID; v != nil {
			variantID := *v
			clone.Items[idx].VariantID = &variantID
		}
	}

	if o.SortIndex != nil {
		sortIndex := *o.SortIndex
		clone.SortIndex = &sortIndex
	}
	if o.TransportCost != nil {
		cost := *o.TransportCost
		clone.TransportCost = &cost
	}
	if o.TransportMode != nil {
		mode := *o.TransportMode
		clone.TransportMode = &mode
	}
	if o.ShippingMode != nil {
		mode := *o.ShippingMode
		clone.ShippingMode = &mode
	}
	if o.MyProfitPercent != nil {
		percent := *o.MyProfitPercent
		clone.MyProfitPercent = &percent
	}

	return &clone
}
