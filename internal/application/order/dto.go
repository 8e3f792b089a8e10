package order

import (
	"time"

	"github.com/ckobasti77/alati-sub000/internal/domain/order"
	"github.com/google/uuid"
)

// CreateOrderItemRequest is one requested line when creating an order or
// adding an item. Prices are resolved from the catalog unless a manual sale
// price is typed in; numeric strings accept comma or dot decimals.
type CreateOrderItemRequest struct {
	ProductID       uuid.UUID  `json:"product_id" binding:"required"`
	VariantID       *uuid.UUID `json:"variant_id"`
	SupplierID      *uuid.UUID `json:"supplier_id"`
	ManualSalePrice *string    `json:"manual_sale_price"`
	Kolicina        int        `json:"kolicina" binding:"required,min=1"`
}

// CreateOrderRequest creates a new order with at least one line
type CreateOrderRequest struct {
	CustomerName  string                   `json:"customer_name" binding:"required"`
	CustomerPhone string                   `json:"customer_phone"`
	Address       string                   `json:"address"`
	Pickup        bool                     `json:"pickup"`
	Note          string                   `json:"note"`
	Items         []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderRequest is the full-payload replace of operator-editable
// fields. Pointer fields distinguish "clear" from "leave numeric zero";
// string money/percent fields carry raw operator input.
type UpdateOrderRequest struct {
	CustomerName    string  `json:"customer_name" binding:"required"`
	CustomerPhone   string  `json:"customer_phone"`
	Address         string  `json:"address"`
	Pickup          bool    `json:"pickup"`
	TransportCost   *string `json:"transport_cost"`
	TransportMode   *string `json:"transport_mode"`
	ShippingMode    *string `json:"shipping_mode"`
	ShippingOwner   string  `json:"shipping_owner"`
	MyProfitPercent *string `json:"my_profit_percent"`
	PovratVracen    bool    `json:"povrat_vracen"`
	Note            string  `json:"note"`
}

// ChangeStageRequest moves an order to a target stage. The shipment number
// must accompany a transition to poslato.
type ChangeStageRequest struct {
	Stage          string `json:"stage" binding:"required"`
	ShipmentNumber string `json:"shipment_number"`
}

// DeleteOrderRequest carries the typed confirmation phrase for gated stages
type DeleteOrderRequest struct {
	Confirmation string `json:"confirmation"`
}

// UpdateItemRequest edits one line item
type UpdateItemRequest struct {
	Kolicina  *int    `json:"kolicina" binding:"omitempty,min=1"`
	SalePrice *string `json:"sale_price"`
}

// ReorderRequest is the batch reorder payload: the full id sequence in its
// new display order plus the base timestamp the drag happened at
type ReorderRequest struct {
	OrderedIDs []uuid.UUID `json:"ordered_ids" binding:"required,min=1"`
	BaseMillis int64       `json:"base_millis"`
}

// ListFilter mirrors the repository filter for the HTTP layer
type ListFilter struct {
	Stages       []string   `form:"stage"`
	PovratVracen *bool      `form:"povrat_vracen"`
	PickupOnly   bool       `form:"pickup_only"`
	From         *time.Time `form:"from" time_format:"2006-01-02"`
	To           *time.Time `form:"to" time_format:"2006-01-02"`
	Page         int        `form:"page"`
	PageSize     int        `form:"page_size"`
}

// OrderItemResponse is one line in an order response
type OrderItemResponse struct {
	ID              uuid.UUID  `json:"id"`
	ProductID       uuid.UUID  `json:"product_id"`
	VariantID       *uuid.UUID `json:"variant_id,omitempty"`
	Title           string     `json:"title"`
	VariantLabel    string     `json:"variant_label,omitempty"`
	NabavnaCena     string     `json:"nabavna_cena"`
	ProdajnaCena    string     `json:"prodajna_cena"`
	Kolicina        int        `json:"kolicina"`
	ManualSalePrice bool       `json:"manual_sale_price"`
}

// OrderResponse is the full order view including derived financials
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	Scope           string              `json:"scope"`
	Stage           string              `json:"stage"`
	SortIndex       *int64              `json:"sort_index,omitempty"`
	CustomerName    string              `json:"customer_name"`
	CustomerPhone   string              `json:"customer_phone"`
	Address         string              `json:"address"`
	Pickup          bool                `json:"pickup"`
	TransportCost   *string             `json:"transport_cost,omitempty"`
	TransportMode   *string             `json:"transport_mode,omitempty"`
	ShippingMode    *string             `json:"shipping_mode,omitempty"`
	ShippingOwner   string              `json:"shipping_owner,omitempty"`
	ShipmentNumber  string              `json:"shipment_number,omitempty"`
	MyProfitPercent *string             `json:"my_profit_percent,omitempty"`
	PovratVracen    bool                `json:"povrat_vracen"`
	Note            string              `json:"note"`
	Items           []OrderItemResponse `json:"items"`
	Financials      order.Financials    `json:"financials"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// OrderListResponse is one page of orders plus the running aggregate over
// everything loaded so far
type OrderListResponse struct {
	Items      []OrderResponse  `json:"items"`
	Aggregate  order.Financials `json:"aggregate"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// ToOrderItemResponse maps a domain item to its response shape
func ToOrderItemResponse(item *order.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:              item.ID,
		ProductID:       item.ProductID,
		VariantID:       item.VariantID,
		Title:           item.Title,
		VariantLabel:    item.VariantLabel,
		NabavnaCena:     item.NabavnaCena.String(),
		ProdajnaCena:    item.ProdajnaCena.String(),
		Kolicina:        item.Kolicina,
		ManualSalePrice: item.ManualSalePrice,
	}
}

// ToOrderResponse maps a domain order to its response shape, deriving the
// financial figures on the way out
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for idx := range o.Items {
		items = append(items, ToOrderItemResponse(&o.Items[idx]))
	}

	resp := OrderResponse{
		ID:             o.ID,
		Scope:          o.Scope.String(),
		Stage:          o.Stage.String(),
		SortIndex:      o.SortIndex,
		CustomerName:   o.CustomerName,
		CustomerPhone:  o.CustomerPhone,
		Address:        o.Address,
		Pickup:         o.Pickup,
		ShippingOwner:  o.ShippingOwner,
		ShipmentNumber: o.ShipmentNumber,
		PovratVracen:   o.PovratVracen,
		Note:           o.Note,
		Items:          items,
		Financials:     order.Derive(o),
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}

	if o.TransportCost != nil {
		s := o.TransportCost.Amount().String()
		resp.TransportCost = &s
	}
	if o.TransportMode != nil {
		s := string(*o.TransportMode)
		resp.TransportMode = &s
	}
	if o.ShippingMode != nil {
		s := string(*o.ShippingMode)
		resp.ShippingMode = &s
	}
	if o.MyProfitPercent != nil {
		s := o.MyProfitPercent.String()
		resp.MyProfitPercent = &s
	}

	return resp
}
