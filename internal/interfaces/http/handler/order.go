package handler

import (
	orderapp "github.com/ckobasti77/alati-sub000/internal/application/order"
	"github.com/gin-gonic/gin"
)

// OrderHandler handles order lifecycle API endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// RegisterRoutes registers order routes on the given router group
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.POST("/reorder", h.Reorder)
		orders.GET("/:id", h.Get)
		orders.PUT("/:id", h.Update)
		orders.DELETE("/:id", h.Delete)
		orders.POST("/:id/stage", h.ChangeStage)
		orders.POST("/:id/items", h.AddItem)
		orders.PATCH("/:id/items/:itemId", h.UpdateItem)
		orders.DELETE("/:id/items/:itemId", h.RemoveItem)
	}
}

// Create creates a new order with at least one line item
func (h *OrderHandler) Create(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		h.BadRequest(c, "Missing collection scope")
		return
	}

	var req orderapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.Create(c.Request.Context(), scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns one filtered page of orders plus the page aggregate
func (h *OrderHandler) List(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		h.BadRequest(c, "Missing collection scope")
		return
	}

	var filter orderapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.List(c.Request.Context(), scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get returns one order with derived financials
func (h *OrderHandler) Get(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		h.BadRequest(c, "Missing collection scope")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	resp, err := h.orderService.GetByID(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update replaces the operator-editable fields of an order
func (h *OrderHandler) Update(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		h.BadRequest(c, "Missing collection scope")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req orderapp.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.Update(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ChangeStage moves an order to a target lifecycle stage
func (h *OrderHandler) ChangeStage(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		h.BadRequest(c, "Missing collection scope")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req orderapp.ChangeStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.ChangeStage(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddItem adds a line item to an existing order
func (h *OrderHandler) AddItem(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		h.BadRequest(c, "Missing collection scope")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req orderapp.CreateOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.AddItem(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateItem edits the quantity or sale price of one line item
func (h *OrderHandler) UpdateItem(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		h.BadRequest(c, "Missing collection scope")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}
	itemID, err := parseIDParam(c, "itemId")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req orderapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.UpdateItem(c.Request.Context(), scope, id, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveItem removes one line item. Removing the last remaining item is
// rejected at the domain level.
func (h *OrderHandler) RemoveItem(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		h.BadRequest(c, "Missing collection scope")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}
	itemID, err := parseIDParam(c, "itemId")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	resp, err := h.orderService.RemoveItem(c.Request.Context(), scope, id, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete deletes an order. Orders in post-arrival stages require the typed
// confirmation phrase in the request body.
func (h *OrderHandler) Delete(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		h.BadRequest(c, "Missing collection scope")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	// Body is optional: stages without the confirmation gate delete bare
	var req orderapp.DeleteOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	if err := h.orderService.Delete(c.Request.Context(), scope, id, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Reorder persists a drag-and-drop reordering of the order list
func (h *OrderHandler) Reorder(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		h.BadRequest(c, "Missing collection scope")
		return
	}

	var req orderapp.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.orderService.Reorder(c.Request.Context(), scope, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
