package handler

import (
	catalogapp "github.com/ckobasti77/alati-sub000/internal/application/catalog"
	"github.com/ckobasti77/alati-sub000/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogHandler handles catalog and supplier read endpoints
type CatalogHandler struct {
	BaseHandler
	catalogService *catalogapp.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *catalogapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// RegisterRoutes registers catalog routes on the given router group
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.GET("/:id/offers", h.OfferOptions)
		products.GET("/:id/quote", h.Quote)
	}
	rg.GET("/suppliers", h.ListSuppliers)
}

// listProductsQuery carries the product list query parameters
type listProductsQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
}

// ListProducts returns one page of catalog products, optionally filtered by
// a name search
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		h.BadRequest(c, "Missing collection scope")
		return
	}

	var query listProductsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.DefaultFilter()
	if query.Page > 0 {
		filter.Page = query.Page
	}
	if query.PageSize > 0 {
		filter.PageSize = query.PageSize
	}
	filter.Search = query.Search

	resp, err := h.catalogService.ListProducts(c.Request.Context(), scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetProduct returns one product with its variants
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		h.BadRequest(c, "Missing collection scope")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	resp, err := h.catalogService.GetProduct(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// OfferOptions lists the selectable supplier offers for a product, labeled
// with supplier names
func (h *CatalogHandler) OfferOptions(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		h.BadRequest(c, "Missing collection scope")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var variantID *uuid.UUID
	if raw := c.Query("variant_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid variant ID")
			return
		}
		variantID = &parsed
	}

	resp, err := h.catalogService.OfferOptions(c.Request.Context(), scope, id, variantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Quote resolves the prices a line would get for a selection without
// creating anything
func (h *CatalogHandler) Quote(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		h.BadRequest(c, "Missing collection scope")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.QuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.catalogService.Quote(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListSuppliers lists all suppliers for the scope
func (h *CatalogHandler) ListSuppliers(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		h.BadRequest(c, "Missing collection scope")
		return
	}

	resp, err := h.catalogService.ListSuppliers(c.Request.Context(), scope)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
