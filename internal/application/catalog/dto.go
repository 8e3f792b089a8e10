package catalog

import (
	"time"

	"github.com/ckobasti77/alati-sub000/internal/domain/catalog"
	"github.com/ckobasti77/alati-sub000/internal/domain/partner"
	"github.com/google/uuid"
)

// VariantResponse is one product variation with its optional price overrides
type VariantResponse struct {
	ID            uuid.UUID `json:"id"`
	Label         string    `json:"label"`
	PurchasePrice *string   `json:"purchase_price,omitempty"`
	SalePrice     *string   `json:"sale_price,omitempty"`
}

// OfferOptionResponse is one selectable supplier offer, labeled with the
// supplier's name for display
type OfferOptionResponse struct {
	SupplierID   uuid.UUID  `json:"supplier_id"`
	SupplierName string     `json:"supplier_name"`
	VariantID    *uuid.UUID `json:"variant_id,omitempty"`
	Price        string     `json:"price"`
}

// ProductResponse is the catalog view of a product
type ProductResponse struct {
	ID            uuid.UUID         `json:"id"`
	Scope         string            `json:"scope"`
	Name          string            `json:"name"`
	Description   string            `json:"description,omitempty"`
	PurchasePrice string            `json:"purchase_price"`
	SalePrice     string            `json:"sale_price"`
	Variants      []VariantResponse `json:"variants"`
	ImageURLs     []string          `json:"image_urls,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// ProductListResponse is one page of catalog products
type ProductListResponse struct {
	Items      []ProductResponse `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// QuoteRequest asks for the prices a line would get before it is added
type QuoteRequest struct {
	VariantID       *uuid.UUID `json:"variant_id" form:"variant_id"`
	SupplierID      *uuid.UUID `json:"supplier_id" form:"supplier_id"`
	ManualSalePrice *string    `json:"manual_sale_price" form:"manual_sale_price"`
}

// QuoteResponse is the resolved purchase and sale price for a selection
type QuoteResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Purchase  string    `json:"purchase"`
	Sale      string    `json:"sale"`
}

// SupplierResponse is the read view of a supplier
type SupplierResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone,omitempty"`
	Note  string    `json:"note,omitempty"`
}

// ToProductResponse converts a product to its response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	variants := make([]VariantResponse, 0, len(p.Variants))
	for _, v := range p.Variants {
		variant := VariantResponse{
			ID:    v.ID,
			Label: v.Label,
		}
		if v.PurchasePrice != nil {
			s := v.PurchasePrice.String()
			variant.PurchasePrice = &s
		}
		if v.SalePrice != nil {
			s := v.SalePrice.String()
			variant.SalePrice = &s
		}
		variants = append(variants, variant)
	}

	return ProductResponse{
		ID:            p.ID,
		Scope:         p.Scope.String(),
		Name:          p.Name,
		Description:   p.Description,
		PurchasePrice: p.PurchasePrice.String(),
		SalePrice:     p.SalePrice.String(),
		Variants:      variants,
		ImageURLs:     p.ImageURLs,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToSupplierResponse converts a supplier to its response DTO
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:    s.ID,
		Name:  s.Name,
		Phone: s.Phone,
		Note:  s.Note,
	}
}
