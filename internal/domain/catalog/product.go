package catalog

import (
	"strings"
	"time"

	"github.com/ckobasti77/alati-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Variant is a concrete variation of a product (size, voltage, color...).
// Prices are optional; a nil price falls through to the product base price.
type Variant struct {
	ID            uuid.UUID
	ProductID     uuid.UUID
	Label         string
	PurchasePrice *decimal.Decimal
	SalePrice     *decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SupplierOffer is one supplier's price for a product, optionally restricted
// to a single variant
type SupplierOffer struct {
	ID         uuid.UUID
	ProductID  uuid.UUID
	SupplierID uuid.UUID
	VariantID  *uuid.UUID // nil means the offer applies to the whole product
	Price      decimal.Decimal
	CreatedAt  time.Time
}

// Product is a catalog entry with nested variants and supplier offers.
// The catalog is read-only from the order core's perspective; orders hold
// weak references into it.
type Product struct {
	shared.ScopedAggregateRoot
	Name          string
	Description   string
	PurchasePrice decimal.Decimal // base cost when no variant/offer applies
	SalePrice     decimal.Decimal // base sale price
	Variants      []Variant
	Offers        []SupplierOffer
	ImageURLs     []string `gorm:"-"`
}

// NewProduct creates a new catalog product
func NewProduct(scope shared.Scope, name string, purchasePrice, salePrice decimal.Decimal) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("Product name cannot be empty")
	}
	if purchasePrice.IsNegative() || salePrice.IsNegative() {
		return nil, shared.NewValidationError("Product prices cannot be negative")
	}

	return &Product{
		ScopedAggregateRoot: shared.NewScopedAggregateRoot(scope),
		Name:                strings.TrimSpace(name),
		PurchasePrice:       purchasePrice,
		SalePrice:           salePrice,
		Variants:            make([]Variant, 0),
		Offers:              make([]SupplierOffer, 0),
	}, nil
}

// AddVariant attaches a variant to the product
func (p *Product) AddVariant(label string, purchasePrice, salePrice *decimal.Decimal) (*Variant, error) {
	if strings.TrimSpace(label) == "" {
		return nil, shared.NewValidationError("Variant label cannot be empty")
	}
	if purchasePrice != nil && purchasePrice.IsNegative() {
		return nil, shared.NewValidationError("Variant purchase price cannot be negative")
	}
	if salePrice != nil && salePrice.IsNegative() {
		return nil, shared.NewValidationError("Variant sale price cannot be negative")
	}

	now := time.Now()
	v := Variant{
		ID:            uuid.New(),
		ProductID:     p.ID,
		Label:         strings.TrimSpace(label),
		PurchasePrice: purchasePrice,
		SalePrice:     salePrice,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	p.Variants = append(p.Variants, v)
	p.UpdatedAt = now
	return &v, nil
}

// AddOffer attaches a supplier offer to the product
func (p *Product) AddOffer(supplierID uuid.UUID, variantID *uuid.UUID, price decimal.Decimal) (*SupplierOffer, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewValidationError("Supplier ID cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewValidationError("Offer price cannot be negative")
	}
	if variantID != nil && p.GetVariant(*variantID) == nil {
		return nil, shared.NewValidationError("Offer references an unknown variant")
	}

	offer := SupplierOffer{
		ID:         uuid.New(),
		ProductID:  p.ID,
		SupplierID: supplierID,
		VariantID:  variantID,
		Price:      price,
		CreatedAt:  time.Now(),
	}
	p.Offers = append(p.Offers, offer)
	p.UpdatedAt = offer.CreatedAt
	return &offer, nil
}

// GetVariant returns a variant by ID, or nil
func (p *Product) GetVariant(variantID uuid.UUID) *Variant {
	for idx := range p.Variants {
		if p.Variants[idx].ID == variantID {
			return &p.Variants[idx]
		}
	}
	return nil
}

// DisplayTitle returns the title snapshot for order lines: product name, and
// the variant label when one is picked
func (p *Product) DisplayTitle(variantID *uuid.UUID) (title, variantLabel string) {
	title = p.Name
	if variantID != nil {
		if v := p.GetVariant(*variantID); v != nil {
			variantLabel = v.Label
		}
	}
	return title, variantLabel
}
