package catalog

import (
	"context"

	"github.com/ckobasti77/alati-sub000/internal/domain/catalog"
	"github.com/ckobasti77/alati-sub000/internal/domain/partner"
	"github.com/ckobasti77/alati-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// CatalogService serves catalog reads for the order entry flow: product
// lookups, supplier offer options and price quoting
type CatalogService struct {
	productRepo  catalog.ProductRepository
	supplierRepo partner.SupplierRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(productRepo catalog.ProductRepository, supplierRepo partner.SupplierRepository) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
	}
}

// GetProduct retrieves one product with its variants
func (s *CatalogService) GetProduct(ctx context.Context, scope shared.Scope, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// ListProducts retrieves one page of catalog products
func (s *CatalogService) ListProducts(ctx context.Context, scope shared.Scope, filter shared.Filter) (*ProductListResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	products, total, err := s.productRepo.FindAll(ctx, scope, filter)
	if err != nil {
		return nil, shared.NewRemoteFailure(err.Error())
	}

	items := make([]ProductResponse, 0, len(products))
	for idx := range products {
		items = append(items, ToProductResponse(&products[idx]))
	}

	totalPages := int(total) / filter.PageSize
	if int(total)%filter.PageSize > 0 {
		totalPages++
	}

	return &ProductListResponse{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

// OfferOptions lists the selectable supplier offers for a product and
// variant, labeled with supplier names. Offers whose supplier is unknown
// keep an empty name rather than dropping the option.
func (s *CatalogService) OfferOptions(ctx context.Context, scope shared.Scope, productID uuid.UUID, variantID *uuid.UUID) ([]OfferOptionResponse, error) {
	product, err := s.productRepo.FindByID(ctx, scope, productID)
	if err != nil {
		return nil, err
	}

	names, err := s.supplierRepo.NameMap(ctx, scope)
	if err != nil {
		return nil, shared.NewRemoteFailure(err.Error())
	}

	offers := catalog.OfferOptions(product, variantID)
	options := make([]OfferOptionResponse, 0, len(offers))
	for _, offer := range offers {
		options = append(options, OfferOptionResponse{
			SupplierID:   offer.SupplierID,
			SupplierName: names[offer.SupplierID],
			VariantID:    offer.VariantID,
			Price:        offer.Price.String(),
		})
	}
	return options, nil
}

// ListSuppliers lists every supplier for a scope, ordered by name
func (s *CatalogService) ListSuppliers(ctx context.Context, scope shared.Scope) ([]SupplierResponse, error) {
	suppliers, err := s.supplierRepo.FindAll(ctx, scope)
	if err != nil {
		return nil, shared.NewRemoteFailure(err.Error())
	}

	items := make([]SupplierResponse, 0, len(suppliers))
	for idx := range suppliers {
		items = append(items, ToSupplierResponse(&suppliers[idx]))
	}
	return items, nil
}

// Quote resolves the purchase and sale price a line would get for the given
// selection, without creating anything
func (s *CatalogService) Quote(ctx context.Context, scope shared.Scope, productID uuid.UUID, req QuoteRequest) (*QuoteResponse, error) {
	product, err := s.productRepo.FindByID(ctx, scope, productID)
	if err != nil {
		return nil, err
	}

	resolved, err := catalog.ResolvePrice(product, req.VariantID, req.SupplierID, req.ManualSalePrice)
	if err != nil {
		return nil, err
	}

	return &QuoteResponse{
		ProductID: product.ID,
		Purchase:  resolved.Purchase.String(),
		Sale:      resolved.Sale.String(),
	}, nil
}
