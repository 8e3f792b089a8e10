package catalog

import (
	"github.com/ckobasti77/alati-sub000/internal/domain/shared"
	"github.com/ckobasti77/alati-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ResolvedPrice is the outcome of price resolution for one order line
type ResolvedPrice struct {
	Purchase decimal.Decimal
	Sale     decimal.Decimal
}

// ResolvePrice resolves the purchase and sale price for a line item.
//
// Purchase: among the product's supplier offers, keep those matching the
// requested variant (or, with no variant, the unrestricted offers) and take
// the minimum price, ties broken by first-seen supplier. An explicitly
// chosen supplier wins over the minimum. With no usable offer the price
// falls through to the variant's own purchase price, then the product base.
//
// Sale: the manual override wins unconditionally when supplied; otherwise
// the variant sale price when a variant is selected, else the product base.
func ResolvePrice(p *Product, variantID, supplierID *uuid.UUID, manualSalePrice *string) (ResolvedPrice, error) {
	var variant *Variant
	if variantID != nil {
		variant = p.GetVariant(*variantID)
		if variant == nil {
			return ResolvedPrice{}, shared.NewValidationError("Unknown variant for product")
		}
	}

	purchase := resolvePurchase(p, variant, variantID, supplierID)

	sale, err := resolveSale(p, variant, manualSalePrice)
	if err != nil {
		return ResolvedPrice{}, err
	}

	return ResolvedPrice{Purchase: purchase, Sale: sale}, nil
}

func resolvePurchase(p *Product, variant *Variant, variantID, supplierID *uuid.UUID) decimal.Decimal {
	offers := matchingOffers(p, variantID)

	if supplierID != nil {
		for _, offer := range offers {
			if offer.SupplierID == *supplierID {
				return offer.Price
			}
		}
	}

	if len(offers) > 0 {
		best := offers[0]
		for _, offer := range offers[1:] {
			// strict comparison keeps the first-seen supplier on ties
			if offer.Price.LessThan(best.Price) {
				best = offer
			}
		}
		return best.Price
	}

	if variant != nil && variant.PurchasePrice != nil {
		return *variant.PurchasePrice
	}
	return p.PurchasePrice
}

func resolveSale(p *Product, variant *Variant, manualSalePrice *string) (decimal.Decimal, error) {
	if manualSalePrice != nil {
		d, err := valueobject.ParseNonNegativeAmount(*manualSalePrice)
		if err != nil {
			return decimal.Decimal{}, shared.NewDomainError(shared.CodeInvalidManualPrice, err.Error())
		}
		return d, nil
	}

	if variant != nil && variant.SalePrice != nil {
		return *variant.SalePrice, nil
	}
	return p.SalePrice, nil
}

// matchingOffers filters the product's offers for a variant selection: with
// a variant, offers restricted to that variant; without one, only offers
// with no variant restriction
func matchingOffers(p *Product, variantID *uuid.UUID) []SupplierOffer {
	matched := make([]SupplierOffer, 0, len(p.Offers))
	for _, offer := range p.Offers {
		switch {
		case variantID == nil && offer.VariantID == nil:
			matched = append(matched, offer)
		case variantID != nil && offer.VariantID != nil && *offer.VariantID == *variantID:
			matched = append(matched, offer)
		}
	}
	return matched
}

// OfferOptions builds the list of selectable supplier offers for the UI,
// collapsing duplicate offers from the same supplier while preserving the
// first occurrence order
func OfferOptions(p *Product, variantID *uuid.UUID) []SupplierOffer {
	offers := matchingOffers(p, variantID)
	seen := make(map[uuid.UUID]struct{}, len(offers))
	options := make([]SupplierOffer, 0, len(offers))
	for _, offer := range offers {
		if _, dup := seen[offer.SupplierID]; dup {
			continue
		}
		seen[offer.SupplierID] = struct{}{}
		options = append(options, offer)
	}
	return options
}
