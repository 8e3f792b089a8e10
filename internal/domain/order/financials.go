package order

import (
	"github.com/shopspring/decimal"
)

// DefaultMyProfitPercent is used whenever an order has no explicit profit
// percentage configured. The source data was inconsistent here; the engine
// always reads an absent value as 100.
var DefaultMyProfitPercent = decimal.NewFromInt(100)

// PartnerSplit is the fixed share of the operator profit that goes to the
// financing partner. Kept as a named constant so the 50/50 arrangement is
// visible and changeable in one place.
var PartnerSplit = decimal.NewFromFloat(0.5)

// Financials holds every money figure derived from one order. All fields are
// recomputed from scratch on each call to Derive; nothing here is stored.
type Financials struct {
	TotalQty           int             `json:"total_qty"`
	TotalProdajno      decimal.Decimal `json:"total_prodajno"` // revenue across lines
	TotalNabavno       decimal.Decimal `json:"total_nabavno"`  // cost across lines
	Transport          decimal.Decimal `json:"transport"`
	Profit             decimal.Decimal `json:"profit"`
	ProfitNegative     bool            `json:"profit_negative"` // rendered distinctly, never clamped
	MyProfitPercent    decimal.Decimal `json:"my_profit_percent"`
	MyProfit           decimal.Decimal `json:"my_profit"`
	ProfitShare        decimal.Decimal `json:"profit_share"`
	ProfitSharePercent decimal.Decimal `json:"profit_share_percent"`
	Povrat             decimal.Decimal `json:"povrat"` // amount owed back to the financing partner
}

// Derive computes the full set of financial figures for an order.
// Pure: no side effects, no memory of prior state.
func Derive(o *Order) Financials {
	f := Financials{
		TotalProdajno: decimal.Zero,
		TotalNabavno:  decimal.Zero,
	}

	for _, item := range o.Items {
		f.TotalQty += item.Kolicina
		f.TotalProdajno = f.TotalProdajno.Add(item.SaleTotal())
		f.TotalNabavno = f.TotalNabavno.Add(item.PurchaseTotal())
	}

	f.Transport = decimal.Zero
	if o.TransportCost != nil {
		f.Transport = o.TransportCost.Amount()
	}

	f.Profit = f.TotalProdajno.Sub(f.TotalNabavno).Sub(f.Transport)
	f.ProfitNegative = f.Profit.IsNegative()

	f.MyProfitPercent = effectivePercent(o.MyProfitPercent)
	f.MyProfit = f.Profit.Mul(f.MyProfitPercent).Div(decimal.NewFromInt(100))
	f.ProfitShare = f.MyProfit.Mul(PartnerSplit)
	f.ProfitSharePercent = f.MyProfitPercent.Mul(PartnerSplit)

	f.Povrat = f.TotalNabavno.Add(f.Transport).Add(f.ProfitShare)

	return f
}

// Aggregate sums the derived figures across a set of orders, producing the
// running totals shown alongside the list. The result always equals the sum
// of per-order derivations because it is literally that sum.
func Aggregate(orders []Order) Financials {
	agg := Financials{
		TotalProdajno: decimal.Zero,
		TotalNabavno:  decimal.Zero,
		Transport:     decimal.Zero,
		Profit:        decimal.Zero,
		MyProfit:      decimal.Zero,
		ProfitShare:   decimal.Zero,
		Povrat:        decimal.Zero,
	}

	for idx := range orders {
		f := Derive(&orders[idx])
		agg.TotalQty += f.TotalQty
		agg.TotalProdajno = agg.TotalProdajno.Add(f.TotalProdajno)
		agg.TotalNabavno = agg.TotalNabavno.Add(f.TotalNabavno)
		agg.Transport = agg.Transport.Add(f.Transport)
		agg.Profit = agg.Profit.Add(f.Profit)
		agg.MyProfit = agg.MyProfit.Add(f.MyProfit)
		agg.ProfitShare = agg.ProfitShare.Add(f.ProfitShare)
		agg.Povrat = agg.Povrat.Add(f.Povrat)
	}

	agg.ProfitNegative = agg.Profit.IsNegative()
	return agg
}

// effectivePercent applies the default for absent or out-of-range values
func effectivePercent(percent *decimal.Decimal) decimal.Decimal {
	if percent == nil || percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return DefaultMyProfitPercent
	}
	return *percent
}
