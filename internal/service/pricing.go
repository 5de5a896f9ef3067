package service

import (
	"github.com/shopspring/decimal"

	"github.com/wanderbook/wanderbook/internal/entity"
)

// LineItem is one priced unit of a cart: a per-person price and how many
// people it covers.
type LineItem struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Breakdown is the ordered output of the pricing computation.
type Breakdown struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	TaxableAmount decimal.Decimal `json:"taxableAmount"`
	Taxes         decimal.Decimal `json:"taxes"`
	FinalTotal    decimal.Decimal `json:"finalTotal"`
}

// PricingEngine turns line items and an optional promo into a price
// breakdown. It is pure: no I/O, deterministic for identical inputs.
type PricingEngine struct {
	taxRate decimal.Decimal
}

func NewPricingEngine(taxRate float64) *PricingEngine {
	return &PricingEngine{taxRate: decimal.NewFromFloat(taxRate)}
}

var oneHundred = decimal.NewFromInt(100)

// Price computes, in fixed order: subtotal, discount, taxable amount,
// taxes, final total. Intermediate values keep full precision; rounding
// to two decimal places happens only on taxes and the final total, so
// rounding error never compounds. A flat discount is clamped to the
// subtotal so the taxable amount can never go negative.
func (e *PricingEngine) Price(items []LineItem, promo *entity.PromoDescriptor) Breakdown {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	discount := decimal.Zero
	if promo != nil {
		switch promo.Type {
		case entity.PromoTypePercent:
			discount = subtotal.Mul(promo.Amount).Div(oneHundred)
		case entity.PromoTypeFlat:
			discount = decimal.Min(subtotal, promo.Amount)
		}
	}

	taxableAmount := subtotal.Sub(discount)
	if taxableAmount.IsNegative() {
		taxableAmount = decimal.Zero
	}

	taxes := taxableAmount.Mul(e.taxRate).Round(2)
	finalTotal := taxableAmount.Add(taxes).Round(2)

	return Breakdown{
		Subtotal:      subtotal,
		Discount:      discount,
		TaxableAmount: taxableAmount,
		Taxes:         taxes,
		FinalTotal:    finalTotal,
	}
}
