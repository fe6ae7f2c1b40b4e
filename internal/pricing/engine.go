// Package pricing computes order totals against the menu catalog.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"maitred/internal/menu"
)

// Quote is the priced breakdown for a sequence of item codes. All values
// are rounded to two fraction digits.
type Quote struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// UnknownItemError reports an item code that does not resolve in the
// catalog. No partial totals are produced alongside it.
type UnknownItemError struct {
	Code string
}

func (e *UnknownItemError) Error() string {
	return fmt.Sprintf("menu item %q not found", e.Code)
}

// Engine prices item code sequences. It is a pure function of the catalog
// and the deployment's tax rate, so it is safe for concurrent use.
type Engine struct {
	catalog *menu.Catalog
	taxRate decimal.Decimal
}

// New creates a pricing engine with the given tax rate (a fraction, e.g.
// 0.10 for a 10% deployment).
func New(catalog *menu.Catalog, taxRate decimal.Decimal) *Engine {
	return &Engine{catalog: catalog, taxRate: taxRate}
}

// TaxRate returns the configured tax rate.
func (e *Engine) TaxRate() decimal.Decimal {
	return e.taxRate
}

// ComputeTotal prices a sequence of item codes. Duplicate codes count once
// per occurrence. Every code must resolve in the catalog; the first code
// that does not yields an UnknownItemError and an empty quote.
//
// Subtotal and tax are each rounded to two places before the grand total is
// formed (round-then-sum); tax is computed from the un-rounded subtotal.
func (e *Engine) ComputeTotal(itemCodes []string) (Quote, error) {
	subtotal := decimal.Zero
	for _, code := range itemCodes {
		item, ok := e.catalog.Lookup(code)
		if !ok {
			return Quote{}, &UnknownItemError{Code: code}
		}
		subtotal = subtotal.Add(item.Price)
	}

	tax := subtotal.Mul(e.taxRate)
	roundedSubtotal := subtotal.Round(2)
	roundedTax := tax.Round(2)

	return Quote{
		Subtotal:   roundedSubtotal,
		Tax:        roundedTax,
		GrandTotal: roundedSubtotal.Add(roundedTax),
	}, nil
}
