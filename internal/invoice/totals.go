// Package invoice computes invoice/proforma totals the same way the
// backend persists them, so the form can preview exact figures before
// submitting.
package invoice

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Line is one invoice line item.
type Line struct {
	Description string
	Units       decimal.Decimal
	UnitPrice   decimal.Decimal
}

// Subtotal is units × unit price, rounded to cents.
func (l Line) Subtotal() decimal.Decimal {
	return l.Units.Mul(l.UnitPrice).Round(2)
}

// Totals are the tax breakdown of an invoice. IRPF is the Spanish
// withholding: it subtracts from the total rather than adding.
type Totals struct {
	Base  decimal.Decimal
	IVA   decimal.Decimal
	IRPF  decimal.Decimal
	Total decimal.Decimal
}

// Compute sums the line subtotals and applies the given percentage rates.
// Each intermediate figure rounds to cents before the next step; that
// matches how the backend stores them, which keeps preview and persisted
// totals identical.
func Compute(lines []Line, ivaRate, irpfRate decimal.Decimal) Totals {
	base := decimal.Zero
	for _, l := range lines {
		base = base.Add(l.Subtotal())
	}

	iva := base.Mul(ivaRate).Div(hundred).Round(2)
	irpf := base.Mul(irpfRate).Div(hundred).Round(2)

	return Totals{
		Base:  base,
		IVA:   iva,
		IRPF:  irpf,
		Total: base.Add(iva).Sub(irpf),
	}
}
