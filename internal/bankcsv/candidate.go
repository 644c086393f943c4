// Package bankcsv parses bank statement CSV exports (the fixed 8-column
// Spanish layout: fecha contable, fecha valor, concepto, importe, moneda,
// saldo, moneda, concepto ampliado) into expense candidates for import.
package bankcsv

import "github.com/shopspring/decimal"

// Candidate is one parsed statement row being evaluated for import.
// It is built once per row and never mutated afterwards. Unparseable
// fields stay at their zero value and are reported through Errors.
type Candidate struct {
	AccountingDate string // YYYY-MM-DD, empty when the cell was invalid
	ValueDate      string // YYYY-MM-DD, empty when the cell was invalid

	Description         string // whitespace-collapsed concepto
	ExtendedDescription string

	Amount  *decimal.Decimal // signed as stated in the file; negative = expense
	Balance *decimal.Decimal // informational only

	AmountCurrency  string
	BalanceCurrency string

	Errors []string
}

// IsExpense reports whether the row is a charge: the amount parsed and is
// negative. Deposits and reversals are never import candidates.
func (c Candidate) IsExpense() bool {
	return c.Amount != nil && c.Amount.IsNegative()
}

// Importable reports whether the row may enter an import batch.
func (c Candidate) Importable() bool {
	return c.IsExpense() && len(c.Errors) == 0
}

// AmountAbs returns the absolute amount, or zero when the amount did not parse.
func (c Candidate) AmountAbs() decimal.Decimal {
	if c.Amount == nil {
		return decimal.Zero
	}

	return c.Amount.Abs()
}
