package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/nioxtec/facturer/internal/api"
	"github.com/nioxtec/facturer/internal/bankcsv"
)

// Key builds the canonical reconciliation key "date|amount|description".
// The amount is the signed transaction amount formatted to exactly two
// decimals; the description is whitespace-normalized. Every signature in
// the system MUST go through this one function: a parsed row and a stored
// record that format the key independently will drift apart and silently
// stop matching (statement rows carry the negative amount while the store
// keeps only the absolute value, which is exactly how duplicate detection
// broke once before).
func Key(date string, signedAmount decimal.Decimal, description string) string {
	return date + "|" + signedAmount.StringFixed(2) + "|" + bankcsv.NormalizeText(description)
}

// FromCandidate keys a parsed statement row. The amount is used as parsed,
// already negative for expenses. Callers must only pass importable
// candidates; a candidate without an amount keys as zero and matches nothing.
func FromCandidate(c bankcsv.Candidate) string {
	if c.Amount == nil {
		return Key(c.AccountingDate, decimal.Zero, c.Description)
	}

	return Key(c.AccountingDate, *c.Amount, c.Description)
}

// FromRecord keys a persisted expense. The store keeps base_amount as an
// absolute value, so the expense sign is reconstructed here.
func FromRecord(e api.Expense) string {
	return Key(e.Date, e.BaseAmount.Abs().Neg(), e.Description)
}
