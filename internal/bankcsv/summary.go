package bankcsv

import "github.com/shopspring/decimal"

// PreviewLimit caps the number of rows shown in the confirmation preview.
const PreviewLimit = 20

// Summary aggregates the importable candidates of a parse for the user
// confirmation screen. It is a read-only projection; nothing here feeds
// back into the import itself.
type Summary struct {
	Count   int
	SumNeg  decimal.Decimal // sum of signed amounts (negative)
	SumAbs  decimal.Decimal
	MinDate string
	MaxDate string
	Preview []Candidate
}

// Summarize folds the importable candidates into a Summary.
func Summarize(candidates []Candidate) Summary {
	s := Summary{SumNeg: decimal.Zero, SumAbs: decimal.Zero}

	for _, c := range candidates {
		if !c.Importable() {
			continue
		}

		s.Count++
		s.SumNeg = s.SumNeg.Add(*c.Amount)
		s.SumAbs = s.SumAbs.Add(c.Amount.Abs())

		if s.MinDate == "" || c.AccountingDate < s.MinDate {
			s.MinDate = c.AccountingDate
		}

		if c.AccountingDate > s.MaxDate {
			s.MaxDate = c.AccountingDate
		}

		if len(s.Preview) < PreviewLimit {
			s.Preview = append(s.Preview, c)
		}
	}

	return s
}
