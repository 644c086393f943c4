package bankcsv

import (
	"fmt"
	"io"
	"strings"

	enc "github.com/nioxtec/facturer/internal/encoding"
)

// Row-level error strings, shown verbatim in the preview table.
const (
	errBadAmount         = "Importe inválido"
	errBadAccountingDate = "Fecha ctble inválida"
	errBadValueDate      = "Fecha valor inválida"
	errBadCurrency       = "Moneda debe ser EUR"
)

const requiredCurrency = "EUR"

// Column positions in the fixed statement layout.
const (
	colAccountingDate = iota
	colValueDate
	colDescription
	colAmount
	colAmountCurrency
	colBalance
	colBalanceCurrency
	colExtendedDescription
)

// ParseResult is the outcome of parsing one statement file: every physical
// row as a candidate (expenses and non-expenses alike, for transparency)
// plus file-level structural errors.
type ParseResult struct {
	Candidates []Candidate
	Errors     []string
}

// Parse reads a statement file, decoding its charset, and parses every data
// row. Structural problems (empty file, unexpected header) land in
// ParseResult.Errors; only I/O failures return an error.
func Parse(r io.Reader) (*ParseResult, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read statement: %w", err)
	}

	tok := Tokenize(string(data))

	result := &ParseResult{Errors: tok.Errors}

	result.Candidates = make([]Candidate, 0, len(tok.Rows))
	for _, row := range tok.Rows {
		result.Candidates = append(result.Candidates, ParseRow(row))
	}

	return result, nil
}

// ParseRow turns one padded 8-column row into a candidate, accumulating
// validation errors instead of failing. A balance that does not parse is
// tolerated silently; the balance column is informational.
func ParseRow(row []string) Candidate {
	row = pad(row)

	c := Candidate{
		Description:         NormalizeText(row[colDescription]),
		ExtendedDescription: NormalizeText(row[colExtendedDescription]),
		AmountCurrency:      strings.ToUpper(strings.TrimSpace(row[colAmountCurrency])),
		BalanceCurrency:     strings.ToUpper(strings.TrimSpace(row[colBalanceCurrency])),
	}

	if amount, ok := ParseAmount(row[colAmount]); ok {
		c.Amount = &amount
	} else {
		c.Errors = append(c.Errors, errBadAmount)
	}

	if balance, ok := ParseAmount(row[colBalance]); ok {
		c.Balance = &balance
	}

	if date, ok := ParseDate(row[colAccountingDate]); ok {
		c.AccountingDate = date
	} else {
		c.Errors = append(c.Errors, errBadAccountingDate)
	}

	if date, ok := ParseDate(row[colValueDate]); ok {
		c.ValueDate = date
	} else {
		c.Errors = append(c.Errors, errBadValueDate)
	}

	if c.AmountCurrency != requiredCurrency || c.BalanceCurrency != requiredCurrency {
		c.Errors = append(c.Errors, errBadCurrency)
	}

	return c
}
