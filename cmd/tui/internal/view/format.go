package view

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const apiTimeout = 30 * time.Second

// FormatMoney renders a decimal amount as euros with two decimals.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2) + " €"
}

// APICtx returns a context with the standard timeout for backend calls.
func APICtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), apiTimeout)
}

// Truncate shortens s to max runes, marking the cut with an ellipsis.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	if max <= 1 {
		return string(runes[:max])
	}

	return string(runes[:max-1]) + "…"
}
