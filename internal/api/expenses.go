package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// Expense is a persisted expense record. BaseAmount is always stored
// non-negative (the backend keeps absolute values); Total is computed
// server-side from BaseAmount and TaxRate.
type Expense struct {
	ID          int             `json:"id"`
	Date        string          `json:"date"`
	BaseAmount  decimal.Decimal `json:"base_amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Supplier    string          `json:"supplier"`
	TaxRate     float64         `json:"tax_rate"`
	Paid        bool            `json:"paid"`
	Total       decimal.Decimal `json:"total"`
}

type ListExpensesParams struct {
	Limit  int
	Offset int
	Sort   string
	Dir    string
}

type CreateExpenseParams struct {
	Date        string          `json:"date"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Supplier    string          `json:"supplier"`
	BaseAmount  decimal.Decimal `json:"base_amount"`
	TaxRate     float64         `json:"tax_rate"`
	Paid        bool            `json:"paid"`
}

func (c *Client) ListExpenses(ctx context.Context, p ListExpensesParams) ([]Expense, error) {
	query := url.Values{}

	if p.Limit > 0 {
		query.Set("limit", strconv.Itoa(p.Limit))
	}

	if p.Offset > 0 {
		query.Set("offset", strconv.Itoa(p.Offset))
	}

	if p.Sort != "" {
		query.Set("sort", p.Sort)
	}

	if p.Dir != "" {
		query.Set("dir", p.Dir)
	}

	var resp struct {
		Items []Expense `json:"items"`
	}

	if err := c.do(ctx, http.MethodGet, "/expenses", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}

	return resp.Items, nil
}

func (c *Client) CreateExpense(ctx context.Context, p CreateExpenseParams) (*Expense, error) {
	var created Expense
	if err := c.do(ctx, http.MethodPost, "/expenses", nil, p, &created); err != nil {
		return nil, fmt.Errorf("creating expense: %w", err)
	}

	return &created, nil
}

func (c *Client) DeleteExpense(ctx context.Context, id int) error {
	if err := c.do(ctx, http.MethodDelete, "/expenses/"+strconv.Itoa(id), nil, nil, nil); err != nil {
		return fmt.Errorf("deleting expense %d: %w", id, err)
	}

	return nil
}
