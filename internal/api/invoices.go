package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// DocType distinguishes final invoices from proformas.
type DocType string

const (
	DocInvoice  DocType = "invoice"
	DocProforma DocType = "proforma"
)

type InvoiceItem struct {
	Description string          `json:"description"`
	Units       decimal.Decimal `json:"units"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type Invoice struct {
	ID       int             `json:"id"`
	Number   string          `json:"number"`
	Date     string          `json:"date"`
	Type     DocType         `json:"type"`
	ClientID int             `json:"client_id"`
	Base     decimal.Decimal `json:"base"`
	IVA      decimal.Decimal `json:"iva"`
	IRPF     decimal.Decimal `json:"irpf"`
	Total    decimal.Decimal `json:"total"`
	Items    []InvoiceItem   `json:"items"`
	Paid     bool            `json:"paid"`
}

type CreateInvoiceParams struct {
	Date     string        `json:"date"`
	Type     DocType       `json:"type"`
	ClientID int           `json:"client_id"`
	IVARate  float64       `json:"iva_rate"`
	IRPFRate float64       `json:"irpf_rate"`
	Items    []InvoiceItem `json:"items"`
}

type ListInvoicesParams struct {
	Limit  int
	Offset int
	Type   DocType
}

func (c *Client) ListInvoices(ctx context.Context, p ListInvoicesParams) ([]Invoice, error) {
	query := url.Values{}

	if p.Limit > 0 {
		query.Set("limit", strconv.Itoa(p.Limit))
	}

	if p.Offset > 0 {
		query.Set("offset", strconv.Itoa(p.Offset))
	}

	if p.Type != "" {
		query.Set("type", string(p.Type))
	}

	var resp struct {
		Items []Invoice `json:"items"`
	}

	if err := c.do(ctx, http.MethodGet, "/invoices", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}

	return resp.Items, nil
}

func (c *Client) CreateInvoice(ctx context.Context, p CreateInvoiceParams) (*Invoice, error) {
	var created Invoice
	if err := c.do(ctx, http.MethodPost, "/invoices", nil, p, &created); err != nil {
		return nil, fmt.Errorf("creating invoice: %w", err)
	}

	return &created, nil
}
