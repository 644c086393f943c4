package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID       int             `json:"id"`
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
}

func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var resp struct {
		Items []Product `json:"items"`
	}

	if err := c.do(ctx, http.MethodGet, "/products", url.Values{}, nil, &resp); err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	return resp.Items, nil
}
