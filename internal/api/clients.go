package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Customer is a client record ("cliente"). Named Customer to keep the
// HTTP client type unambiguous inside this package.
type Customer struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	CIF     string `json:"cif"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	IBAN    string `json:"iban"`
}

type CreateCustomerParams struct {
	Name    string `json:"name"`
	CIF     string `json:"cif"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	IBAN    string `json:"iban"`
}

func (c *Client) ListCustomers(ctx context.Context) ([]Customer, error) {
	var resp struct {
		Items []Customer `json:"items"`
	}

	if err := c.do(ctx, http.MethodGet, "/clients", url.Values{}, nil, &resp); err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}

	return resp.Items, nil
}

func (c *Client) CreateCustomer(ctx context.Context, p CreateCustomerParams) (*Customer, error) {
	var created Customer
	if err := c.do(ctx, http.MethodPost, "/clients", nil, p, &created); err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return &created, nil
}

func (c *Client) DeleteCustomer(ctx context.Context, id int) error {
	if err := c.do(ctx, http.MethodDelete, "/clients/"+strconv.Itoa(id), nil, nil, nil); err != nil {
		return fmt.Errorf("deleting client %d: %w", id, err)
	}

	return nil
}
