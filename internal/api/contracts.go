package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ContractTemplate is a server-side document template. Body carries the
// raw template text with {{placeholder}} markers; PDF rendering stays on
// the backend.
type ContractTemplate struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Body string `json:"body"`
}

type GenerateContractParams struct {
	TemplateID int               `json:"template_id"`
	ClientID   int               `json:"client_id"`
	Fields     map[string]string `json:"fields"`
}

type GeneratedContract struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}

func (c *Client) ListContractTemplates(ctx context.Context) ([]ContractTemplate, error) {
	var resp struct {
		Items []ContractTemplate `json:"items"`
	}

	if err := c.do(ctx, http.MethodGet, "/contracts/templates", url.Values{}, nil, &resp); err != nil {
		return nil, fmt.Errorf("listing contract templates: %w", err)
	}

	return resp.Items, nil
}

func (c *Client) GenerateContract(ctx context.Context, p GenerateContractParams) (*GeneratedContract, error) {
	var generated GeneratedContract
	if err := c.do(ctx, http.MethodPost, "/contracts/generate", nil, p, &generated); err != nil {
		return nil, fmt.Errorf("generating contract: %w", err)
	}

	return &generated, nil
}
