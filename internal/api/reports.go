package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// MonthSummary is one month of the annual report.
type MonthSummary struct {
	Month    string          `json:"month"` // YYYY-MM
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// HeatmapCell is one weekday/hour bucket of expense activity.
type HeatmapCell struct {
	Weekday int             `json:"weekday"` // 0 = Monday
	Hour    int             `json:"hour"`
	Total   decimal.Decimal `json:"total"`
}

func (c *Client) ReportSummary(ctx context.Context, year int) ([]MonthSummary, error) {
	query := url.Values{"year": []string{strconv.Itoa(year)}}

	var resp struct {
		Months []MonthSummary `json:"months"`
	}

	if err := c.do(ctx, http.MethodGet, "/reports/summary", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetching report summary: %w", err)
	}

	return resp.Months, nil
}

func (c *Client) ReportHeatmap(ctx context.Context, year int) ([]HeatmapCell, error) {
	query := url.Values{"year": []string{strconv.Itoa(year)}}

	var resp struct {
		Cells []HeatmapCell `json:"cells"`
	}

	if err := c.do(ctx, http.MethodGet, "/reports/heatmap", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetching heatmap: %w", err)
	}

	return resp.Cells, nil
}
