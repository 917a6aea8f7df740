// Package recommend wraps the external budget-prediction service. The
// service takes (income, savings) and answers with per-category amounts
// under its own field names; this package translates them into the canonical
// ledger vocabulary.
package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"finbud/pkg/ledger"
)

// ErrRecommendation is the opaque failure callers see. Network errors,
// non-2xx statuses and malformed bodies all collapse into it; the caller
// falls back to manual budget entry either way.
var ErrRecommendation = errors.New("failed to get recommendation")

type Client struct {
	baseURL string
	httpc   *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

type request struct {
	Income  float64 `json:"income"`
	Savings float64 `json:"savings"`
}

// Recommend asks the prediction service for a budget proposal. The returned
// ledger is a draft value only; nothing is persisted here.
func (c *Client) Recommend(ctx context.Context, income, savings float64) (ledger.Ledger, error) {
	body, err := json.Marshal(request{Income: income, Savings: savings})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecommendation, err)
	}
	// endpoint name is the service's own spelling
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/recomended", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecommendation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecommendation, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: upstream status %d", ErrRecommendation, resp.StatusCode)
	}
	var fields map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecommendation, err)
	}
	alloc := make(ledger.Allocations, len(ledger.Categories()))
	for _, cat := range ledger.Categories() {
		v, ok := fields[cat.UpstreamField()]
		if !ok {
			return nil, fmt.Errorf("%w: response missing field %s", ErrRecommendation, cat.UpstreamField())
		}
		alloc[cat] = v
	}
	return ledger.FromAllocations(alloc), nil
}
