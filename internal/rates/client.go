package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mkhattak/paisa/internal/model"
)

// DefaultBaseURL is the public exchange-rate endpoint; the base currency
// code is appended to the path.
const DefaultBaseURL = "https://api.exchangerate-api.com/v4/latest"

// rateResponse is the expected JSON shape. Anything else is a fetch failure.
type rateResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// Client fetches exchange-rate tables over HTTPS.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a rate-table client. An empty baseURL selects the
// default endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Fetch retrieves the rate table for one base currency.
func (c *Client) Fetch(ctx context.Context, baseCurrency string) (*model.RateSnapshot, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, baseCurrency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create rates request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates endpoint returned %d", resp.StatusCode)
	}

	var parsed rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode rates response: %w", err)
	}
	if parsed.Base == "" || len(parsed.Rates) == 0 {
		return nil, fmt.Errorf("rates response missing base or rates")
	}

	return &model.RateSnapshot{
		BaseCurrency: parsed.Base,
		AsOfDate:     parsed.Date,
		Rates:        parsed.Rates,
	}, nil
}
