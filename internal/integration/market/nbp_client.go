// Package market fetches exchange rates from the National Bank of Poland.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
)

// DefaultBaseURL is the public NBP API.
const DefaultBaseURL = "https://api.nbp.pl"

const (
	tableAPath = "/api/exchangerates/tables/a/?format=json"
	userAgent  = "savings-ledger/1.0"
)

type nbpTable struct {
	Table         string    `json:"table"`
	No            string    `json:"no"`
	EffectiveDate string    `json:"effectiveDate"`
	Rates         []nbpRate `json:"rates"`
}

type nbpRate struct {
	Currency string          `json:"currency"`
	Code     string          `json:"code"`
	Mid      decimal.Decimal `json:"mid"`
}

// nbpClient reads table A of average exchange rates.
type nbpClient struct {
	baseURL string
	client  *http.Client
}

// NewNBPClient creates a new NBP exchange rate provider.
func NewNBPClient(baseURL string, timeout time.Duration) adapter.ExchangeRateProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &nbpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Latest fetches the newest table A and keeps only the requested codes, in
// the requested order.
func (c *nbpClient) Latest(ctx context.Context, codes []string) (*adapter.ExchangeRateTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+tableAPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(body))
	}

	var tables []nbpTable
	if err := json.NewDecoder(resp.Body).Decode(&tables); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("empty rate table response")
	}

	return toTable(tables[0], codes)
}

func toTable(src nbpTable, codes []string) (*adapter.ExchangeRateTable, error) {
	effective, err := time.Parse(time.DateOnly, src.EffectiveDate)
	if err != nil {
		return nil, fmt.Errorf("invalid effective date %q: %w", src.EffectiveDate, err)
	}

	byCode := make(map[string]nbpRate, len(src.Rates))
	for _, r := range src.Rates {
		byCode[strings.ToUpper(r.Code)] = r
	}

	table := &adapter.ExchangeRateTable{EffectiveDate: effective}
	for _, code := range codes {
		r, ok := byCode[strings.ToUpper(code)]
		if !ok {
			continue
		}
		table.Rates = append(table.Rates, adapter.ExchangeRate{
			Code:     strings.ToUpper(r.Code),
			Currency: r.Currency,
			Mid:      r.Mid,
		})
	}
	return table, nil
}
