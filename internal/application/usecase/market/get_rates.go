// Package market contains the market data use cases.
package market

import (
	"context"
	"log/slog"
	"time"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
)

// TrackedCurrencies are the currency codes shown to users.
var TrackedCurrencies = []string{"USD", "EUR", "GBP", "CHF", "JPY"}

// UnavailableMessage replaces the rates when the upstream source fails.
const UnavailableMessage = "rates unavailable"

// RatesOutput is either a rate table or a placeholder.
type RatesOutput struct {
	Available     bool
	Message       string
	EffectiveDate time.Time
	Rates         []adapter.ExchangeRate
}

// GetRatesUseCase returns the current exchange rates.
type GetRatesUseCase struct {
	provider adapter.ExchangeRateProvider
}

// NewGetRatesUseCase creates a new GetRatesUseCase instance.
func NewGetRatesUseCase(provider adapter.ExchangeRateProvider) *GetRatesUseCase {
	return &GetRatesUseCase{
		provider: provider,
	}
}

// Execute never fails: upstream errors are logged and answered with a
// placeholder.
func (uc *GetRatesUseCase) Execute(ctx context.Context) *RatesOutput {
	table, err := uc.provider.Latest(ctx, TrackedCurrencies)
	if err != nil || table == nil {
		slog.Warn("Exchange rates unavailable", "error", err)
		return &RatesOutput{Available: false, Message: UnavailableMessage}
	}

	return &RatesOutput{
		Available:     true,
		EffectiveDate: table.EffectiveDate,
		Rates:         table.Rates,
	}
}
