package market

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/application/usecase/usecasetest"
)

func TestGetRatesUseCase(t *testing.T) {
	t.Run("returns the table", func(t *testing.T) {
		provider := &usecasetest.RateProvider{Table: &adapter.ExchangeRateTable{
			EffectiveDate: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
			Rates:         []adapter.ExchangeRate{{Code: "USD", Currency: "dolar amerykański", Mid: decimal.RequireFromString("3.9512")}},
		}}

		out := NewGetRatesUseCase(provider).Execute(context.Background())
		if !out.Available || len(out.Rates) != 1 || out.Rates[0].Code != "USD" {
			t.Errorf("unexpected output: %+v", out)
		}
	})

	t.Run("upstream failure yields the placeholder", func(t *testing.T) {
		provider := &usecasetest.RateProvider{Err: errors.New("connection refused")}

		out := NewGetRatesUseCase(provider).Execute(context.Background())
		if out.Available || out.Message != UnavailableMessage || len(out.Rates) != 0 {
			t.Errorf("unexpected output: %+v", out)
		}
	})
}
