// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the mid rate of one currency against the złoty.
type ExchangeRate struct {
	Code     string
	Currency string
	Mid      decimal.Decimal
}

// ExchangeRateTable is one published table of rates.
type ExchangeRateTable struct {
	EffectiveDate time.Time
	Rates         []ExchangeRate
}

// ExchangeRateProvider fetches current exchange rates from an upstream source.
type ExchangeRateProvider interface {
	// Latest returns the most recent table restricted to the given currency codes.
	Latest(ctx context.Context, codes []string) (*ExchangeRateTable, error)
}
