package dto

import (
	"github.com/finance-tracker/savings-ledger/internal/application/usecase/market"
)

// RateResponse is one currency's mid rate in PLN.
type RateResponse struct {
	Code     string `json:"code"`
	Currency string `json:"currency"`
	Mid      string `json:"mid"`
}

// RatesResponse represents the exchange rate widget data.
type RatesResponse struct {
	Available     bool           `json:"available"`
	Message       string         `json:"message,omitempty"`
	EffectiveDate string         `json:"effective_date,omitempty"`
	Rates         []RateResponse `json:"rates"`
}

// ToRatesResponse converts a RatesOutput.
func ToRatesResponse(output *market.RatesOutput) RatesResponse {
	response := RatesResponse{
		Available: output.Available,
		Message:   output.Message,
		Rates:     make([]RateResponse, len(output.Rates)),
	}
	if output.Available {
		response.EffectiveDate = formatDate(output.EffectiveDate)
	}
	for i, r := range output.Rates {
		response.Rates[i] = RateResponse{Code: r.Code, Currency: r.Currency, Mid: r.Mid.StringFixed(4)}
	}
	return response
}
