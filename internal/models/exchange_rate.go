package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultRateTTL is how long a fetched rate table is trusted.
const DefaultRateTTL = 5 * time.Minute

// ExchangeRateSnapshot is a rate table relative to Base.
// swagger:model ExchangeRateSnapshot
type ExchangeRateSnapshot struct {
	// example: USD
	Base      string                     `json:"base"`
	Rates     map[string]decimal.Decimal `json:"rates"`
	FetchedAt time.Time                  `json:"fetched_at"`
}

// IsFresh reports whether the snapshot may still be used at now.
func (s *ExchangeRateSnapshot) IsFresh(now time.Time, ttl time.Duration) bool {
	return s != nil && now.Sub(s.FetchedAt) < ttl
}

// Rate returns the rate from Base to code.
func (s *ExchangeRateSnapshot) Rate(code string) (decimal.Decimal, bool) {
	if code == s.Base {
		return decimal.NewFromInt(1), true
	}
	r, ok := s.Rates[code]
	return r, ok
}

// Conversion is the result of converting an amount between currencies.
// swagger:model Conversion
type Conversion struct {
	// example: 100
	Amount decimal.Decimal `json:"amount"`
	// example: USD
	From string `json:"from"`
	// example: EUR
	To string `json:"to"`
	// example: 0.92
	Rate decimal.Decimal `json:"rate"`
	// example: 92.00
	ConvertedAmount decimal.Decimal `json:"converted_amount"`
}

// ExchangeRatesResponse represents a successful response with exchange rates
// swagger:model ExchangeRatesResponse
type ExchangeRatesResponse struct {
	Base      string                     `json:"base"`
	Rates     map[string]decimal.Decimal `json:"rates"`
	FetchedAt time.Time                  `json:"fetched_at"`
}

// CurrenciesResponse lists supported currency codes
// swagger:model CurrenciesResponse
type CurrenciesResponse struct {
	Currencies []string `json:"currencies"`
}
