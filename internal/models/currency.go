package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Currency codes seeded into every new wallet.
const (
	USD = "USD"
	EUR = "EUR"
	GBP = "GBP"
	INR = "INR"
)

// SeedCurrencies are the zero-balance slots created with a wallet.
var SeedCurrencies = []string{USD, EUR, GBP, INR}

var supportedCurrencies = []string{
	"USD", "EUR", "GBP", "JPY", "CAD", "AUD", "CHF", "CNY", "SEK", "NZD",
	"MXN", "SGD", "HKD", "NOK", "TRY", "ZAR", "BRL", "INR", "KRW", "PLN",
	"CZK", "HUF", "ILS", "CLP", "PHP", "THB", "MYR", "RON", "BGN", "HRK",
}

var supportedSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(supportedCurrencies))
	for _, c := range supportedCurrencies {
		m[c] = struct{}{}
	}
	return m
}()

// SupportedCurrencies returns a copy of the ISO codes the platform accepts.
func SupportedCurrencies() []string {
	out := make([]string, len(supportedCurrencies))
	copy(out, supportedCurrencies)
	return out
}

// IsSupportedCurrency reports whether code (already upper-cased) is accepted.
func IsSupportedCurrency(code string) bool {
	_, ok := supportedSet[code]
	return ok
}

// NormalizeCurrency upper-cases and validates an ISO code.
func NormalizeCurrency(code string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if !IsSupportedCurrency(c) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCurrency, code)
	}
	return c, nil
}

// MinorUnits returns the ISO 4217 exponent of code: 2 for USD, 0 for JPY.
// Unknown codes get 2.
func MinorUnits(code string) int32 {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return 2
	}
	scale, _ := currency.Standard.Rounding(unit)
	return int32(scale)
}

// ToMinorUnits expresses amount as an integer count of code's minor units.
// Amounts finer than the minor unit are rejected.
func ToMinorUnits(amount decimal.Decimal, code string) (int64, error) {
	exp := MinorUnits(code)
	if !amount.Equal(amount.Truncate(exp)) {
		return 0, fmt.Errorf("%w: %s allows %d decimal places", ErrInvalidAmount, code, exp)
	}
	return amount.Shift(exp).IntPart(), nil
}
