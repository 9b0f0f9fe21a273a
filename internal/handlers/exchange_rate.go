package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
	"github.com/shopspring/decimal"
)

// RateReader defines the read-only oracle operations.
type RateReader interface {
	Rates(ctx context.Context, base string) (*models.ExchangeRateSnapshot, error)
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (*models.Conversion, error)
	SupportedCurrencies() []string
}

// NewGetExchangeRatesHandler returns an HTTP handler for fetching currency exchange rates.
// @Summary Get exchange rates
// @Description Returns rates from base to every supported currency. Base defaults to USD.
// @Tags exchange
// @Produce json
// @Param base query string false "Base currency"
// @Success 200 {object} models.ExchangeRatesResponse "Exchange rates"
// @Failure 400 {object} models.OperationResult "Unsupported currency"
// @Failure 503 {object} models.OperationResult "Rates unavailable"
// @Router /exchange/rates [get]
func NewGetExchangeRatesHandler(svc RateReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		base := r.URL.Query().Get("base")
		if base == "" {
			base = models.USD
		}

		snap, err := svc.Rates(r.Context(), strings.ToUpper(base))
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, models.ExchangeRatesResponse{
			Base:      snap.Base,
			Rates:     snap.Rates,
			FetchedAt: snap.FetchedAt,
		})
	}
}

// NewConvertHandler returns an HTTP handler that quotes a conversion.
// @Summary Convert amount
// @Tags exchange
// @Produce json
// @Param amount query string true "Amount"
// @Param from query string true "Source currency"
// @Param to query string true "Target currency"
// @Success 200 {object} models.Conversion "Conversion"
// @Failure 400 {object} models.OperationResult "Invalid request"
// @Failure 422 {object} models.OperationResult "Rate unavailable"
// @Router /exchange/convert [get]
func NewConvertHandler(svc RateReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		amount, err := decimal.NewFromString(q.Get("amount"))
		if err != nil {
			writeFailure(w, r, fmt.Errorf("%w: amount %q", models.ErrInvalidAmount, q.Get("amount")))
			return
		}
		from, to := q.Get("from"), q.Get("to")
		if from == "" || to == "" {
			writeFailure(w, r, fmt.Errorf("%w: from and to are required", models.ErrInvalidRequest))
			return
		}

		conv, err := svc.Convert(r.Context(), amount, from, to)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, conv)
	}
}

// NewGetCurrenciesHandler returns an HTTP handler listing supported currencies.
// @Summary Supported currencies
// @Tags exchange
// @Produce json
// @Success 200 {object} models.CurrenciesResponse "Currencies"
// @Router /currencies [get]
func NewGetCurrenciesHandler(svc RateReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.CurrenciesResponse{Currencies: svc.SupportedCurrencies()})
	}
}
