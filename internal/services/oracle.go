package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sbilibin2017/gw-remit-wallet/internal/logger"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
)

// RateSource fetches a live rate table.
type RateSource interface {
	FetchRates(ctx context.Context, base string) (map[string]decimal.Decimal, error) // Returns rates relative to base
}

// RateCache stores rate snapshots.
type RateCache interface {
	Get(ctx context.Context, base string) (*models.ExchangeRateSnapshot, error) // Returns nil on miss
	Set(ctx context.Context, snap *models.ExchangeRateSnapshot) error           // Stores a snapshot
}

// OracleConfig tunes the conversion oracle.
type OracleConfig struct {
	FeeRate    decimal.Decimal
	RateTTL    time.Duration
	MaxRetries uint64
}

// ConversionOracle converts amounts between currencies and computes fees.
// Rates are served from the cache while fresh; otherwise the source is called
// with bounded retries behind a circuit breaker.
type ConversionOracle struct {
	source  RateSource
	cache   RateCache
	breaker *gobreaker.CircuitBreaker
	cfg     OracleConfig
	now     func() time.Time
}

func NewConversionOracle(source RateSource, cache RateCache, cfg OracleConfig) *ConversionOracle {
	if cfg.RateTTL <= 0 {
		cfg.RateTTL = models.DefaultRateTTL
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "rate-source",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, models.ErrRateUnavailable)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Log.Warnw("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
	return &ConversionOracle{source: source, cache: cache, breaker: breaker, cfg: cfg, now: time.Now}
}

// Rates returns a fresh snapshot for base.
func (o *ConversionOracle) Rates(ctx context.Context, base string) (*models.ExchangeRateSnapshot, error) {
	base, err := models.NormalizeCurrency(base)
	if err != nil {
		return nil, err
	}

	snap, err := o.cache.Get(ctx, base)
	if err != nil {
		logger.Log.Warnw("rate cache read failed", "base", base, "error", err)
	}
	if snap.IsFresh(o.now(), o.cfg.RateTTL) {
		return snap, nil
	}

	rates, err := o.fetch(ctx, base)
	if err != nil {
		return nil, err
	}

	snap = &models.ExchangeRateSnapshot{Base: base, Rates: rates, FetchedAt: o.now().UTC()}
	if err := o.cache.Set(ctx, snap); err != nil {
		logger.Log.Warnw("rate cache write failed", "base", base, "error", err)
	}
	return snap, nil
}

func (o *ConversionOracle) fetch(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	var rates map[string]decimal.Decimal
	op := func() error {
		res, err := o.breaker.Execute(func() (interface{}, error) {
			return o.source.FetchRates(ctx, base)
		})
		switch {
		case err == nil:
			rates = res.(map[string]decimal.Decimal)
			return nil
		case errors.Is(err, models.ErrRateUnavailable),
			errors.Is(err, gobreaker.ErrOpenState),
			errors.Is(err, gobreaker.ErrTooManyRequests):
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), o.cfg.MaxRetries), ctx)
	err := backoff.RetryNotify(op, policy, func(err error, d time.Duration) {
		logger.Log.Warnw("rate fetch failed, retrying", "base", base, "backoff", d, "error", err)
	})
	if err == nil {
		return rates, nil
	}

	logger.Log.Errorw("rate fetch failed", "base", base, "error", err)
	if errors.Is(err, models.ErrRateUnavailable) {
		return nil, err
	}
	return nil, fmt.Errorf("%w: rate source: %v", models.ErrUpstreamUnavailable, err)
}

// Convert converts amount from one currency to another. Same-currency
// conversions never touch the rate source.
func (o *ConversionOracle) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (*models.Conversion, error) {
	from, err := models.NormalizeCurrency(from)
	if err != nil {
		return nil, err
	}
	to, err = models.NormalizeCurrency(to)
	if err != nil {
		return nil, err
	}

	if from == to {
		return &models.Conversion{
			Amount:          amount,
			From:            from,
			To:              to,
			Rate:            decimal.NewFromInt(1),
			ConvertedAmount: amount,
		}, nil
	}

	snap, err := o.Rates(ctx, from)
	if err != nil {
		return nil, err
	}
	rate, ok := snap.Rate(to)
	if !ok || !rate.IsPositive() {
		return nil, fmt.Errorf("%w: %s -> %s", models.ErrRateUnavailable, from, to)
	}

	return &models.Conversion{
		Amount:          amount,
		From:            from,
		To:              to,
		Rate:            rate,
		ConvertedAmount: amount.Mul(rate).Round(2),
	}, nil
}

// Fee returns the platform fee for amount, rounded to cents.
func (o *ConversionOracle) Fee(amount decimal.Decimal) decimal.Decimal {
	return o.FeeWithRate(amount, o.cfg.FeeRate)
}

// FeeRate is the configured transfer fee rate.
func (o *ConversionOracle) FeeRate() decimal.Decimal {
	return o.cfg.FeeRate
}

// FeeWithRate applies an explicit rate, used for withdrawals.
func (o *ConversionOracle) FeeWithRate(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Round(2)
}

// SupportedCurrencies lists the currency codes the platform accepts.
func (o *ConversionOracle) SupportedCurrencies() []string {
	return models.SupportedCurrencies()
}
