package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-remit-wallet/internal/logger"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
	"github.com/shopspring/decimal"
)

// LimitWalletStore reads and persists per-wallet spend counters.
type LimitWalletStore interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) // Returns ErrWalletNotFound when missing
	SaveLimitCounters(ctx context.Context, w *models.Wallet) error             // Persists spent counters and the reset date
}

// LimitUsage aggregates the limit amounts of counted transactions.
type LimitUsage interface {
	SumLimitAmount(ctx context.Context, userID uuid.UUID, txType models.TransactionType, since time.Time) (decimal.Decimal, error) // Sums processing and completed transactions since a point in time
}

// Converter turns an amount into another currency.
type Converter interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (*models.Conversion, error) // Converts using current rates
}

// LimitPolicy enforces per-user daily and monthly ceilings denominated in the
// wallet's primary currency. Callers must hold locker.LimitsKey(userID) from
// the check until the transaction is persisted.
type LimitPolicy struct {
	wallets   LimitWalletStore
	usage     LimitUsage
	converter Converter
	now       func() time.Time
}

func NewLimitPolicy(wallets LimitWalletStore, usage LimitUsage, converter Converter) *LimitPolicy {
	return &LimitPolicy{wallets: wallets, usage: usage, converter: converter, now: time.Now}
}

// CheckAndReserveLimit decides whether amount (fee included) fits under the
// user's ceilings for txType. On success the wallet counters are advanced and
// the decision carries the amount to store on the transaction.
func (p *LimitPolicy) CheckAndReserveLimit(
	ctx context.Context,
	userID uuid.UUID,
	amount decimal.Decimal,
	currency string,
	txType models.TransactionType,
) (*models.Decision, error) {
	w, err := p.wallets.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	limitAmount := amount
	if currency != w.PrimaryCurrency {
		conv, err := p.converter.Convert(ctx, amount, currency, w.PrimaryCurrency)
		if err != nil {
			return nil, err
		}
		limitAmount = conv.ConvertedAmount
	}

	now := p.now().UTC()
	reset := w.ResetCountersIfNeeded(now)

	daily, err := p.usage.SumLimitAmount(ctx, userID, txType, models.DayStart(now))
	if err != nil {
		return nil, err
	}
	monthly, err := p.usage.SumLimitAmount(ctx, userID, txType, models.MonthStart(now))
	if err != nil {
		return nil, err
	}

	dailyCeiling, monthlyCeiling := w.Limits(txType)
	decision := &models.Decision{
		LimitAmount:      limitAmount,
		LimitCurrency:    w.PrimaryCurrency,
		RemainingDaily:   decimal.Max(dailyCeiling.Sub(daily), decimal.Zero),
		RemainingMonthly: decimal.Max(monthlyCeiling.Sub(monthly), decimal.Zero),
	}

	switch {
	case daily.Add(limitAmount).GreaterThan(dailyCeiling):
		err = fmt.Errorf("%w: daily %s limit %s %s, remaining %s",
			models.ErrLimitExceeded, txType, dailyCeiling.StringFixed(2), w.PrimaryCurrency, decision.RemainingDaily.StringFixed(2))
	case monthly.Add(limitAmount).GreaterThan(monthlyCeiling):
		err = fmt.Errorf("%w: monthly %s limit %s %s, remaining %s",
			models.ErrLimitExceeded, txType, monthlyCeiling.StringFixed(2), w.PrimaryCurrency, decision.RemainingMonthly.StringFixed(2))
	}
	if err != nil {
		if reset {
			if saveErr := p.wallets.SaveLimitCounters(ctx, w); saveErr != nil {
				logger.Log.Errorw("failed to persist counter reset", "user_id", userID, "error", saveErr)
			}
		}
		logger.Log.Infow("limit check rejected", "user_id", userID, "type", txType, "amount", limitAmount, "error", err)
		return decision, err
	}

	w.DailySpent = w.DailySpent.Add(limitAmount)
	w.MonthlySpent = w.MonthlySpent.Add(limitAmount)
	if err := p.wallets.SaveLimitCounters(ctx, w); err != nil {
		return nil, err
	}

	decision.Allow = true
	decision.RemainingDaily = decision.RemainingDaily.Sub(limitAmount)
	decision.RemainingMonthly = decision.RemainingMonthly.Sub(limitAmount)
	return decision, nil
}
