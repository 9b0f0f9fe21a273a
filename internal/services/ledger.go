package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-remit-wallet/internal/locker"
	"github.com/sbilibin2017/gw-remit-wallet/internal/logger"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
	"github.com/shopspring/decimal"
)

// BalanceStore persists wallet currency slots.
type BalanceStore interface {
	GetBalance(ctx context.Context, walletID uuid.UUID, currency string) (models.Balance, error)                                      // Returns the slot or an empty one
	ListBalances(ctx context.Context, walletID uuid.UUID) (map[string]models.Balance, error)                                          // Returns every slot of a wallet
	MutateBalance(ctx context.Context, walletID uuid.UUID, currency string, fn func(b *models.Balance) error) (models.Balance, error) // Applies fn atomically
}

// WalletReader loads wallets.
type WalletReader interface {
	GetByID(ctx context.Context, walletID uuid.UUID) (*models.Wallet, error)   // Returns ErrWalletNotFound when missing
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) // Returns ErrWalletNotFound when missing
}

// LedgerService is the only writer of wallet balances. Every operation runs
// in a critical section keyed by (wallet, currency) and leaves the slot
// non-negative or changes nothing.
type LedgerService struct {
	store   BalanceStore
	wallets WalletReader
	locker  locker.Locker
}

func NewLedgerService(store BalanceStore, wallets WalletReader, l locker.Locker) *LedgerService {
	return &LedgerService{store: store, wallets: wallets, locker: l}
}

// GetBalance returns the slot, or an empty one for a currency never used.
func (s *LedgerService) GetBalance(ctx context.Context, walletID uuid.UUID, currency string) (models.Balance, error) {
	if _, err := s.wallets.GetByID(ctx, walletID); err != nil {
		return models.Balance{}, err
	}
	return s.store.GetBalance(ctx, walletID, currency)
}

// Balances returns every slot of the wallet.
func (s *LedgerService) Balances(ctx context.Context, walletID uuid.UUID) (map[string]models.Balance, error) {
	return s.store.ListBalances(ctx, walletID)
}

// Reserve moves amount from available to pending.
func (s *LedgerService) Reserve(ctx context.Context, walletID uuid.UUID, currency string, amount decimal.Decimal) error {
	return s.mutate(ctx, "reserve", walletID, currency, amount, true, func(b *models.Balance) error {
		if b.Available.LessThan(amount) {
			return fmt.Errorf("%w: available %s %s, required %s %s",
				models.ErrInsufficientFunds, b.Available.StringFixed(2), currency, amount.StringFixed(2), currency)
		}
		b.Available = b.Available.Sub(amount)
		b.Pending = b.Pending.Add(amount)
		return nil
	})
}

// Release moves amount back from pending to available. Pending below amount
// means the books are already wrong and is reported as an invariant violation.
func (s *LedgerService) Release(ctx context.Context, walletID uuid.UUID, currency string, amount decimal.Decimal) error {
	return s.mutate(ctx, "release", walletID, currency, amount, false, func(b *models.Balance) error {
		if b.Pending.LessThan(amount) {
			return fmt.Errorf("%w: release %s %s but pending is %s",
				models.ErrInvariantViolation, amount.StringFixed(2), currency, b.Pending.StringFixed(2))
		}
		b.Pending = b.Pending.Sub(amount)
		b.Available = b.Available.Add(amount)
		return nil
	})
}

// Settle applies one side of a transfer: the debit side clears the sender's
// pending reservation, the credit side adds to the recipient's available
// funds, creating the slot if needed.
func (s *LedgerService) Settle(ctx context.Context, walletID uuid.UUID, currency string, amount decimal.Decimal, side models.SettleSide) error {
	switch side {
	case models.SettleDebit:
		return s.mutate(ctx, "settle_debit", walletID, currency, amount, false, func(b *models.Balance) error {
			if b.Pending.LessThan(amount) {
				return fmt.Errorf("%w: settle %s %s but pending is %s",
					models.ErrInvariantViolation, amount.StringFixed(2), currency, b.Pending.StringFixed(2))
			}
			b.Pending = b.Pending.Sub(amount)
			return nil
		})
	case models.SettleCredit:
		return s.mutate(ctx, "settle_credit", walletID, currency, amount, true, func(b *models.Balance) error {
			b.Available = b.Available.Add(amount)
			return nil
		})
	}
	return fmt.Errorf("%w: unknown settle side %q", models.ErrInvalidRequest, side)
}

// Credit adds external funds to available.
func (s *LedgerService) Credit(ctx context.Context, walletID uuid.UUID, currency string, amount decimal.Decimal) error {
	return s.mutate(ctx, "credit", walletID, currency, amount, true, func(b *models.Balance) error {
		b.Available = b.Available.Add(amount)
		return nil
	})
}

func (s *LedgerService) mutate(
	ctx context.Context,
	op string,
	walletID uuid.UUID,
	currency string,
	amount decimal.Decimal,
	requireActive bool,
	apply func(b *models.Balance) error,
) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s %s", models.ErrInvalidAmount, op, amount)
	}

	w, err := s.wallets.GetByID(ctx, walletID)
	if err != nil {
		return err
	}
	if requireActive && !w.IsActive {
		return fmt.Errorf("%w: %s", models.ErrWalletInactive, walletID)
	}

	var after models.Balance
	err = s.locker.WithLock(ctx, locker.LedgerKey(walletID, currency), func(ctx context.Context) error {
		after, err = s.store.MutateBalance(ctx, walletID, currency, func(b *models.Balance) error {
			if err := apply(b); err != nil {
				return err
			}
			return b.Validate()
		})
		return err
	})
	if err != nil {
		if errors.Is(err, models.ErrInvariantViolation) {
			logger.Log.Errorw("ledger invariant violation",
				"op", op, "wallet_id", walletID, "currency", currency, "amount", amount,
				"manual_reconciliation", true, "error", err)
		} else {
			logger.Log.Infow("ledger operation rejected",
				"op", op, "wallet_id", walletID, "currency", currency, "amount", amount, "error", err)
		}
		return err
	}

	logger.Log.Infow("ledger operation applied",
		"op", op, "wallet_id", walletID, "currency", currency, "amount", amount,
		"available", after.Available, "pending", after.Pending)
	return nil
}
