package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-remit-wallet/internal/locker"
	"github.com/sbilibin2017/gw-remit-wallet/internal/logger"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
	"github.com/shopspring/decimal"
)

// RequestDeposit opens a payment intent and records a pending deposit.
func (s *TransactionService) RequestDeposit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, currency, customerRef string) (*models.DepositResponse, error) {
	if err := models.ValidateAmount(amount); err != nil {
		return nil, err
	}
	currency, err := models.NormalizeCurrency(currency)
	if err != nil {
		return nil, err
	}
	wallet, err := s.activeWallet(ctx, userID)
	if err != nil {
		return nil, err
	}

	intent, err := s.gateway.CreatePaymentIntent(ctx, amount, currency, customerRef)
	if err != nil {
		logger.Log.Errorw("failed to create payment intent", "user_id", userID, "amount", amount, "currency", currency, "error", err)
		return nil, err
	}

	receiver := models.Party{UserID: userID, WalletID: wallet.WalletID}
	if user, err := s.users.GetByID(ctx, userID); err == nil {
		receiver = user.Party(wallet.WalletID)
	}

	tx := models.NewTransaction(models.TypeDeposit, models.StatusPending, amount, currency, s.now())
	tx.Receiver = receiver
	tx.Sender = models.Party{Name: "Card payment"}
	tx.PaymentMethod = "card"
	tx.ExternalReference.PaymentIntentID = intent.ID
	tx.DefaultDescription()

	if err := s.txs.Create(ctx, tx); err != nil {
		return nil, err
	}

	logger.Log.Infow("deposit requested", "transaction_id", tx.TransactionID, "user_id", userID, "payment_intent_id", intent.ID)
	return &models.DepositResponse{Transaction: tx, ClientSecret: intent.ClientSecret}, nil
}

// ConfirmDeposit asks the gateway for the intent outcome and applies it.
func (s *TransactionService) ConfirmDeposit(ctx context.Context, txID string, userID uuid.UUID) (*models.Transaction, error) {
	authorize := func(tx *models.Transaction) error {
		if tx.Receiver.UserID != userID {
			return fmt.Errorf("%w: %s", models.ErrForbidden, txID)
		}
		return nil
	}
	return s.resolveDeposit(ctx, txID, authorize, func(ctx context.Context, tx *models.Transaction) (models.PaymentStatus, error) {
		return s.gateway.ConfirmPayment(ctx, tx.ExternalReference.PaymentIntentID)
	})
}

// HandleDepositCallback applies an outcome delivered by the gateway webhook.
func (s *TransactionService) HandleDepositCallback(ctx context.Context, txID string, succeeded bool) (*models.Transaction, error) {
	return s.resolveDeposit(ctx, txID, nil, func(context.Context, *models.Transaction) (models.PaymentStatus, error) {
		if succeeded {
			return models.PaymentSucceeded, nil
		}
		return models.PaymentFailed, nil
	})
}

func (s *TransactionService) resolveDeposit(
	ctx context.Context,
	txID string,
	authorize func(tx *models.Transaction) error,
	outcome func(ctx context.Context, tx *models.Transaction) (models.PaymentStatus, error),
) (*models.Transaction, error) {
	var (
		out     *models.Transaction
		changed bool
	)
	err := s.locker.WithLock(ctx, locker.TransactionKey(txID), func(ctx context.Context) error {
		tx, err := s.txs.GetByID(ctx, txID)
		if err != nil {
			return err
		}
		if tx.Type != models.TypeDeposit {
			return fmt.Errorf("%w: %s is not a deposit", models.ErrInvalidRequest, txID)
		}
		if authorize != nil {
			if err := authorize(tx); err != nil {
				return err
			}
		}
		if tx.Status.IsTerminal() {
			out = tx
			return nil
		}
		status, err := outcome(ctx, tx)
		if err != nil {
			return err
		}

		expected := tx.Status
		switch status {
		case models.PaymentSucceeded:
			err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
				if err := s.ledger.Credit(ctx, tx.Receiver.WalletID, tx.Currency, tx.Amount); err != nil {
					return err
				}
				if err := tx.Transition(models.StatusCompleted, "Payment received", s.now()); err != nil {
					return err
				}
				if err := s.txs.UpdateState(ctx, tx, expected); err != nil {
					return err
				}
				return s.record(ctx, tx)
			})
		case models.PaymentFailed:
			err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
				tx.FailureReason = "payment failed"
				if err := tx.Transition(models.StatusFailed, tx.FailureReason, s.now()); err != nil {
					return err
				}
				if err := s.txs.UpdateState(ctx, tx, expected); err != nil {
					return err
				}
				return s.record(ctx, tx)
			})
		default:
			if tx.Status == models.StatusPending {
				if err = tx.Transition(models.StatusProcessing, "Payment processing", s.now()); err == nil {
					err = s.txs.UpdateState(ctx, tx, expected)
				}
			}
		}
		if err != nil {
			return err
		}
		out, changed = tx, true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		logger.Log.Infow("deposit resolved", "transaction_id", txID, "status", out.Status)
	}
	return out, nil
}
