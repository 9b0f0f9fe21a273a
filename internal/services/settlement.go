package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sbilibin2017/gw-remit-wallet/internal/locker"
	"github.com/sbilibin2017/gw-remit-wallet/internal/logger"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
)

// ProcessSettlement settles one queued transfer. It is safe to run more than
// once for the same job: terminal or parked transactions are left alone and
// a recorded recipient credit is never applied twice.
func (s *TransactionService) ProcessSettlement(ctx context.Context, job models.SettlementJob) error {
	return s.locker.WithLock(ctx, locker.TransactionKey(job.TransactionID), func(ctx context.Context) error {
		tx, err := s.txs.GetByID(ctx, job.TransactionID)
		if err != nil {
			if errors.Is(err, models.ErrTransactionNotFound) {
				logger.Log.Warnw("settlement job for unknown transaction dropped", "transaction_id", job.TransactionID)
				return nil
			}
			return err
		}
		if tx.Status.IsTerminal() {
			logger.Log.Infow("settlement skipped, transaction already terminal",
				"transaction_id", tx.TransactionID, "status", tx.Status)
			return nil
		}
		if tx.Type != models.TypeSend {
			logger.Log.Warnw("settlement job for non-transfer dropped", "transaction_id", tx.TransactionID, "type", tx.Type)
			return nil
		}
		if tx.HasStep(models.StepManualReconciliation) {
			logger.Log.Warnw("settlement skipped, transaction awaits manual reconciliation", "transaction_id", tx.TransactionID)
			return nil
		}

		return s.settleSend(ctx, tx)
	})
}

// AbandonSettlement parks a transfer whose settlement kept failing, so it
// waits for manual reconciliation with its reservation intact.
func (s *TransactionService) AbandonSettlement(ctx context.Context, job models.SettlementJob, cause error) error {
	return s.locker.WithLock(ctx, locker.TransactionKey(job.TransactionID), func(ctx context.Context) error {
		tx, err := s.txs.GetByID(ctx, job.TransactionID)
		if err != nil {
			if errors.Is(err, models.ErrTransactionNotFound) {
				return nil
			}
			return err
		}
		if tx.Status.IsTerminal() {
			return nil
		}
		return s.park(ctx, tx.TransactionID, cause)
	})
}

// settleSend credits the recipient, then clears the sender's reservation. A
// failure before the credit is recorded by failReserved.
func (s *TransactionService) settleSend(ctx context.Context, tx *models.Transaction) error {
	if !tx.HasStep(models.StepRecipientCredited) {
		currency, amount := tx.CreditLeg()
		err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
			if err := s.ledger.Settle(ctx, tx.Receiver.WalletID, currency, amount, models.SettleCredit); err != nil {
				return err
			}
			tx.AddStep(models.StepRecipientCredited,
				fmt.Sprintf("Recipient credited %s %s", amount.StringFixed(2), currency), s.now())
			return s.txs.UpdateState(ctx, tx, models.StatusProcessing)
		})
		if err != nil {
			logger.Log.Errorw("recipient credit failed", "transaction_id", tx.TransactionID, "error", err)
			fresh, getErr := s.txs.GetByID(ctx, tx.TransactionID)
			if getErr != nil {
				return getErr
			}
			*tx = *fresh
			return s.failReserved(ctx, tx, err.Error())
		}
	}

	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.ledger.Settle(ctx, tx.Sender.WalletID, tx.Currency, tx.TotalAmount, models.SettleDebit); err != nil {
			return err
		}
		if err := tx.Transition(models.StatusCompleted, "Transfer settled", s.now()); err != nil {
			return err
		}
		if err := s.txs.UpdateState(ctx, tx, models.StatusProcessing); err != nil {
			return err
		}
		return s.record(ctx, tx)
	})
	if err != nil {
		if errors.Is(err, models.ErrInvariantViolation) {
			return s.park(ctx, tx.TransactionID, err)
		}
		return err
	}

	logger.Log.Infow("transfer settled", "transaction_id", tx.TransactionID, "amount", tx.Amount, "currency", tx.Currency)
	return nil
}

// ConfirmWithdrawal applies the payout provider's verdict. Terminal
// withdrawals are returned unchanged.
func (s *TransactionService) ConfirmWithdrawal(ctx context.Context, txID, bankTxID string, succeeded bool, reason string) (*models.Transaction, error) {
	var out *models.Transaction
	err := s.locker.WithLock(ctx, locker.TransactionKey(txID), func(ctx context.Context) error {
		tx, err := s.txs.GetByID(ctx, txID)
		if err != nil {
			return err
		}
		if tx.Type != models.TypeWithdrawal {
			return fmt.Errorf("%w: %s is not a withdrawal", models.ErrInvalidRequest, txID)
		}
		if tx.Status.IsTerminal() {
			out = tx
			return nil
		}
		if tx.HasStep(models.StepManualReconciliation) {
			return fmt.Errorf("%w: %s awaits manual reconciliation", models.ErrInvalidTransition, txID)
		}

		if !succeeded {
			if reason == "" {
				reason = "payout rejected by bank"
			}
			if err := s.failReserved(ctx, tx, reason); err != nil {
				return err
			}
			out = tx
			return nil
		}

		expected := tx.Status
		err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
			if err := s.ledger.Settle(ctx, tx.Sender.WalletID, tx.Currency, tx.TotalAmount, models.SettleDebit); err != nil {
				return err
			}
			tx.ExternalReference.BankTransactionID = bankTxID
			if err := tx.Transition(models.StatusCompleted, "Payout confirmed", s.now()); err != nil {
				return err
			}
			if err := s.txs.UpdateState(ctx, tx, expected); err != nil {
				return err
			}
			return s.record(ctx, tx)
		})
		if err != nil {
			if errors.Is(err, models.ErrInvariantViolation) {
				if parkErr := s.park(ctx, txID, err); parkErr != nil {
					return parkErr
				}
			}
			return err
		}
		out = tx
		logger.Log.Infow("withdrawal completed", "transaction_id", txID, "bank_transaction_id", bankTxID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// failReserved returns the reservation to the sender, marks tx failed and
// records the failure event. A failed release parks the transaction for manual
// reconciliation.
func (s *TransactionService) failReserved(ctx context.Context, tx *models.Transaction, reason string) error {
	expected := tx.Status
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		if holdsReservation(tx) {
			if err := s.ledger.Release(ctx, tx.Sender.WalletID, tx.Currency, tx.TotalAmount); err != nil {
				return err
			}
		}
		tx.RetryCount++
		tx.FailureReason = reason
		if err := tx.Transition(models.StatusFailed, reason, s.now()); err != nil {
			return err
		}
		if err := s.txs.UpdateState(ctx, tx, expected); err != nil {
			return err
		}
		return s.record(ctx, tx)
	})
	if err != nil {
		if errors.Is(err, models.ErrInvariantViolation) {
			if parkErr := s.park(ctx, tx.TransactionID, err); parkErr != nil {
				return parkErr
			}
		}
		return err
	}

	logger.Log.Infow("transaction failed", "transaction_id", tx.TransactionID, "reason", reason)
	return nil
}

// park leaves the transaction in its current status with a manual
// reconciliation step so no worker touches it again.
func (s *TransactionService) park(ctx context.Context, txID string, cause error) error {
	logger.Log.Errorw("transaction parked",
		"transaction_id", txID, "manual_reconciliation", true, "error", cause)

	tx, err := s.txs.GetByID(ctx, txID)
	if err != nil {
		return err
	}
	if tx.HasStep(models.StepManualReconciliation) {
		return nil
	}
	tx.AddStep(models.StepManualReconciliation, models.NoteManualReconciliation, s.now())
	return s.txs.UpdateState(ctx, tx, tx.Status)
}
