package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
)

// BalanceRepository stores wallet currency slots in wallet_balances.
type BalanceRepository struct {
	db  *sqlx.DB
	txm *TxManager
}

func NewBalanceRepository(db *sqlx.DB, txm *TxManager) *BalanceRepository {
	return &BalanceRepository{db: db, txm: txm}
}

// GetBalance returns the slot, or an empty one when the currency was never used.
func (r *BalanceRepository) GetBalance(ctx context.Context, walletID uuid.UUID, currency string) (models.Balance, error) {
	const query = `
		SELECT currency, available, pending, frozen
		FROM wallet_balances
		WHERE wallet_id = $1 AND currency = $2
	`
	args := []any{walletID, currency}

	var b models.Balance
	err := sqlx.GetContext(ctx, executor(ctx, r.db, GetTxFromContext), &b, query, args...)
	logQuery(query, args, b, err)

	if errors.Is(err, sql.ErrNoRows) {
		return models.NewBalance(currency), nil
	}
	if err != nil {
		return models.Balance{}, err
	}
	return b, nil
}

// ListBalances returns every slot of a wallet keyed by currency.
func (r *BalanceRepository) ListBalances(ctx context.Context, walletID uuid.UUID) (map[string]models.Balance, error) {
	const query = `
		SELECT currency, available, pending, frozen
		FROM wallet_balances
		WHERE wallet_id = $1
		ORDER BY currency
	`
	args := []any{walletID}

	var rows []models.Balance
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, GetTxFromContext), &rows, query, args...)
	logQuery(query, args, len(rows), err)
	if err != nil {
		return nil, err
	}

	out := make(map[string]models.Balance, len(rows))
	for _, b := range rows {
		out[b.Currency] = b
	}
	return out, nil
}

// MutateBalance locks the slot row, applies fn and writes the result back
// together with the wallet's available snapshot, all in one transaction.
// A missing slot is created empty first. When fn fails nothing is written.
func (r *BalanceRepository) MutateBalance(
	ctx context.Context,
	walletID uuid.UUID,
	currency string,
	fn func(b *models.Balance) error,
) (models.Balance, error) {
	var result models.Balance

	err := r.txm.WithinTx(ctx, func(ctx context.Context) error {
		tx := GetTxFromContext(ctx)

		const ensureQuery = `
			INSERT INTO wallet_balances (wallet_id, currency)
			VALUES ($1, $2)
			ON CONFLICT (wallet_id, currency) DO NOTHING
		`
		args := []any{walletID, currency}
		_, err := tx.ExecContext(ctx, ensureQuery, args...)
		logQuery(ensureQuery, args, nil, err)
		if err != nil {
			return err
		}

		const lockQuery = `
			SELECT currency, available, pending, frozen
			FROM wallet_balances
			WHERE wallet_id = $1 AND currency = $2
			FOR UPDATE
		`
		var b models.Balance
		err = tx.GetContext(ctx, &b, lockQuery, args...)
		logQuery(lockQuery, args, b, err)
		if err != nil {
			return err
		}

		if err := fn(&b); err != nil {
			return err
		}

		const updateQuery = `
			UPDATE wallet_balances
			SET available = $3, pending = $4, frozen = $5, updated_at = NOW()
			WHERE wallet_id = $1 AND currency = $2
		`
		updArgs := []any{walletID, currency, b.Available, b.Pending, b.Frozen}
		_, err = tx.ExecContext(ctx, updateQuery, updArgs...)
		logQuery(updateQuery, updArgs, b, err)
		if err != nil {
			return err
		}

		const snapshotQuery = `
			UPDATE wallets
			SET total_available = (
				SELECT COALESCE(jsonb_object_agg(currency, available::text), '{}'::jsonb)
				FROM wallet_balances
				WHERE wallet_id = $1
			), updated_at = NOW()
			WHERE wallet_id = $1
		`
		snapArgs := []any{walletID}
		_, err = tx.ExecContext(ctx, snapshotQuery, snapArgs...)
		logQuery(snapshotQuery, snapArgs, nil, err)
		if err != nil {
			return err
		}

		result = b
		return nil
	})
	if err != nil {
		return models.Balance{}, err
	}
	return result, nil
}
