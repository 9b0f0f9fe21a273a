package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
)

const walletColumns = `
	wallet_id, user_id, primary_currency,
	daily_limit, monthly_limit, daily_withdraw_limit, monthly_withdraw_limit,
	daily_spent, monthly_spent, last_reset_date, is_active, pin_hash,
	total_available, created_at, updated_at
`

// WalletRepository handles the wallets table.
type WalletRepository struct {
	db       *sqlx.DB
	txm      *TxManager
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewWalletRepository(db *sqlx.DB, txm *TxManager, txGetter func(ctx context.Context) *sqlx.Tx) *WalletRepository {
	return &WalletRepository{db: db, txm: txm, txGetter: txGetter}
}

// Create inserts the wallet and its seed balance rows. It reports false when
// the user already owns a wallet.
func (r *WalletRepository) Create(ctx context.Context, w *models.Wallet) (bool, error) {
	created := false

	err := r.txm.WithinTx(ctx, func(ctx context.Context) error {
		ex := executor(ctx, r.db, r.txGetter)

		const query = `
			INSERT INTO wallets (
				wallet_id, user_id, primary_currency,
				daily_limit, monthly_limit, daily_withdraw_limit, monthly_withdraw_limit,
				daily_spent, monthly_spent, last_reset_date, is_active, total_available,
				created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			ON CONFLICT (user_id) DO NOTHING
		`
		args := []any{
			w.WalletID, w.UserID, w.PrimaryCurrency,
			w.DailyLimit, w.MonthlyLimit, w.DailyWithdrawLimit, w.MonthlyWithdrawLimit,
			w.DailySpent, w.MonthlySpent, w.LastResetDate, w.IsActive, w.TotalAvailable,
			w.CreatedAt, w.UpdatedAt,
		}
		res, err := ex.ExecContext(ctx, query, args...)
		var rows int64
		if res != nil {
			rows, _ = res.RowsAffected()
		}
		logQuery(query, args, rows, err)
		if err != nil {
			return err
		}
		if rows == 0 {
			return nil
		}

		const balanceQuery = `
			INSERT INTO wallet_balances (wallet_id, currency)
			VALUES ($1, $2)
			ON CONFLICT (wallet_id, currency) DO NOTHING
		`
		for currency := range w.Balances {
			bArgs := []any{w.WalletID, currency}
			_, err := ex.ExecContext(ctx, balanceQuery, bArgs...)
			logQuery(balanceQuery, bArgs, nil, err)
			if err != nil {
				return err
			}
		}

		created = true
		return nil
	})
	return created, err
}

// GetByUserID returns the wallet owned by userID.
func (r *WalletRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	return r.getOne(ctx, `SELECT `+walletColumns+` FROM wallets WHERE user_id = $1`, userID)
}

// GetByID returns the wallet with walletID.
func (r *WalletRepository) GetByID(ctx context.Context, walletID uuid.UUID) (*models.Wallet, error) {
	return r.getOne(ctx, `SELECT `+walletColumns+` FROM wallets WHERE wallet_id = $1`, walletID)
}

func (r *WalletRepository) getOne(ctx context.Context, query string, id uuid.UUID) (*models.Wallet, error) {
	var w models.Wallet
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &w, query, id)
	logQuery(query, []any{id}, w.WalletID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", models.ErrWalletNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// SaveLimitCounters persists the spend counters and their reset date.
func (r *WalletRepository) SaveLimitCounters(ctx context.Context, w *models.Wallet) error {
	const query = `
		UPDATE wallets
		SET daily_spent = $2, monthly_spent = $3, last_reset_date = $4, updated_at = NOW()
		WHERE wallet_id = $1
	`
	return r.exec(ctx, query, w.WalletID, w.DailySpent, w.MonthlySpent, w.LastResetDate)
}

// SetPIN stores the bcrypt hash of the wallet PIN.
func (r *WalletRepository) SetPIN(ctx context.Context, walletID uuid.UUID, pinHash string) error {
	const query = `UPDATE wallets SET pin_hash = $2, updated_at = NOW() WHERE wallet_id = $1`
	return r.exec(ctx, query, walletID, pinHash)
}

// SetActive activates or deactivates the wallet.
func (r *WalletRepository) SetActive(ctx context.Context, walletID uuid.UUID, active bool) error {
	const query = `UPDATE wallets SET is_active = $2, updated_at = NOW() WHERE wallet_id = $1`
	return r.exec(ctx, query, walletID, active)
}

func (r *WalletRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	var rows int64
	if res != nil {
		rows, _ = res.RowsAffected()
	}
	logQuery(query, args, rows, err)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: %v", models.ErrWalletNotFound, args[0])
	}
	return nil
}
