package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWalletRepository_Create(t *testing.T) {
	tests := []struct {
		name        string
		rows        int64
		wantCreated bool
	}{
		{name: "new wallet", rows: 1, wantCreated: true},
		{name: "user already has a wallet", rows: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			txm := NewTxManager(db)
			repo := NewWalletRepository(db, txm, GetTxFromContext)

			w := &models.Wallet{
				WalletID:        uuid.New(),
				UserID:          uuid.New(),
				PrimaryCurrency: models.USD,
				DailyLimit:      decimal.NewFromInt(1000),
				LastResetDate:   time.Now(),
				IsActive:        true,
				Balances:        map[string]models.Balance{models.USD: {}},
			}

			mock.ExpectBegin()
			mock.ExpectExec("INSERT INTO wallets").WillReturnResult(sqlmock.NewResult(0, tt.rows))
			if tt.rows > 0 {
				mock.ExpectExec("INSERT INTO wallet_balances").
					WithArgs(w.WalletID, models.USD).
					WillReturnResult(sqlmock.NewResult(0, 1))
			}
			mock.ExpectCommit()

			created, err := repo.Create(context.Background(), w)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantCreated, created)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWalletRepository_CreateRollsBackOnBalanceError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWalletRepository(db, NewTxManager(db), GetTxFromContext)

	w := &models.Wallet{
		WalletID: uuid.New(),
		UserID:   uuid.New(),
		Balances: map[string]models.Balance{models.EUR: {}},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO wallets").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO wallet_balances").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	created, err := repo.Create(context.Background(), w)
	assert.EqualError(t, err, "disk full")
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepository_SetActive(t *testing.T) {
	tests := []struct {
		name    string
		rows    int64
		wantErr error
	}{
		{name: "updated", rows: 1},
		{name: "unknown wallet", rows: 0, wantErr: models.ErrWalletNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewWalletRepository(db, NewTxManager(db), GetTxFromContext)
			id := uuid.New()

			mock.ExpectExec("UPDATE wallets SET is_active").
				WithArgs(id, false).
				WillReturnResult(sqlmock.NewResult(0, tt.rows))

			err := repo.SetActive(context.Background(), id, false)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWalletRepository_SetPINUsesAmbientTx(t *testing.T) {
	db, mock := newMockDB(t)
	txm := NewTxManager(db)
	repo := NewWalletRepository(db, txm, GetTxFromContext)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE wallets SET pin_hash").
		WithArgs(id, "hash").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := txm.WithinTx(context.Background(), func(ctx context.Context) error {
		return repo.SetPIN(ctx, id, "hash")
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepository_GetByUserID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWalletRepository(db, NewTxManager(db), GetTxFromContext)
	id := uuid.New()

	mock.ExpectQuery("FROM wallets WHERE user_id").WithArgs(id).WillReturnRows(sqlmock.NewRows([]string{"wallet_id"}))

	_, err := repo.GetByUserID(context.Background(), id)
	assert.ErrorIs(t, err, models.ErrWalletNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
