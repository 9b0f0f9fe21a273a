package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-remit-wallet/internal/logger"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// WalletStore persists wallets.
type WalletStore interface {
	Create(ctx context.Context, w *models.Wallet) (bool, error)                // Inserts w unless the user already has a wallet
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) // Returns ErrWalletNotFound when missing
	SetPIN(ctx context.Context, walletID uuid.UUID, pinHash string) error      // Stores the bcrypt hash of the PIN
	SetActive(ctx context.Context, walletID uuid.UUID, active bool) error      // Activates or deactivates the wallet
}

// BalanceReader reads wallet balances.
type BalanceReader interface {
	GetBalance(ctx context.Context, walletID uuid.UUID, currency string) (models.Balance, error) // Returns one slot
	Balances(ctx context.Context, walletID uuid.UUID) (map[string]models.Balance, error)         // Returns every slot
}

// WalletService manages wallet lifecycle and read models.
type WalletService struct {
	store           WalletStore
	balances        BalanceReader
	primaryCurrency string
	seedCurrencies  []string
	now             func() time.Time
}

// NewWalletService creates a new WalletService.
func NewWalletService(store WalletStore, balances BalanceReader, primaryCurrency string, seedCurrencies []string) *WalletService {
	if len(seedCurrencies) == 0 {
		seedCurrencies = models.SeedCurrencies
	}
	return &WalletService{
		store:           store,
		balances:        balances,
		primaryCurrency: primaryCurrency,
		seedCurrencies:  seedCurrencies,
		now:             time.Now,
	}
}

// CreateWallet creates the user's wallet with empty seed balances. A second
// call returns the existing wallet.
func (s *WalletService) CreateWallet(ctx context.Context, userID uuid.UUID, primaryCurrency string) (*models.Wallet, error) {
	if primaryCurrency == "" {
		primaryCurrency = s.primaryCurrency
	}
	primary, err := models.NormalizeCurrency(primaryCurrency)
	if err != nil {
		return nil, err
	}

	seed := s.seedCurrencies
	if !containsCurrency(seed, primary) {
		seed = append(append([]string{}, seed...), primary)
	}

	w := models.NewWallet(userID, primary, seed, s.now())
	created, err := s.store.Create(ctx, w)
	if err != nil {
		logger.Log.Errorw("failed to create wallet", "user_id", userID, "error", err)
		return nil, err
	}
	if created {
		logger.Log.Infow("wallet created", "user_id", userID, "wallet_id", w.WalletID, "primary_currency", primary)
	}
	return s.GetWallet(ctx, userID)
}

// GetWallet returns the user's wallet with all balances.
func (s *WalletService) GetWallet(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	w, err := s.store.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	balances, err := s.balances.Balances(ctx, w.WalletID)
	if err != nil {
		return nil, err
	}
	w.Balances = balances
	return w, nil
}

// GetBalance returns one currency slot of the user's wallet.
func (s *WalletService) GetBalance(ctx context.Context, userID uuid.UUID, currency string) (*models.BalanceResponse, error) {
	currency, err := models.NormalizeCurrency(currency)
	if err != nil {
		return nil, err
	}
	w, err := s.store.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	b, err := s.balances.GetBalance(ctx, w.WalletID, currency)
	if err != nil {
		return nil, err
	}
	return &models.BalanceResponse{WalletID: w.WalletID.String(), Balance: b}, nil
}

// SetPIN stores a bcrypt hash of a 4 to 6 digit PIN.
func (s *WalletService) SetPIN(ctx context.Context, userID uuid.UUID, pin string) error {
	if len(pin) < 4 || len(pin) > 6 || strings.Trim(pin, "0123456789") != "" {
		return fmt.Errorf("%w: pin must be 4 to 6 digits", models.ErrInvalidRequest)
	}
	w, err := s.store.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash pin", "err", err)
		return err
	}
	if err := s.store.SetPIN(ctx, w.WalletID, string(hash)); err != nil {
		return err
	}
	logger.Log.Infow("wallet pin updated", "user_id", userID, "wallet_id", w.WalletID)
	return nil
}

// Deactivate blocks further reservations and credits on the wallet.
func (s *WalletService) Deactivate(ctx context.Context, userID uuid.UUID) error {
	w, err := s.store.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.store.SetActive(ctx, w.WalletID, false); err != nil {
		return err
	}
	logger.Log.Infow("wallet deactivated", "user_id", userID, "wallet_id", w.WalletID)
	return nil
}

func containsCurrency(list []string, code string) bool {
	for _, c := range list {
		if c == code {
			return true
		}
	}
	return false
}
