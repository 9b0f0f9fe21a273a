package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gowebpki/jcs"
	"github.com/sbilibin2017/gw-remit-wallet/internal/locker"
	"github.com/sbilibin2017/gw-remit-wallet/internal/logger"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -destination=mocks_test.go -package=services github.com/sbilibin2017/gw-remit-wallet/internal/services RateSource,KafkaWriter,Notifier,PaymentGateway,SettlementQueue

// TransactionStore persists transactions.
type TransactionStore interface {
	Create(ctx context.Context, t *models.Transaction) error                                         // Inserts a new transaction
	GetByID(ctx context.Context, id string) (*models.Transaction, error)                             // Returns ErrTransactionNotFound when missing
	GetByIdempotencyKey(ctx context.Context, key string) (*models.Transaction, error)                // Returns nil when no transaction uses key
	UpdateState(ctx context.Context, t *models.Transaction, expected models.TransactionStatus) error // Writes t only while the stored status equals expected
	List(ctx context.Context, f models.HistoryFilter) (*models.HistoryPage, error)                   // Returns one page of history
}

// UserDirectory resolves platform users.
type UserDirectory interface {
	FindByIdentifier(ctx context.Context, identifier string) (*models.UserRef, error) // Looks a user up by email or phone
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserRef, error)           // Looks a user up by id
}

// Ledger mutates wallet balances.
type Ledger interface {
	GetBalance(ctx context.Context, walletID uuid.UUID, currency string) (models.Balance, error)                           // Returns one slot
	Reserve(ctx context.Context, walletID uuid.UUID, currency string, amount decimal.Decimal) error                        // Moves available to pending
	Release(ctx context.Context, walletID uuid.UUID, currency string, amount decimal.Decimal) error                        // Moves pending back to available
	Settle(ctx context.Context, walletID uuid.UUID, currency string, amount decimal.Decimal, side models.SettleSide) error // Applies one side of a transfer
	Credit(ctx context.Context, walletID uuid.UUID, currency string, amount decimal.Decimal) error                         // Adds external funds
}

// LimitChecker enforces spend ceilings.
type LimitChecker interface {
	CheckAndReserveLimit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, currency string, txType models.TransactionType) (*models.Decision, error) // Checks and advances counters
}

// RateOracle converts currencies and prices fees.
type RateOracle interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (*models.Conversion, error) // Converts using current rates
	Fee(amount decimal.Decimal) decimal.Decimal                                                       // Transfer fee for amount
	FeeRate() decimal.Decimal                                                                         // Configured transfer fee rate
	FeeWithRate(amount, rate decimal.Decimal) decimal.Decimal                                         // Fee at an explicit rate
}

// PaymentGateway collects card deposits.
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, amount decimal.Decimal, currency, customerRef string) (*models.PaymentIntent, error) // Opens a payment intent
	ConfirmPayment(ctx context.Context, intentID string) (models.PaymentStatus, error)                                            // Returns the intent outcome
}

// SettlementQueue hands send settlement to background workers.
type SettlementQueue interface {
	Enqueue(ctx context.Context, job models.SettlementJob) error // Schedules one settlement
}

// Transactor runs fn inside one storage transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error // Commits when fn returns nil
}

// TransactionDeps groups the collaborators of TransactionService.
type TransactionDeps struct {
	Transactions TransactionStore
	Wallets      WalletReader
	Users        UserDirectory
	Ledger       Ledger
	Limits       LimitChecker
	Oracle       RateOracle
	Gateway      PaymentGateway
	Outbox       Outbox
	Locker       locker.Locker
	Transactor   Transactor
	Queue        SettlementQueue
}

// TransactionConfig holds the tunables of TransactionService.
type TransactionConfig struct {
	WithdrawalFeeRate decimal.Decimal
	CancelWindow      time.Duration
}

// TransactionService drives the transaction state machine.
type TransactionService struct {
	txs        TransactionStore
	wallets    WalletReader
	users      UserDirectory
	ledger     Ledger
	limits     LimitChecker
	oracle     RateOracle
	gateway    PaymentGateway
	outbox     Outbox
	locker     locker.Locker
	transactor Transactor
	queue      SettlementQueue
	cfg        TransactionConfig
	now        func() time.Time
}

func NewTransactionService(deps TransactionDeps, cfg TransactionConfig) *TransactionService {
	if cfg.CancelWindow <= 0 {
		cfg.CancelWindow = 24 * time.Hour
	}
	return &TransactionService{
		txs:        deps.Transactions,
		wallets:    deps.Wallets,
		users:      deps.Users,
		ledger:     deps.Ledger,
		limits:     deps.Limits,
		oracle:     deps.Oracle,
		gateway:    deps.Gateway,
		outbox:     deps.Outbox,
		locker:     deps.Locker,
		transactor: deps.Transactor,
		queue:      deps.Queue,
		cfg:        cfg,
		now:        time.Now,
	}
}

// SetQueue attaches the settlement queue. Workers consume through
// ProcessSettlement, so the queue is usually built after the service.
func (s *TransactionService) SetQueue(q SettlementQueue) {
	s.queue = q
}

type sendFingerprint struct {
	SenderID       string `json:"sender_id"`
	Recipient      string `json:"recipient"`
	Amount         string `json:"amount"`
	Currency       string `json:"currency"`
	TargetCurrency string `json:"target_currency"`
	Description    string `json:"description"`
}

// SendMoney validates and reserves a wallet-to-wallet transfer, then hands it
// to the settlement queue. The returned snapshot is in processing.
func (s *TransactionService) SendMoney(ctx context.Context, order models.SendOrder) (*models.Transaction, error) {
	if err := models.ValidateAmount(order.Amount); err != nil {
		return nil, err
	}
	currency, err := models.NormalizeCurrency(order.Currency)
	if err != nil {
		return nil, err
	}
	target := currency
	if order.TargetCurrency != "" {
		if target, err = models.NormalizeCurrency(order.TargetCurrency); err != nil {
			return nil, err
		}
	}

	idemKey, hash, err := idempotency(order.SenderID, order.IdempotencyKey, sendFingerprint{
		SenderID:       order.SenderID.String(),
		Recipient:      order.RecipientIdentifier,
		Amount:         order.Amount.StringFixed(2),
		Currency:       currency,
		TargetCurrency: target,
		Description:    order.Description,
	})
	if err != nil {
		return nil, err
	}
	if tx, err := s.replay(ctx, idemKey, hash); tx != nil || err != nil {
		return tx, err
	}

	sender, err := s.approvedUser(ctx, order.SenderID)
	if err != nil {
		return nil, err
	}
	recipient, err := s.users.FindByIdentifier(ctx, order.RecipientIdentifier)
	if err != nil {
		return nil, err
	}
	if recipient.UserID == sender.UserID {
		return nil, fmt.Errorf("%w: cannot send money to yourself", models.ErrInvalidRequest)
	}

	senderWallet, err := s.activeWallet(ctx, sender.UserID)
	if err != nil {
		return nil, err
	}
	recipientWallet, err := s.wallets.GetByUserID(ctx, recipient.UserID)
	if err != nil {
		if errors.Is(err, models.ErrWalletNotFound) {
			return nil, fmt.Errorf("%w: recipient has no wallet", models.ErrRecipientNotFound)
		}
		return nil, err
	}
	if !recipientWallet.IsActive {
		return nil, fmt.Errorf("%w: recipient wallet", models.ErrWalletInactive)
	}
	if err := checkPIN(senderWallet, order.PIN); err != nil {
		return nil, err
	}

	now := s.now()
	fee := s.oracle.Fee(order.Amount)
	tx := models.NewTransaction(models.TypeSend, models.StatusProcessing, order.Amount, currency, now)
	tx.Fee = models.FeeBreakdown{Amount: fee, Currency: currency, Type: models.FeeTypePercentage, Rate: s.oracle.FeeRate()}
	tx.TotalAmount = order.Amount.Add(fee)
	tx.Sender = sender.Party(senderWallet.WalletID)
	tx.Receiver = recipient.Party(recipientWallet.WalletID)
	tx.Description = order.Description
	tx.IdempotencyKey = idemKey
	tx.RequestHash = hash

	if target != currency {
		conv, err := s.oracle.Convert(ctx, order.Amount, currency, target)
		if err != nil {
			return nil, err
		}
		tx.ExchangeDetails = &models.ExchangeDetails{
			FromCurrency: currency,
			ToCurrency:   target,
			FromAmount:   order.Amount,
			ToAmount:     conv.ConvertedAmount,
			Rate:         conv.Rate,
		}
	}
	tx.DefaultDescription()

	if err := s.checkAvailable(ctx, senderWallet.WalletID, currency, tx.TotalAmount); err != nil {
		return nil, err
	}
	if err := s.reserveAndCreate(ctx, tx, sender.UserID, senderWallet.WalletID); err != nil {
		if idemKey != "" && errors.Is(err, models.ErrIdempotencyConflict) {
			return s.replay(ctx, idemKey, hash)
		}
		return nil, err
	}

	job := models.SettlementJob{TransactionID: tx.TransactionID, EnqueuedAt: s.now().UTC()}
	if err := s.queue.Enqueue(ctx, job); err != nil {
		logger.Log.Errorw("failed to enqueue settlement", "transaction_id", tx.TransactionID, "error", err)
		if failErr := s.failReserved(ctx, tx, "settlement queue unavailable"); failErr != nil {
			return nil, failErr
		}
		return nil, fmt.Errorf("%w: settlement queue: %v", models.ErrUpstreamUnavailable, err)
	}

	logger.Log.Infow("transfer accepted",
		"transaction_id", tx.TransactionID, "sender_id", sender.UserID, "recipient_id", recipient.UserID,
		"amount", tx.Amount, "currency", tx.Currency, "fee", fee)
	return tx, nil
}

type withdrawFingerprint struct {
	UserID        string `json:"user_id"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	AccountNumber string `json:"account_number"`
	RoutingNumber string `json:"routing_number"`
	BankName      string `json:"bank_name"`
	AccountHolder string `json:"account_holder"`
}

// Withdraw reserves funds for a bank payout. The payout outcome arrives
// through ConfirmWithdrawal.
func (s *TransactionService) Withdraw(ctx context.Context, order models.WithdrawOrder) (*models.Transaction, error) {
	if err := models.ValidateAmount(order.Amount); err != nil {
		return nil, err
	}
	currency, err := models.NormalizeCurrency(order.Currency)
	if err != nil {
		return nil, err
	}

	idemKey, hash, err := idempotency(order.UserID, order.IdempotencyKey, withdrawFingerprint{
		UserID:        order.UserID.String(),
		Amount:        order.Amount.StringFixed(2),
		Currency:      currency,
		AccountNumber: order.BankAccount.AccountNumber,
		RoutingNumber: order.BankAccount.RoutingNumber,
		BankName:      order.BankAccount.BankName,
		AccountHolder: order.BankAccount.AccountHolder,
	})
	if err != nil {
		return nil, err
	}
	if tx, err := s.replay(ctx, idemKey, hash); tx != nil || err != nil {
		return tx, err
	}

	user, err := s.approvedUser(ctx, order.UserID)
	if err != nil {
		return nil, err
	}
	wallet, err := s.activeWallet(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	if err := checkPIN(wallet, order.PIN); err != nil {
		return nil, err
	}

	fee := s.oracle.FeeWithRate(order.Amount, s.cfg.WithdrawalFeeRate)
	account := order.BankAccount
	tx := models.NewTransaction(models.TypeWithdrawal, models.StatusProcessing, order.Amount, currency, s.now())
	tx.Fee = models.FeeBreakdown{Amount: fee, Currency: currency, Type: models.FeeTypePercentage, Rate: s.cfg.WithdrawalFeeRate}
	tx.TotalAmount = order.Amount.Add(fee)
	tx.Sender = user.Party(wallet.WalletID)
	tx.Receiver = models.Party{Name: account.AccountHolder, BankAccount: &account}
	tx.PaymentMethod = "bank_transfer"
	tx.IdempotencyKey = idemKey
	tx.RequestHash = hash
	tx.DefaultDescription()

	if err := s.checkAvailable(ctx, wallet.WalletID, currency, tx.TotalAmount); err != nil {
		return nil, err
	}
	if err := s.reserveAndCreate(ctx, tx, user.UserID, wallet.WalletID); err != nil {
		if idemKey != "" && errors.Is(err, models.ErrIdempotencyConflict) {
			return s.replay(ctx, idemKey, hash)
		}
		return nil, err
	}

	logger.Log.Infow("withdrawal accepted",
		"transaction_id", tx.TransactionID, "user_id", user.UserID, "amount", tx.Amount, "currency", tx.Currency)
	return tx, nil
}

// Exchange converts funds between two currencies of the caller's wallet and
// completes synchronously.
func (s *TransactionService) Exchange(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, from, to string) (*models.Transaction, error) {
	if err := models.ValidateAmount(amount); err != nil {
		return nil, err
	}
	from, err := models.NormalizeCurrency(from)
	if err != nil {
		return nil, err
	}
	to, err = models.NormalizeCurrency(to)
	if err != nil {
		return nil, err
	}
	if from == to {
		return nil, fmt.Errorf("%w: source and target currency must differ", models.ErrInvalidRequest)
	}

	wallet, err := s.activeWallet(ctx, userID)
	if err != nil {
		return nil, err
	}
	conv, err := s.oracle.Convert(ctx, amount, from, to)
	if err != nil {
		return nil, err
	}

	party := models.Party{UserID: userID, WalletID: wallet.WalletID}
	if user, err := s.users.GetByID(ctx, userID); err == nil {
		party = user.Party(wallet.WalletID)
	}

	fee := s.oracle.Fee(amount)
	tx := models.NewTransaction(models.TypeCurrencyExchange, models.StatusProcessing, amount, from, s.now())
	tx.Fee = models.FeeBreakdown{Amount: fee, Currency: from, Type: models.FeeTypePercentage, Rate: s.oracle.FeeRate()}
	tx.TotalAmount = amount.Add(fee)
	tx.Sender = party
	tx.Receiver = party
	tx.ExchangeDetails = &models.ExchangeDetails{
		FromCurrency: from,
		ToCurrency:   to,
		FromAmount:   amount,
		ToAmount:     conv.ConvertedAmount,
		Rate:         conv.Rate,
	}
	tx.DefaultDescription()

	if err := s.checkAvailable(ctx, wallet.WalletID, from, tx.TotalAmount); err != nil {
		return nil, err
	}

	err = s.locker.WithLock(ctx, locker.TransactionKey(tx.TransactionID), func(ctx context.Context) error {
		err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
			if err := s.ledger.Reserve(ctx, wallet.WalletID, from, tx.TotalAmount); err != nil {
				return err
			}
			return s.txs.Create(ctx, tx)
		})
		if err != nil {
			return err
		}

		err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
			if err := s.ledger.Settle(ctx, wallet.WalletID, from, tx.TotalAmount, models.SettleDebit); err != nil {
				return err
			}
			if err := s.ledger.Settle(ctx, wallet.WalletID, to, conv.ConvertedAmount, models.SettleCredit); err != nil {
				return err
			}
			if err := tx.Transition(models.StatusCompleted, "Currency exchanged", s.now()); err != nil {
				return err
			}
			if err := s.txs.UpdateState(ctx, tx, models.StatusProcessing); err != nil {
				return err
			}
			return s.record(ctx, tx)
		})
		if err == nil {
			return nil
		}
		if errors.Is(err, models.ErrInvariantViolation) {
			if parkErr := s.park(ctx, tx.TransactionID, err); parkErr != nil {
				return parkErr
			}
			return err
		}
		fresh, getErr := s.txs.GetByID(ctx, tx.TransactionID)
		if getErr != nil {
			return getErr
		}
		*tx = *fresh
		if failErr := s.failReserved(ctx, tx, err.Error()); failErr != nil {
			return failErr
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Infow("currency exchanged",
		"transaction_id", tx.TransactionID, "user_id", userID, "from", from, "to", to,
		"amount", amount, "converted", conv.ConvertedAmount)
	return tx, nil
}

// Cancel cancels an open transaction on behalf of its initiator. Terminal
// transactions are returned unchanged.
func (s *TransactionService) Cancel(ctx context.Context, txID string, userID uuid.UUID) (*models.Transaction, error) {
	var (
		out     *models.Transaction
		changed bool
	)
	err := s.locker.WithLock(ctx, locker.TransactionKey(txID), func(ctx context.Context) error {
		tx, err := s.txs.GetByID(ctx, txID)
		if err != nil {
			return err
		}
		if initiatorID(tx) != userID {
			return fmt.Errorf("%w: only the initiator can cancel %s", models.ErrForbidden, txID)
		}
		if tx.Status.IsTerminal() {
			out = tx
			return nil
		}
		if !tx.CanBeCancelled(s.now(), s.cfg.CancelWindow) {
			return fmt.Errorf("%w: %s is older than %s", models.ErrCancellationWindowExpired, txID, s.cfg.CancelWindow)
		}
		if tx.HasStep(models.StepRecipientCredited) || tx.HasStep(models.StepManualReconciliation) {
			return fmt.Errorf("%w: %s is already being settled", models.ErrInvalidTransition, txID)
		}

		expected := tx.Status
		err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
			if holdsReservation(tx) {
				if err := s.ledger.Release(ctx, tx.Sender.WalletID, tx.Currency, tx.TotalAmount); err != nil {
					return err
				}
			}
			if err := tx.Transition(models.StatusCancelled, "Cancelled by user", s.now()); err != nil {
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
		out, changed = tx, true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		logger.Log.Infow("transaction cancelled", "transaction_id", txID, "user_id", userID)
	}
	return out, nil
}

// GetTransaction returns a transaction visible to userID.
func (s *TransactionService) GetTransaction(ctx context.Context, txID string, userID uuid.UUID) (*models.Transaction, error) {
	tx, err := s.txs.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}
	if !tx.IsParty(userID) {
		return nil, fmt.Errorf("%w: %s", models.ErrForbidden, txID)
	}
	return tx, nil
}

// History returns one page of the user's transactions.
func (s *TransactionService) History(ctx context.Context, f models.HistoryFilter) (*models.HistoryPage, error) {
	f.Normalize()
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return nil, fmt.Errorf("%w: from is after to", models.ErrInvalidRequest)
	}
	return s.txs.List(ctx, f)
}

// reserveAndCreate runs the limit check, the reservation and the insert in
// one storage transaction under the user's limits lock, so a failed insert
// leaves neither counters nor balances behind.
func (s *TransactionService) reserveAndCreate(ctx context.Context, tx *models.Transaction, userID, walletID uuid.UUID) error {
	return s.locker.WithLock(ctx, locker.LimitsKey(userID), func(ctx context.Context) error {
		return s.transactor.WithinTx(ctx, func(ctx context.Context) error {
			decision, err := s.limits.CheckAndReserveLimit(ctx, userID, tx.TotalAmount, tx.Currency, tx.Type)
			if err != nil {
				return err
			}
			tx.LimitAmount = decision.LimitAmount

			if err := s.ledger.Reserve(ctx, walletID, tx.Currency, tx.TotalAmount); err != nil {
				return err
			}
			return s.txs.Create(ctx, tx)
		})
	})
}

// record appends the terminal event of tx to the outbox. Callers run it in
// the storage transaction that writes the terminal status.
func (s *TransactionService) record(ctx context.Context, tx *models.Transaction) error {
	e, err := models.NewOutboxEvent(tx, s.now())
	if err != nil {
		return err
	}
	return s.outbox.AppendEvent(ctx, e)
}

func (s *TransactionService) checkAvailable(ctx context.Context, walletID uuid.UUID, currency string, total decimal.Decimal) error {
	bal, err := s.ledger.GetBalance(ctx, walletID, currency)
	if err != nil {
		return err
	}
	if bal.Available.LessThan(total) {
		return fmt.Errorf("%w: available %s %s, required %s %s",
			models.ErrInsufficientFunds, bal.Available.StringFixed(2), currency, total.StringFixed(2), currency)
	}
	return nil
}

func (s *TransactionService) approvedUser(ctx context.Context, userID uuid.UUID) (*models.UserRef, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: no directory entry for %s", models.ErrKYCRequired, userID)
		}
		return nil, err
	}
	if !user.KYCApproved() {
		return nil, fmt.Errorf("%w: status is %q", models.ErrKYCRequired, user.KYCStatus)
	}
	return user, nil
}

func (s *TransactionService) activeWallet(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	w, err := s.wallets.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !w.IsActive {
		return nil, fmt.Errorf("%w: %s", models.ErrWalletInactive, w.WalletID)
	}
	return w, nil
}

func (s *TransactionService) replay(ctx context.Context, key, hash string) (*models.Transaction, error) {
	if key == "" {
		return nil, nil
	}
	tx, err := s.txs.GetByIdempotencyKey(ctx, key)
	if err != nil || tx == nil {
		return nil, err
	}
	if tx.RequestHash != hash {
		return nil, fmt.Errorf("%w: key already used by %s", models.ErrIdempotencyConflict, tx.TransactionID)
	}
	logger.Log.Infow("idempotent replay", "transaction_id", tx.TransactionID)
	return tx, nil
}

// idempotency scopes the client key to the user and hashes the canonical
// JSON form of the request.
func idempotency(userID uuid.UUID, key string, fingerprint any) (string, string, error) {
	if key == "" {
		return "", "", nil
	}
	raw, err := json.Marshal(fingerprint)
	if err != nil {
		return "", "", err
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", "", err
	}
	sum := sha256.Sum256(canonical)
	return userID.String() + ":" + key, hex.EncodeToString(sum[:]), nil
}

func checkPIN(w *models.Wallet, pin string) error {
	if !w.HasPIN() {
		return nil
	}
	if pin == "" {
		return fmt.Errorf("%w: pin required", models.ErrInvalidPIN)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*w.PinHash), []byte(pin)); err != nil {
		return models.ErrInvalidPIN
	}
	return nil
}

// initiatorID is the user allowed to cancel: the receiver for deposits, the
// sender otherwise.
func initiatorID(tx *models.Transaction) uuid.UUID {
	if tx.Type == models.TypeDeposit {
		return tx.Receiver.UserID
	}
	return tx.Sender.UserID
}

func holdsReservation(tx *models.Transaction) bool {
	if tx.Status != models.StatusProcessing {
		return false
	}
	switch tx.Type {
	case models.TypeSend, models.TypeWithdrawal, models.TypeCurrencyExchange:
		return true
	}
	return false
}
