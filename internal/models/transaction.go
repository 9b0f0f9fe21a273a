package models

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// TransactionType enumerates money movements.
type TransactionType string

const (
	TypeSend             TransactionType = "send"
	TypeDeposit          TransactionType = "deposit"
	TypeWithdrawal       TransactionType = "withdrawal"
	TypeCurrencyExchange TransactionType = "currency_exchange"
	TypeFee              TransactionType = "fee"
)

// TransactionStatus is the state of a transaction.
type TransactionStatus string

const (
	StatusPending    TransactionStatus = "pending"
	StatusProcessing TransactionStatus = "processing"
	StatusCompleted  TransactionStatus = "completed"
	StatusFailed     TransactionStatus = "failed"
	StatusCancelled  TransactionStatus = "cancelled"
)

var transitions = map[TransactionStatus][]TransactionStatus{
	StatusPending:    {StatusProcessing, StatusCompleted, StatusFailed, StatusCancelled},
	StatusProcessing: {StatusCompleted, StatusFailed, StatusCancelled},
}

// IsTerminal reports whether s has no outgoing edges.
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// CanTransitionTo reports whether s -> to is an edge of the status graph.
func (s TransactionStatus) CanTransitionTo(to TransactionStatus) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Timeline steps recorded besides plain status changes.
const (
	StepRecipientCredited      = "recipient_credited"
	StepManualReconciliation   = "manual_reconciliation"
	NoteManualReconciliation   = "manual reconciliation required"
	FeeTypePercentage          = "percentage"
	FeeTypeFixed               = "fixed"
	DefaultPaymentMethodWallet = "wallet"
)

// BankAccount is the payout destination of a withdrawal.
type BankAccount struct {
	AccountNumber string `json:"account_number" validate:"required"`
	RoutingNumber string `json:"routing_number,omitempty"`
	BankName      string `json:"bank_name" validate:"required"`
	AccountHolder string `json:"account_holder" validate:"required"`
	Country       string `json:"country,omitempty"`
}

// Party is one side of a transaction.
type Party struct {
	UserID      uuid.UUID    `json:"user_id"`
	WalletID    uuid.UUID    `json:"wallet_id"`
	Name        string       `json:"name,omitempty"`
	Email       string       `json:"email,omitempty"`
	Phone       string       `json:"phone,omitempty"`
	BankAccount *BankAccount `json:"bank_account,omitempty"`
}

// IsInternal reports whether the party is a platform user.
func (p Party) IsInternal() bool {
	return p.UserID != uuid.Nil
}

// FeeBreakdown describes the platform fee charged on a transaction.
type FeeBreakdown struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Type     string          `json:"type"`
	Rate     decimal.Decimal `json:"rate"`
}

// ExchangeDetails records a conversion applied to a transaction.
type ExchangeDetails struct {
	FromCurrency string          `json:"from_currency"`
	ToCurrency   string          `json:"to_currency"`
	FromAmount   decimal.Decimal `json:"from_amount"`
	ToAmount     decimal.Decimal `json:"to_amount"`
	Rate         decimal.Decimal `json:"rate"`
}

// ExternalReference links a transaction to the outside world.
type ExternalReference struct {
	PaymentIntentID   string `json:"payment_intent_id,omitempty"`
	BankTransactionID string `json:"bank_transaction_id,omitempty"`
}

// TimelineEntry is one audit record of a transaction.
type TimelineEntry struct {
	Status    TransactionStatus `json:"status"`
	Step      string            `json:"step,omitempty"`
	Note      string            `json:"note,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// Transaction is a money movement record.
// swagger:model Transaction
type Transaction struct {
	TransactionID     string             `json:"transaction_id"`
	Type              TransactionType    `json:"type"`
	Status            TransactionStatus  `json:"status"`
	Amount            decimal.Decimal    `json:"amount"`
	Currency          string             `json:"currency"`
	Sender            Party              `json:"sender"`
	Receiver          Party              `json:"receiver"`
	Fee               FeeBreakdown       `json:"fee"`
	TotalAmount       decimal.Decimal    `json:"total_amount"`
	LimitAmount       decimal.Decimal    `json:"-"`
	ExchangeDetails   *ExchangeDetails   `json:"exchange_details,omitempty"`
	Timeline          []TimelineEntry    `json:"timeline"`
	RetryCount        int                `json:"retry_count"`
	FailureReason     string             `json:"failure_reason,omitempty"`
	Description       string             `json:"description"`
	PaymentMethod     string             `json:"payment_method"`
	ExternalReference ExternalReference  `json:"external_reference"`
	IdempotencyKey    string             `json:"-"`
	RequestHash       string             `json:"-"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
	SettledAt         *time.Time         `json:"settled_at,omitempty"`
}

// NewTransactionID returns "TXN" followed by a ULID.
func NewTransactionID(now time.Time) string {
	return "TXN" + ulid.MustNew(ulid.Timestamp(now), rand.Reader).String()
}

// NewTransaction creates a transaction in the given initial status with its
// first timeline entry.
func NewTransaction(txType TransactionType, status TransactionStatus, amount decimal.Decimal, currency string, now time.Time) *Transaction {
	now = now.UTC()
	return &Transaction{
		TransactionID: NewTransactionID(now),
		Type:          txType,
		Status:        status,
		Amount:        amount,
		Currency:      currency,
		TotalAmount:   amount,
		LimitAmount:   decimal.Zero,
		Fee:           FeeBreakdown{Amount: decimal.Zero, Currency: currency, Type: FeeTypePercentage, Rate: decimal.Zero},
		Timeline:      []TimelineEntry{{Status: status, Note: "Transaction created", Timestamp: now}},
		PaymentMethod: DefaultPaymentMethodWallet,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Transition moves the transaction along an edge of the status graph and
// appends a timeline entry.
func (t *Transaction) Transition(to TransactionStatus, note string, now time.Time) error {
	if !t.Status.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s for %s", ErrInvalidTransition, t.Status, to, t.TransactionID)
	}
	now = now.UTC()
	t.Status = to
	t.UpdatedAt = now
	t.Timeline = append(t.Timeline, TimelineEntry{Status: to, Note: note, Timestamp: now})
	if to == StatusCompleted {
		t.SettledAt = &now
	}
	return nil
}

// AddStep records a non-status timeline step.
func (t *Transaction) AddStep(step, note string, now time.Time) {
	now = now.UTC()
	t.UpdatedAt = now
	t.Timeline = append(t.Timeline, TimelineEntry{Status: t.Status, Step: step, Note: note, Timestamp: now})
}

// HasStep reports whether step was recorded.
func (t *Transaction) HasStep(step string) bool {
	for _, e := range t.Timeline {
		if e.Step == step {
			return true
		}
	}
	return false
}

// CanBeCancelled reports whether the transaction is still open and younger
// than window.
func (t *Transaction) CanBeCancelled(now time.Time, window time.Duration) bool {
	if t.Status.IsTerminal() {
		return false
	}
	return now.Sub(t.CreatedAt) < window
}

// CreditLeg returns the currency and amount the receiver gets.
func (t *Transaction) CreditLeg() (string, decimal.Decimal) {
	if t.ExchangeDetails != nil {
		return t.ExchangeDetails.ToCurrency, t.ExchangeDetails.ToAmount
	}
	return t.Currency, t.Amount
}

// IsParty reports whether userID is the sender or the receiver.
func (t *Transaction) IsParty(userID uuid.UUID) bool {
	return t.Sender.UserID == userID || (t.Receiver.IsInternal() && t.Receiver.UserID == userID)
}

// DefaultDescription fills Description when the caller left it empty.
func (t *Transaction) DefaultDescription() {
	if t.Description != "" {
		return
	}
	switch t.Type {
	case TypeSend:
		t.Description = fmt.Sprintf("Money transfer of %s %s", t.Amount.StringFixed(2), t.Currency)
	case TypeDeposit:
		t.Description = fmt.Sprintf("Deposit of %s %s", t.Amount.StringFixed(2), t.Currency)
	case TypeWithdrawal:
		t.Description = fmt.Sprintf("Withdrawal of %s %s", t.Amount.StringFixed(2), t.Currency)
	case TypeCurrencyExchange:
		if t.ExchangeDetails != nil {
			t.Description = fmt.Sprintf("Currency exchange from %s to %s", t.ExchangeDetails.FromCurrency, t.ExchangeDetails.ToCurrency)
		} else {
			t.Description = "Currency exchange"
		}
	case TypeFee:
		t.Description = "Transaction fee"
	default:
		t.Description = "Transaction"
	}
}

// SettlementJob is the unit of work handed to the settlement queue.
type SettlementJob struct {
	TransactionID string    `json:"transaction_id"`
	EnqueuedAt    time.Time `json:"enqueued_at"`
}
