package models

import (
	"errors"
)

// Error taxonomy shared by services and handlers. Services wrap these with
// fmt.Errorf("%w: ...") so errors.Is keeps working across layers.
var (
	ErrInsufficientFunds         = errors.New("insufficient funds")
	ErrLimitExceeded             = errors.New("limit exceeded")
	ErrRecipientNotFound         = errors.New("recipient not found")
	ErrRateUnavailable           = errors.New("exchange rate unavailable")
	ErrUpstreamUnavailable       = errors.New("upstream unavailable")
	ErrInvalidTransition         = errors.New("invalid status transition")
	ErrInvariantViolation        = errors.New("ledger invariant violation")
	ErrWalletNotFound            = errors.New("wallet not found")
	ErrWalletInactive            = errors.New("wallet is inactive")
	ErrTransactionNotFound       = errors.New("transaction not found")
	ErrCancellationWindowExpired = errors.New("cancellation window expired")
	ErrForbidden                 = errors.New("forbidden")
	ErrKYCRequired               = errors.New("kyc verification required")
	ErrInvalidPIN                = errors.New("invalid pin")
	ErrIdempotencyConflict       = errors.New("idempotency key reused with a different request")
	ErrInvalidAmount             = errors.New("amount must be positive")
	ErrUnsupportedCurrency       = errors.New("unsupported currency")
	ErrInvalidRequest            = errors.New("invalid request")
	ErrUserNotFound              = errors.New("user not found")
	ErrUnauthorized              = errors.New("unauthorized")
	ErrRateLimited               = errors.New("too many requests")
)

// ErrorKind is the stable machine-readable name of a failure.
type ErrorKind string

const (
	KindInsufficientFunds         ErrorKind = "insufficient_funds"
	KindLimitExceeded             ErrorKind = "limit_exceeded"
	KindRecipientNotFound         ErrorKind = "recipient_not_found"
	KindRateUnavailable           ErrorKind = "rate_unavailable"
	KindUpstreamUnavailable       ErrorKind = "upstream_unavailable"
	KindInvalidTransition         ErrorKind = "invalid_transition"
	KindInvariantViolation        ErrorKind = "invariant_violation"
	KindWalletNotFound            ErrorKind = "wallet_not_found"
	KindWalletInactive            ErrorKind = "wallet_inactive"
	KindTransactionNotFound       ErrorKind = "transaction_not_found"
	KindCancellationWindowExpired ErrorKind = "cancellation_window_expired"
	KindForbidden                 ErrorKind = "forbidden"
	KindKYCRequired               ErrorKind = "kyc_required"
	KindInvalidPIN                ErrorKind = "invalid_pin"
	KindIdempotencyConflict       ErrorKind = "idempotency_conflict"
	KindInvalidAmount             ErrorKind = "invalid_amount"
	KindUnsupportedCurrency       ErrorKind = "unsupported_currency"
	KindInvalidRequest            ErrorKind = "invalid_request"
	KindUserNotFound              ErrorKind = "user_not_found"
	KindUnauthorized              ErrorKind = "unauthorized"
	KindRateLimited               ErrorKind = "rate_limited"
	KindInternal                  ErrorKind = "internal"
)

var errorKinds = []struct {
	err  error
	kind ErrorKind
}{
	{ErrInvariantViolation, KindInvariantViolation},
	{ErrInsufficientFunds, KindInsufficientFunds},
	{ErrLimitExceeded, KindLimitExceeded},
	{ErrRecipientNotFound, KindRecipientNotFound},
	{ErrRateUnavailable, KindRateUnavailable},
	{ErrUpstreamUnavailable, KindUpstreamUnavailable},
	{ErrInvalidTransition, KindInvalidTransition},
	{ErrWalletNotFound, KindWalletNotFound},
	{ErrWalletInactive, KindWalletInactive},
	{ErrTransactionNotFound, KindTransactionNotFound},
	{ErrCancellationWindowExpired, KindCancellationWindowExpired},
	{ErrForbidden, KindForbidden},
	{ErrKYCRequired, KindKYCRequired},
	{ErrInvalidPIN, KindInvalidPIN},
	{ErrIdempotencyConflict, KindIdempotencyConflict},
	{ErrInvalidAmount, KindInvalidAmount},
	{ErrUnsupportedCurrency, KindUnsupportedCurrency},
	{ErrInvalidRequest, KindInvalidRequest},
	{ErrUserNotFound, KindUserNotFound},
	{ErrUnauthorized, KindUnauthorized},
	{ErrRateLimited, KindRateLimited},
}

// KindOf classifies err against the taxonomy. Unknown errors are internal.
func KindOf(err error) ErrorKind {
	for _, ek := range errorKinds {
		if errors.Is(err, ek.err) {
			return ek.kind
		}
	}
	return KindInternal
}

// Failure is the error half of an OperationResult.
// swagger:model Failure
type Failure struct {
	// example: insufficient_funds
	Kind ErrorKind `json:"kind"`
	// example: insufficient funds: available 10.00 USD, required 51.00 USD
	Detail string `json:"detail"`
}

// NewFailure builds a Failure from err. Internal and invariant errors never
// expose their raw text.
func NewFailure(err error) *Failure {
	kind := KindOf(err)
	switch kind {
	case KindInternal, KindInvariantViolation:
		return &Failure{Kind: kind, Detail: "internal error, the operation was not completed"}
	}
	return &Failure{Kind: kind, Detail: err.Error()}
}
