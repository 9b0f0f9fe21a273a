package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-remit-wallet/internal/logger"
	"github.com/sbilibin2017/gw-remit-wallet/internal/middlewares"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=mocks_test.go -package=handlers github.com/sbilibin2017/gw-remit-wallet/internal/handlers WalletManager,MoneySender,Withdrawer,Depositor,CurrencyExchanger,RateReader,TransactionReader,TransactionCanceller,WithdrawalConfirmer,DepositResolver

// IdempotencyKeyHeader lets clients retry money-moving requests safely.
const IdempotencyKeyHeader = "Idempotency-Key"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// decimal.Decimal is a struct, so positivity is checked on the value itself.
		_ = validate.RegisterValidation("positive_decimal", func(fl validator.FieldLevel) bool {
			d, ok := fl.Field().Interface().(decimal.Decimal)
			return ok && d.IsPositive()
		})
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// decodeRequest reads a JSON body into dst and runs the validate tags.
func decodeRequest(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed body: %v", models.ErrInvalidRequest, err)
	}
	if err := getValidator().Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			if fe.Tag() == "positive_decimal" {
				return fmt.Errorf("%w: '%s' must be positive", models.ErrInvalidAmount, fe.Field())
			}
			return fmt.Errorf("%w: '%s' failed '%s' check", models.ErrInvalidRequest, fe.Field(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", models.ErrInvalidRequest, err)
	}
	return nil
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(err error) int {
	switch models.KindOf(err) {
	case models.KindInvalidAmount, models.KindUnsupportedCurrency, models.KindInvalidRequest:
		return http.StatusBadRequest
	case models.KindUnauthorized:
		return http.StatusUnauthorized
	case models.KindForbidden, models.KindKYCRequired, models.KindInvalidPIN:
		return http.StatusForbidden
	case models.KindWalletNotFound, models.KindTransactionNotFound,
		models.KindRecipientNotFound, models.KindUserNotFound:
		return http.StatusNotFound
	case models.KindIdempotencyConflict, models.KindInvalidTransition,
		models.KindCancellationWindowExpired, models.KindWalletInactive:
		return http.StatusConflict
	case models.KindInsufficientFunds, models.KindLimitExceeded, models.KindRateUnavailable:
		return http.StatusUnprocessableEntity
	case models.KindRateLimited:
		return http.StatusTooManyRequests
	case models.KindUpstreamUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Errorw("failed to encode response", "error", err)
	}
}

// writeFailure answers with the classified failure of err.
func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Log.Errorw("request failed",
			"request_id", middlewares.RequestIDFromContext(r.Context()),
			"uri", r.RequestURI,
			"error", err,
		)
	} else {
		logger.Log.Infow("request rejected",
			"request_id", middlewares.RequestIDFromContext(r.Context()),
			"uri", r.RequestURI,
			"kind", models.KindOf(err),
		)
	}
	writeJSON(w, status, models.NewErrorResult(err))
}

// callerID returns the authenticated user or answers 401.
func callerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middlewares.UserIDFromContext(r.Context())
	if !ok {
		writeFailure(w, r, models.ErrUnauthorized)
		return uuid.Nil, false
	}
	return id, true
}
