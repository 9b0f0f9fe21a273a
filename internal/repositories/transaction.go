package repositories

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
	"github.com/shopspring/decimal"
)

const pgUniqueViolation = "23505"

// jsonb stores V as a JSONB column.
type jsonb[T any] struct {
	V T
}

func (j jsonb[T]) Value() (driver.Value, error) {
	b, err := json.Marshal(j.V)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (j *jsonb[T]) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		var zero T
		j.V = zero
		return nil
	case []byte:
		return json.Unmarshal(v, &j.V)
	case string:
		return json.Unmarshal([]byte(v), &j.V)
	default:
		return fmt.Errorf("unsupported jsonb source %T", src)
	}
}

type transactionRow struct {
	TransactionID     string                            `db:"transaction_id"`
	Type              string                            `db:"type"`
	Status            string                            `db:"status"`
	Amount            decimal.Decimal                   `db:"amount"`
	Currency          string                            `db:"currency"`
	TotalAmount       decimal.Decimal                   `db:"total_amount"`
	LimitAmount       decimal.Decimal                   `db:"limit_amount"`
	SenderUserID      uuid.NullUUID                     `db:"sender_user_id"`
	ReceiverUserID    uuid.NullUUID                     `db:"receiver_user_id"`
	Sender            jsonb[models.Party]               `db:"sender"`
	Receiver          jsonb[models.Party]               `db:"receiver"`
	Fee               jsonb[models.FeeBreakdown]        `db:"fee"`
	ExchangeDetails   jsonb[*models.ExchangeDetails]    `db:"exchange_details"`
	Timeline          jsonb[[]models.TimelineEntry]     `db:"timeline"`
	RetryCount        int                               `db:"retry_count"`
	FailureReason     string                            `db:"failure_reason"`
	Description       string                            `db:"description"`
	PaymentMethod     string                            `db:"payment_method"`
	ExternalReference jsonb[models.ExternalReference]   `db:"external_reference"`
	IdempotencyKey    sql.NullString                    `db:"idempotency_key"`
	RequestHash       string                            `db:"request_hash"`
	CreatedAt         time.Time                         `db:"created_at"`
	UpdatedAt         time.Time                         `db:"updated_at"`
	SettledAt         sql.NullTime                      `db:"settled_at"`
}

func nullUUID(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: id != uuid.Nil}
}

func toRow(t *models.Transaction) transactionRow {
	row := transactionRow{
		TransactionID:     t.TransactionID,
		Type:              string(t.Type),
		Status:            string(t.Status),
		Amount:            t.Amount,
		Currency:          t.Currency,
		TotalAmount:       t.TotalAmount,
		LimitAmount:       t.LimitAmount,
		SenderUserID:      nullUUID(t.Sender.UserID),
		ReceiverUserID:    nullUUID(t.Receiver.UserID),
		Sender:            jsonb[models.Party]{V: t.Sender},
		Receiver:          jsonb[models.Party]{V: t.Receiver},
		Fee:               jsonb[models.FeeBreakdown]{V: t.Fee},
		ExchangeDetails:   jsonb[*models.ExchangeDetails]{V: t.ExchangeDetails},
		Timeline:          jsonb[[]models.TimelineEntry]{V: t.Timeline},
		RetryCount:        t.RetryCount,
		FailureReason:     t.FailureReason,
		Description:       t.Description,
		PaymentMethod:     t.PaymentMethod,
		ExternalReference: jsonb[models.ExternalReference]{V: t.ExternalReference},
		IdempotencyKey:    sql.NullString{String: t.IdempotencyKey, Valid: t.IdempotencyKey != ""},
		RequestHash:       t.RequestHash,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
	if t.SettledAt != nil {
		row.SettledAt = sql.NullTime{Time: *t.SettledAt, Valid: true}
	}
	return row
}

func (row transactionRow) toModel() *models.Transaction {
	t := &models.Transaction{
		TransactionID:     row.TransactionID,
		Type:              models.TransactionType(row.Type),
		Status:            models.TransactionStatus(row.Status),
		Amount:            row.Amount,
		Currency:          row.Currency,
		TotalAmount:       row.TotalAmount,
		LimitAmount:       row.LimitAmount,
		Sender:            row.Sender.V,
		Receiver:          row.Receiver.V,
		Fee:               row.Fee.V,
		ExchangeDetails:   row.ExchangeDetails.V,
		Timeline:          row.Timeline.V,
		RetryCount:        row.RetryCount,
		FailureReason:     row.FailureReason,
		Description:       row.Description,
		PaymentMethod:     row.PaymentMethod,
		ExternalReference: row.ExternalReference.V,
		IdempotencyKey:    row.IdempotencyKey.String,
		RequestHash:       row.RequestHash,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
	if row.SettledAt.Valid {
		settled := row.SettledAt.Time
		t.SettledAt = &settled
	}
	return t
}

const transactionColumns = `
	transaction_id, type, status, amount, currency, total_amount, limit_amount,
	sender_user_id, receiver_user_id, sender, receiver, fee, exchange_details, timeline,
	retry_count, failure_reason, description, payment_method, external_reference,
	idempotency_key, request_hash, created_at, updated_at, settled_at
`

// TransactionRepository handles the transactions table.
type TransactionRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewTransactionRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *TransactionRepository {
	return &TransactionRepository{db: db, txGetter: txGetter}
}

// Create inserts a new transaction. A duplicate idempotency key is reported as
// an idempotency conflict.
func (r *TransactionRepository) Create(ctx context.Context, t *models.Transaction) error {
	const query = `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES (
			:transaction_id, :type, :status, :amount, :currency, :total_amount, :limit_amount,
			:sender_user_id, :receiver_user_id, :sender, :receiver, :fee, :exchange_details, :timeline,
			:retry_count, :failure_reason, :description, :payment_method, :external_reference,
			:idempotency_key, :request_hash, :created_at, :updated_at, :settled_at
		)
	`
	row := toRow(t)
	_, err := sqlx.NamedExecContext(ctx, executor(ctx, r.db, r.txGetter), query, row)
	logQuery(query, []any{t.TransactionID, t.Type, t.Status, t.Amount, t.Currency}, nil, err)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", models.ErrIdempotencyConflict, t.IdempotencyKey)
	}
	return err
}

// GetByID returns the transaction or ErrTransactionNotFound.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1`

	var row transactionRow
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &row, query, id)
	logQuery(query, []any{id}, row.Status, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", models.ErrTransactionNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

// GetByIdempotencyKey returns nil without error when the key is unused.
func (r *TransactionRepository) GetByIdempotencyKey(ctx context.Context, key string) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE idempotency_key = $1`

	var row transactionRow
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &row, query, key)
	logQuery(query, []any{key}, row.TransactionID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

// UpdateState writes the mutable part of t only if the stored status still
// equals expected.
func (r *TransactionRepository) UpdateState(ctx context.Context, t *models.Transaction, expected models.TransactionStatus) error {
	const query = `
		UPDATE transactions
		SET status = $2, timeline = $3, retry_count = $4, failure_reason = $5,
		    external_reference = $6, settled_at = $7, updated_at = $8
		WHERE transaction_id = $1 AND status = $9
	`
	row := toRow(t)
	args := []any{
		row.TransactionID, row.Status, row.Timeline, row.RetryCount, row.FailureReason,
		row.ExternalReference, row.SettledAt, row.UpdatedAt, string(expected),
	}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	var rows int64
	if res != nil {
		rows, _ = res.RowsAffected()
	}
	logQuery(query, []any{t.TransactionID, t.Status, expected}, rows, err)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s is no longer %s", models.ErrInvalidTransition, t.TransactionID, expected)
	}
	return nil
}

// SumLimitAmount sums the limit-relevant amount of a user's transactions of
// txType that are completed or still processing, created at or after since.
func (r *TransactionRepository) SumLimitAmount(ctx context.Context, userID uuid.UUID, txType models.TransactionType, since time.Time) (decimal.Decimal, error) {
	const query = `
		SELECT COALESCE(SUM(limit_amount), 0)
		FROM transactions
		WHERE sender_user_id = $1
		  AND type = $2
		  AND status IN ('completed', 'processing')
		  AND created_at >= $3
	`
	args := []any{userID, string(txType), since}

	var total decimal.Decimal
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &total, query, args...)
	logQuery(query, args, total, err)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// List returns one page of a user's history with a per-status summary.
func (r *TransactionRepository) List(ctx context.Context, f models.HistoryFilter) (*models.HistoryPage, error) {
	f.Normalize()

	where := []string{"(sender_user_id = $1 OR receiver_user_id = $1)"}
	args := []any{f.UserID}
	if f.Type != "" {
		args = append(args, string(f.Type))
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.From != nil {
		args = append(args, *f.From)
		where = append(where, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		where = append(where, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")
	ex := executor(ctx, r.db, r.txGetter)

	countQuery := `SELECT COUNT(*) FROM transactions WHERE ` + cond
	var total int
	err := sqlx.GetContext(ctx, ex, &total, countQuery, args...)
	logQuery(countQuery, args, total, err)
	if err != nil {
		return nil, err
	}

	pageArgs := append(append([]any{}, args...), f.Limit, f.Offset())
	listQuery := fmt.Sprintf(`SELECT %s FROM transactions WHERE %s ORDER BY created_at DESC, transaction_id DESC LIMIT $%d OFFSET $%d`,
		transactionColumns, cond, len(args)+1, len(args)+2)
	var rows []transactionRow
	err = sqlx.SelectContext(ctx, ex, &rows, listQuery, pageArgs...)
	logQuery(listQuery, pageArgs, len(rows), err)
	if err != nil {
		return nil, err
	}

	summaryQuery := `
		SELECT status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total_amount
		FROM transactions WHERE ` + cond + ` GROUP BY status ORDER BY status`
	var summary []models.StatusSummary
	err = sqlx.SelectContext(ctx, ex, &summary, summaryQuery, args...)
	logQuery(summaryQuery, args, len(summary), err)
	if err != nil {
		return nil, err
	}

	page := &models.HistoryPage{
		Transactions: make([]*models.Transaction, 0, len(rows)),
		Total:        total,
		Page:         f.Page,
		Pages:        (total + f.Limit - 1) / f.Limit,
		Summary:      summary,
	}
	for _, row := range rows {
		page.Transactions = append(page.Transactions, row.toModel())
	}
	return page, nil
}
