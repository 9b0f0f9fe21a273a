package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
)

const outboxColumns = `
	event_id, transaction_id, kind, payload, status, attempts, last_error,
	created_at, updated_at, published_at
`

// OutboxRepository handles the outbox_events table.
type OutboxRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewOutboxRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *OutboxRepository {
	return &OutboxRepository{db: db, txGetter: txGetter}
}

// AppendEvent stores e inside the caller's transaction when there is one.
func (r *OutboxRepository) AppendEvent(ctx context.Context, e *models.OutboxEvent) error {
	const query = `
		INSERT INTO outbox_events (` + outboxColumns + `)
		VALUES (:event_id, :transaction_id, :kind, :payload, :status, :attempts, :last_error,
		        :created_at, :updated_at, :published_at)
	`
	_, err := sqlx.NamedExecContext(ctx, executor(ctx, r.db, r.txGetter), query, e)
	logQuery(query, []any{e.EventID, e.TransactionID, e.Kind}, nil, err)
	return err
}

// ClaimPendingEvents marks up to limit undelivered events as processing and
// returns them. Events left in processing since before staleBefore are
// claimed again, so a relay that died mid-delivery does not strand them.
func (r *OutboxRepository) ClaimPendingEvents(ctx context.Context, limit int, staleBefore time.Time) ([]*models.OutboxEvent, error) {
	const query = `
		UPDATE outbox_events
		SET status = 'processing', attempts = attempts + 1, updated_at = NOW()
		WHERE event_id IN (
			SELECT event_id FROM outbox_events
			WHERE status = 'pending' OR (status = 'processing' AND updated_at < $2)
			ORDER BY created_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING ` + outboxColumns

	var events []*models.OutboxEvent
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &events, query, limit, staleBefore)
	logQuery(query, []any{limit, staleBefore}, len(events), err)
	if err != nil {
		return nil, err
	}
	return events, nil
}

// MarkEventPublished records a successful delivery.
func (r *OutboxRepository) MarkEventPublished(ctx context.Context, id uuid.UUID, at time.Time) error {
	const query = `
		UPDATE outbox_events
		SET status = 'published', published_at = $2, last_error = '', updated_at = NOW()
		WHERE event_id = $1
	`
	return r.exec(ctx, query, id, at)
}

// MarkEventFailed returns the event to pending with the delivery error.
func (r *OutboxRepository) MarkEventFailed(ctx context.Context, id uuid.UUID, reason string) error {
	const query = `
		UPDATE outbox_events
		SET status = 'pending', last_error = $2, updated_at = NOW()
		WHERE event_id = $1 AND status = 'processing'
	`
	return r.exec(ctx, query, id, reason)
}

func (r *OutboxRepository) exec(ctx context.Context, query string, args ...any) error {
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
		return fmt.Errorf("outbox event %v not found in a claimable state", args[0])
	}
	return nil
}
