package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OutboxStatus is the delivery state of a stored event.
type OutboxStatus string

const (
	OutboxPending    OutboxStatus = "pending"
	OutboxProcessing OutboxStatus = "processing"
	OutboxPublished  OutboxStatus = "published"
)

// OutboxEvent is a lifecycle event written in the same storage transaction as
// the terminal status it announces. The relay delivers it at least once.
type OutboxEvent struct {
	EventID       uuid.UUID    `db:"event_id"`
	TransactionID string       `db:"transaction_id"`
	Kind          EventKind    `db:"kind"`
	Payload       []byte       `db:"payload"`
	Status        OutboxStatus `db:"status"`
	Attempts      int          `db:"attempts"`
	LastError     string       `db:"last_error"`
	CreatedAt     time.Time    `db:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at"`
	PublishedAt   *time.Time   `db:"published_at"`
}

// NewOutboxEvent stores the terminal snapshot of tx. It fails for
// transactions that are not terminal.
func NewOutboxEvent(tx *Transaction, now time.Time) (*OutboxEvent, error) {
	kind, ok := EventKindForStatus(tx.Status)
	if !ok {
		return nil, fmt.Errorf("%w: no event for status %s", ErrInvalidTransition, tx.Status)
	}
	now = now.UTC()
	payload, err := json.Marshal(TransactionEvent{Kind: kind, Transaction: tx, OccurredAt: now})
	if err != nil {
		return nil, err
	}
	return &OutboxEvent{
		EventID:       uuid.New(),
		TransactionID: tx.TransactionID,
		Kind:          kind,
		Payload:       payload,
		Status:        OutboxPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Event decodes the stored payload.
func (e *OutboxEvent) Event() (TransactionEvent, error) {
	var ev TransactionEvent
	if err := json.Unmarshal(e.Payload, &ev); err != nil {
		return ev, fmt.Errorf("decode outbox event %s: %w", e.EventID, err)
	}
	return ev, nil
}
