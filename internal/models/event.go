package models

import "time"

// EventKind names a transaction lifecycle event.
type EventKind string

const (
	EventCompleted EventKind = "transaction.completed"
	EventFailed    EventKind = "transaction.failed"
	EventCancelled EventKind = "transaction.cancelled"
)

// EventKindForStatus maps a terminal status to its event kind.
func EventKindForStatus(s TransactionStatus) (EventKind, bool) {
	switch s {
	case StatusCompleted:
		return EventCompleted, true
	case StatusFailed:
		return EventFailed, true
	case StatusCancelled:
		return EventCancelled, true
	}
	return "", false
}

// TransactionEvent is published once a terminal status is committed.
type TransactionEvent struct {
	Kind        EventKind    `json:"kind"`
	Transaction *Transaction `json:"transaction"`
	OccurredAt  time.Time    `json:"occurred_at"`
}

// Notification is what a user-facing channel receives.
type Notification struct {
	UserID        string    `json:"user_id"`
	Kind          EventKind `json:"kind"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	TransactionID string    `json:"transaction_id"`
	CreatedAt     time.Time `json:"created_at"`
}
