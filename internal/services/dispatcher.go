package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/sbilibin2017/gw-remit-wallet/internal/logger"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
	"github.com/segmentio/kafka-go"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
}

// Notifier delivers a user-facing message about a transaction.
type Notifier interface {
	Notify(ctx context.Context, user models.Party, kind models.EventKind, tx *models.Transaction) error // Sends one notification
}

// EventDispatcher publishes lifecycle events read from the outbox and fans
// out notifications to the internal parties.
type EventDispatcher struct {
	writer     KafkaWriter
	notifier   Notifier
	maxRetries uint64
}

func NewEventDispatcher(writer KafkaWriter, notifier Notifier, maxRetries uint64) *EventDispatcher {
	return &EventDispatcher{writer: writer, notifier: notifier, maxRetries: maxRetries}
}

// Deliver publishes the event and then notifies both sides. A publish error is
// returned so the outbox keeps the event; notification errors are only logged.
func (d *EventDispatcher) Deliver(ctx context.Context, ev models.TransactionEvent) error {
	if err := d.publish(ctx, ev); err != nil {
		return err
	}

	if d.notifier == nil {
		return nil
	}
	tx := ev.Transaction
	parties := []models.Party{tx.Sender}
	if tx.Receiver.IsInternal() && tx.Receiver.UserID != tx.Sender.UserID {
		parties = append(parties, tx.Receiver)
	}
	for _, p := range parties {
		if !p.IsInternal() {
			continue
		}
		if err := d.notifier.Notify(ctx, p, ev.Kind, tx); err != nil {
			logger.Log.Errorw("failed to send notification",
				"transaction_id", tx.TransactionID, "user_id", p.UserID, "kind", ev.Kind, "error", err)
		}
	}
	return nil
}

func (d *EventDispatcher) publish(ctx context.Context, ev models.TransactionEvent) error {
	if d.writer == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "transaction_id", ev.Transaction.TransactionID)
		return nil
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", ev.Transaction.TransactionID, err)
	}
	msg := kafka.Message{
		Key:   []byte(ev.Transaction.TransactionID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(ev.Kind)},
		},
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), d.maxRetries), ctx)
	err = backoff.Retry(func() error {
		return d.writer.WriteMessages(ctx, msg)
	}, policy)
	if err != nil {
		logger.Log.Errorw("Failed to publish event to Kafka",
			"transaction_id", ev.Transaction.TransactionID, "kind", ev.Kind, "error", err)
		return err
	}
	logger.Log.Infow("Event published to Kafka", "transaction_id", ev.Transaction.TransactionID, "kind", ev.Kind)
	return nil
}
