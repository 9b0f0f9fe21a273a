package facades

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-remit-wallet/internal/logger"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// RedisNotifier publishes user notifications to a Redis pub/sub channel read
// by the delivery service.
type RedisNotifier struct {
	client  *redis.Client
	channel string
	printer *message.Printer
	now     func() time.Time
}

// NewRedisNotifier creates a notifier publishing to channel.
func NewRedisNotifier(client *redis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{
		client:  client,
		channel: channel,
		printer: message.NewPrinter(language.English),
		now:     time.Now,
	}
}

// Notify publishes a message about tx to user.
func (n *RedisNotifier) Notify(ctx context.Context, user models.Party, kind models.EventKind, tx *models.Transaction) error {
	note := models.Notification{
		UserID:        user.UserID.String(),
		Kind:          kind,
		Title:         notificationTitle(kind, tx.Type),
		Body:          n.body(kind, user, tx),
		TransactionID: tx.TransactionID,
		CreatedAt:     n.now().UTC(),
	}

	payload, err := json.Marshal(note)
	if err != nil {
		return err
	}

	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		logger.Log.Errorw("failed to publish notification", "channel", n.channel, "transaction_id", tx.TransactionID, "error", err)
		return err
	}
	logger.Log.Infow("notification published", "channel", n.channel, "user_id", note.UserID, "kind", kind)
	return nil
}

// FormatMoney renders amount with its ISO code and grouped digits, e.g. "USD 1,234.50".
func (n *RedisNotifier) FormatMoney(amount float64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return n.printer.Sprintf("%.2f %s", amount, code)
	}
	return n.printer.Sprintf("%s %v", unit, number.Decimal(amount, number.Scale(2)))
}

func (n *RedisNotifier) body(kind models.EventKind, user models.Party, tx *models.Transaction) string {
	money := n.FormatMoney(tx.Amount.InexactFloat64(), tx.Currency)

	switch kind {
	case models.EventCompleted:
		if tx.Type == models.TypeSend && tx.Receiver.UserID == user.UserID {
			cur, amt := tx.CreditLeg()
			return fmt.Sprintf("You received %s from %s.", n.FormatMoney(amt.InexactFloat64(), cur), tx.Sender.Name)
		}
		return fmt.Sprintf("Your %s of %s has completed. Reference %s.", tx.Type, money, tx.TransactionID)
	case models.EventFailed:
		return fmt.Sprintf("Your %s of %s failed: %s. Reserved funds were returned.", tx.Type, money, tx.FailureReason)
	case models.EventCancelled:
		return fmt.Sprintf("Your %s of %s was cancelled.", tx.Type, money)
	}
	return fmt.Sprintf("Transaction %s updated.", tx.TransactionID)
}

func notificationTitle(kind models.EventKind, txType models.TransactionType) string {
	switch kind {
	case models.EventCompleted:
		if txType == models.TypeDeposit {
			return "Deposit received"
		}
		return "Transaction completed"
	case models.EventFailed:
		return "Transaction failed"
	case models.EventCancelled:
		return "Transaction cancelled"
	}
	return "Transaction update"
}
