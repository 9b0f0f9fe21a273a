package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-remit-wallet/internal/logger"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
)

// Outbox stores lifecycle events next to the status change they announce.
type Outbox interface {
	AppendEvent(ctx context.Context, e *models.OutboxEvent) error // Joins the ambient storage transaction
}

// OutboxStore is the relay side of the outbox.
type OutboxStore interface {
	ClaimPendingEvents(ctx context.Context, limit int, staleBefore time.Time) ([]*models.OutboxEvent, error) // Moves a batch to processing
	MarkEventPublished(ctx context.Context, id uuid.UUID, at time.Time) error                                // Records a delivery
	MarkEventFailed(ctx context.Context, id uuid.UUID, reason string) error                                   // Returns an event to pending
}

// EventPublisher delivers one event to the broker and the notifier.
type EventPublisher interface {
	Deliver(ctx context.Context, ev models.TransactionEvent) error // Fails when the broker did not accept the event
}

// OutboxConfig holds the relay tunables.
type OutboxConfig struct {
	BatchSize    int
	Interval     time.Duration
	ClaimTimeout time.Duration
}

// OutboxRelay polls the outbox and delivers committed events. An event stays
// in the outbox until the broker accepts it, so delivery is at least once.
type OutboxRelay struct {
	store     OutboxStore
	publisher EventPublisher
	cfg       OutboxConfig
	now       func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewOutboxRelay(store OutboxStore, publisher EventPublisher, cfg OutboxConfig) *OutboxRelay {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if cfg.ClaimTimeout <= 0 {
		cfg.ClaimTimeout = time.Minute
	}
	return &OutboxRelay{
		store:     store,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
		stop:      make(chan struct{}),
	}
}

// DispatchOnce delivers one batch and returns how many events were published.
func (r *OutboxRelay) DispatchOnce(ctx context.Context) int {
	events, err := r.store.ClaimPendingEvents(ctx, r.cfg.BatchSize, r.now().Add(-r.cfg.ClaimTimeout))
	if err != nil {
		logger.Log.Errorw("failed to claim outbox events", "error", err)
		return 0
	}

	published := 0
	for _, e := range events {
		if err := r.deliver(ctx, e); err != nil {
			logger.Log.Warnw("outbox delivery failed, event kept for retry",
				"event_id", e.EventID, "transaction_id", e.TransactionID, "attempts", e.Attempts, "error", err)
			if markErr := r.store.MarkEventFailed(ctx, e.EventID, err.Error()); markErr != nil {
				logger.Log.Errorw("failed to return outbox event to pending", "event_id", e.EventID, "error", markErr)
			}
			continue
		}
		if err := r.store.MarkEventPublished(ctx, e.EventID, r.now().UTC()); err != nil {
			logger.Log.Errorw("failed to mark outbox event published", "event_id", e.EventID, "error", err)
			continue
		}
		published++
	}
	return published
}

func (r *OutboxRelay) deliver(ctx context.Context, e *models.OutboxEvent) error {
	ev, err := e.Event()
	if err != nil {
		return err
	}
	return r.publisher.Deliver(ctx, ev)
}

// Start polls the outbox every Interval until Stop or ctx is done.
func (r *OutboxRelay) Start(ctx context.Context) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(r.cfg.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-r.stop:
				return
			case <-ticker.C:
				for r.DispatchOnce(ctx) == r.cfg.BatchSize {
				}
			}
		}
	}()
	logger.Log.Infow("outbox relay started", "interval", r.cfg.Interval, "batch_size", r.cfg.BatchSize)
}

// Stop ends the polling loop and waits for the batch in flight.
func (r *OutboxRelay) Stop() {
	r.stopOnce.Do(func() {
		close(r.stop)
	})
	r.wg.Wait()
	logger.Log.Infow("outbox relay stopped")
}
