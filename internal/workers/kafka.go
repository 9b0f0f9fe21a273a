package workers

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/sbilibin2017/gw-remit-wallet/internal/logger"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -destination=mocks_test.go -package=workers github.com/sbilibin2017/gw-remit-wallet/internal/workers MessageWriter,MessageReader

// MessageWriter produces settlement jobs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
}

// MessageReader consumes settlement jobs with explicit commits.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)         // Returns the next message without committing it
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error // Commits consumed offsets
}

// KafkaQueue is a settlement queue backed by a Kafka topic. Offsets are
// committed only after the handler finished, so a crash redelivers the job.
type KafkaQueue struct {
	writer  MessageWriter
	reader  MessageReader
	handler Handler
	retries uint64
	opts    options

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func NewKafkaQueue(writer MessageWriter, reader MessageReader, retries uint64, handler Handler, opts ...Option) *KafkaQueue {
	return &KafkaQueue{
		writer:  writer,
		reader:  reader,
		handler: handler,
		retries: retries,
		opts:    buildOptions(opts),
		done:    make(chan struct{}),
	}
}

// Enqueue publishes the job keyed by transaction id so redeliveries of one
// transaction stay on one partition.
func (q *KafkaQueue) Enqueue(ctx context.Context, job models.SettlementJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return q.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(job.TransactionID),
		Value: data,
	})
}

// Start runs the consumer loop in the background.
func (q *KafkaQueue) Start(ctx context.Context) {
	ctx, q.cancel = context.WithCancel(ctx)
	go func() {
		defer close(q.done)
		q.Run(ctx)
	}()
	logger.Log.Infow("settlement consumer started")
}

// Stop cancels the consumer loop and waits for it to return.
func (q *KafkaQueue) Stop() {
	q.once.Do(func() {
		if q.cancel == nil {
			close(q.done)
			return
		}
		q.cancel()
		<-q.done
		logger.Log.Infow("settlement consumer stopped")
	})
}

// Run consumes until ctx is cancelled. Fetch errors are retried with backoff.
func (q *KafkaQueue) Run(ctx context.Context) {
	fetchBackOff := newBackOff()
	for {
		msg, err := q.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return
			}
			wait := fetchBackOff.NextBackOff()
			logger.Log.Errorw("kafka fetch failed", "backoff", wait, "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
			continue
		}
		fetchBackOff.Reset()

		var job models.SettlementJob
		if err := json.Unmarshal(msg.Value, &job); err != nil || job.TransactionID == "" {
			logger.Log.Errorw("malformed settlement job skipped", "offset", msg.Offset, "partition", msg.Partition, "error", err)
			q.commit(ctx, msg)
			continue
		}

		if err := handle(ctx, q.handler, q.retries, q.opts.giveUp, job, "partition", msg.Partition, "offset", msg.Offset); err != nil {
			if ctx.Err() != nil {
				return
			}
			// Requeue at the tail so one stuck transaction does not block the partition.
			if err := q.Enqueue(ctx, job); err != nil {
				logger.Log.Errorw("settlement requeue failed", "transaction_id", job.TransactionID, "error", err)
				continue
			}
		}
		q.commit(ctx, msg)
	}
}

func (q *KafkaQueue) commit(ctx context.Context, msg kafka.Message) {
	if err := q.reader.CommitMessages(ctx, msg); err != nil {
		logger.Log.Errorw("kafka commit failed", "offset", msg.Offset, "partition", msg.Partition, "error", err)
	}
}
