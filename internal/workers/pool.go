package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sbilibin2017/gw-remit-wallet/internal/logger"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
)

// ErrQueueClosed is returned by Enqueue after Stop.
var ErrQueueClosed = errors.New("settlement queue closed")

// Handler settles one job. A returned error is retried.
type Handler func(ctx context.Context, job models.SettlementJob) error

// GiveUpHandler receives a job whose retries ran out, together with the last
// error. A nil return means the job is dealt with and must not be retried.
type GiveUpHandler func(ctx context.Context, job models.SettlementJob, cause error) error

// Option configures a Pool or a KafkaQueue.
type Option func(*options)

type options struct {
	giveUp GiveUpHandler
}

// WithGiveUp installs the handler for jobs that exhausted their retries.
func WithGiveUp(h GiveUpHandler) Option {
	return func(o *options) {
		o.giveUp = h
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Pool is an in-process settlement queue served by a fixed set of goroutines.
type Pool struct {
	jobs    chan models.SettlementJob
	handler Handler
	workers int
	retries uint64
	opts    options

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewPool creates a pool of workers goroutines with a buffer of queueSize jobs.
func NewPool(workers, queueSize int, retries uint64, handler Handler, opts ...Option) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	return &Pool{
		jobs:    make(chan models.SettlementJob, queueSize),
		handler: handler,
		workers: workers,
		retries: retries,
		opts:    buildOptions(opts),
	}
}

// Start launches the workers. They run until Stop drains the queue.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			for job := range p.jobs {
				handle(ctx, p.handler, p.retries, p.opts.giveUp, job, "worker", id)
			}
		}(i)
	}
	logger.Log.Infow("settlement pool started", "workers", p.workers)
}

// Enqueue blocks until the job is buffered or ctx is done.
func (p *Pool) Enqueue(ctx context.Context, job models.SettlementJob) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrQueueClosed
	}
	select {
	case p.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop refuses new jobs and waits for queued ones to finish.
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.jobs)
	}
	p.mu.Unlock()

	p.wg.Wait()
	logger.Log.Infow("settlement pool stopped")
}

func handle(ctx context.Context, h Handler, retries uint64, giveUp GiveUpHandler, job models.SettlementJob, keysAndValues ...any) error {
	policy := backoff.WithContext(backoff.WithMaxRetries(newBackOff(), retries), ctx)
	err := backoff.RetryNotify(func() error {
		return h(ctx, job)
	}, policy, func(err error, d time.Duration) {
		logger.Log.Warnw("settlement attempt failed, retrying",
			append([]any{"transaction_id", job.TransactionID, "backoff", d, "error", err}, keysAndValues...)...)
	})
	if err != nil {
		logger.Log.Errorw("settlement gave up",
			append([]any{"transaction_id", job.TransactionID, "error", err}, keysAndValues...)...)
		if giveUp == nil || ctx.Err() != nil {
			return err
		}
		if giveUpErr := giveUp(ctx, job, err); giveUpErr != nil {
			logger.Log.Errorw("abandoned settlement not recorded",
				append([]any{"transaction_id", job.TransactionID, "error", giveUpErr}, keysAndValues...)...)
			return err
		}
		return nil
	}
	return nil
}

func newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = 0
	return b
}
