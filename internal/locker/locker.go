package locker

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Locker serializes work per key. Keys are independent: holding one never
// blocks another.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// LedgerKey is the critical section of one wallet currency slot.
func LedgerKey(walletID uuid.UUID, currency string) string {
	return fmt.Sprintf("ledger:%s:%s", walletID, currency)
}

// LimitsKey serializes limit checks of one user.
func LimitsKey(userID uuid.UUID) string {
	return fmt.Sprintf("limits:%s", userID)
}

// TransactionKey serializes status changes of one transaction.
func TransactionKey(txID string) string {
	return fmt.Sprintf("tx:%s", txID)
}

// Local is an in-process Locker backed by reference-counted mutexes.
type Local struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	ch   chan struct{}
	refs int
}

// NewLocal creates an empty in-process locker.
func NewLocal() *Local {
	return &Local{locks: make(map[string]*entry)}
}

// WithLock runs fn while holding key. Waiting is abandoned when ctx is done.
func (l *Local) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	e := l.acquireEntry(key)
	defer l.releaseEntry(key, e)

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("acquire lock %s: %w", key, ctx.Err())
	}
	defer func() { <-e.ch }()

	return fn(ctx)
}

func (l *Local) acquireEntry(key string) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.locks[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.locks[key] = e
	}
	e.refs++
	return e
}

func (l *Local) releaseEntry(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
}

// Len returns the number of keys currently held or awaited.
func (l *Local) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
