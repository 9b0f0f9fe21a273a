package repositories

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
	"github.com/shopspring/decimal"
)

// MemoryStore keeps wallets, balances and transactions in process memory.
// It backs local runs and service tests.
type MemoryStore struct {
	mu           sync.RWMutex
	wallets      map[uuid.UUID]*models.Wallet
	walletByUser map[uuid.UUID]uuid.UUID
	balances     map[uuid.UUID]map[string]models.Balance
	txs          map[string]*models.Transaction
	idempotency  map[string]string
	outbox       []*models.OutboxEvent
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		wallets:      make(map[uuid.UUID]*models.Wallet),
		walletByUser: make(map[uuid.UUID]uuid.UUID),
		balances:     make(map[uuid.UUID]map[string]models.Balance),
		txs:          make(map[string]*models.Transaction),
		idempotency:  make(map[string]string),
	}
}

type memoryTxKey struct{}

// undoLog collects the inverse of every write made inside WithinTx.
type undoLog struct {
	undo []func()
}

// WithinTx runs fn and, when it fails, reverts the writes fn made through the
// store in reverse order. Nested calls join the outer transaction. Writes are
// visible to other callers before commit.
func (s *MemoryStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(memoryTxKey{}).(*undoLog); ok {
		return fn(ctx)
	}

	log := &undoLog{}
	if err := fn(context.WithValue(ctx, memoryTxKey{}, log)); err != nil {
		s.mu.Lock()
		for i := len(log.undo) - 1; i >= 0; i-- {
			log.undo[i]()
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// journal registers undo for the transaction in ctx. Callers hold s.mu.
func journal(ctx context.Context, undo func()) {
	if log, ok := ctx.Value(memoryTxKey{}).(*undoLog); ok {
		log.undo = append(log.undo, undo)
	}
}

func copyWallet(w *models.Wallet) *models.Wallet {
	c := *w
	c.TotalAvailable = make(models.AvailableSnapshot, len(w.TotalAvailable))
	for k, v := range w.TotalAvailable {
		c.TotalAvailable[k] = v
	}
	c.Balances = nil
	if w.PinHash != nil {
		h := *w.PinHash
		c.PinHash = &h
	}
	return &c
}

func copyTransaction(t *models.Transaction) *models.Transaction {
	c := *t
	c.Timeline = append([]models.TimelineEntry(nil), t.Timeline...)
	if t.ExchangeDetails != nil {
		d := *t.ExchangeDetails
		c.ExchangeDetails = &d
	}
	if t.SettledAt != nil {
		s := *t.SettledAt
		c.SettledAt = &s
	}
	return &c
}

// Wallets

func (s *MemoryStore) Create(ctx context.Context, w *models.Wallet) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.walletByUser[w.UserID]; ok {
		return false, nil
	}
	s.wallets[w.WalletID] = copyWallet(w)
	s.walletByUser[w.UserID] = w.WalletID
	slots := make(map[string]models.Balance, len(w.Balances))
	for c := range w.Balances {
		slots[c] = models.NewBalance(c)
	}
	s.balances[w.WalletID] = slots
	journal(ctx, func() {
		delete(s.wallets, w.WalletID)
		delete(s.walletByUser, w.UserID)
		delete(s.balances, w.WalletID)
	})
	return true, nil
}

func (s *MemoryStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.walletByUser[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrWalletNotFound, userID)
	}
	return copyWallet(s.wallets[id]), nil
}

func (s *MemoryStore) GetByID(ctx context.Context, walletID uuid.UUID) (*models.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.wallets[walletID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrWalletNotFound, walletID)
	}
	return copyWallet(w), nil
}

func (s *MemoryStore) updateWallet(ctx context.Context, walletID uuid.UUID, fn func(w *models.Wallet)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.wallets[walletID]
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrWalletNotFound, walletID)
	}
	prev := copyWallet(w)
	journal(ctx, func() {
		available := w.TotalAvailable
		*w = *prev
		w.TotalAvailable = available
	})
	fn(w)
	w.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *MemoryStore) SaveLimitCounters(ctx context.Context, w *models.Wallet) error {
	return s.updateWallet(ctx, w.WalletID, func(stored *models.Wallet) {
		stored.DailySpent = w.DailySpent
		stored.MonthlySpent = w.MonthlySpent
		stored.LastResetDate = w.LastResetDate
	})
}

func (s *MemoryStore) SetPIN(ctx context.Context, walletID uuid.UUID, pinHash string) error {
	return s.updateWallet(ctx, walletID, func(w *models.Wallet) {
		w.PinHash = &pinHash
	})
}

func (s *MemoryStore) SetActive(ctx context.Context, walletID uuid.UUID, active bool) error {
	return s.updateWallet(ctx, walletID, func(w *models.Wallet) {
		w.IsActive = active
	})
}

// Balances

func (s *MemoryStore) GetBalance(ctx context.Context, walletID uuid.UUID, currency string) (models.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if b, ok := s.balances[walletID][currency]; ok {
		return b, nil
	}
	return models.NewBalance(currency), nil
}

func (s *MemoryStore) ListBalances(ctx context.Context, walletID uuid.UUID) (map[string]models.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]models.Balance, len(s.balances[walletID]))
	for c, b := range s.balances[walletID] {
		out[c] = b
	}
	return out, nil
}

func (s *MemoryStore) MutateBalance(ctx context.Context, walletID uuid.UUID, currency string, fn func(b *models.Balance) error) (models.Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.wallets[walletID]
	if !ok {
		return models.Balance{}, fmt.Errorf("%w: %s", models.ErrWalletNotFound, walletID)
	}

	prev, existed := s.balances[walletID][currency]
	b := prev
	if !existed {
		b = models.NewBalance(currency)
	}
	if err := fn(&b); err != nil {
		return models.Balance{}, err
	}
	if !existed {
		prev = models.NewBalance(currency)
	}
	dAvailable, dPending, dFrozen := b.Available.Sub(prev.Available), b.Pending.Sub(prev.Pending), b.Frozen.Sub(prev.Frozen)
	journal(ctx, func() {
		cur := s.balances[walletID][currency]
		cur.Available = cur.Available.Sub(dAvailable)
		cur.Pending = cur.Pending.Sub(dPending)
		cur.Frozen = cur.Frozen.Sub(dFrozen)
		if !existed && cur.Available.IsZero() && cur.Pending.IsZero() && cur.Frozen.IsZero() {
			delete(s.balances[walletID], currency)
			delete(w.TotalAvailable, currency)
			return
		}
		s.balances[walletID][currency] = cur
		w.TotalAvailable[currency] = cur.Available
	})

	if s.balances[walletID] == nil {
		s.balances[walletID] = make(map[string]models.Balance)
	}
	s.balances[walletID][currency] = b
	w.TotalAvailable[currency] = b.Available
	w.UpdatedAt = time.Now().UTC()
	return b, nil
}

// Transactions

func (s *MemoryStore) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.IdempotencyKey != "" {
		if _, ok := s.idempotency[t.IdempotencyKey]; ok {
			return fmt.Errorf("%w: %s", models.ErrIdempotencyConflict, t.IdempotencyKey)
		}
		s.idempotency[t.IdempotencyKey] = t.TransactionID
	}
	s.txs[t.TransactionID] = copyTransaction(t)
	journal(ctx, func() {
		delete(s.txs, t.TransactionID)
		if t.IdempotencyKey != "" {
			delete(s.idempotency, t.IdempotencyKey)
		}
	})
	return nil
}

func (s *MemoryStore) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.txs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrTransactionNotFound, id)
	}
	return copyTransaction(t), nil
}

func (s *MemoryStore) GetTransactionByIdempotencyKey(ctx context.Context, key string) (*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.idempotency[key]
	if !ok {
		return nil, nil
	}
	return copyTransaction(s.txs[id]), nil
}

func (s *MemoryStore) UpdateTransactionState(ctx context.Context, t *models.Transaction, expected models.TransactionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.txs[t.TransactionID]
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrTransactionNotFound, t.TransactionID)
	}
	if stored.Status != expected {
		return fmt.Errorf("%w: %s is no longer %s", models.ErrInvalidTransition, t.TransactionID, expected)
	}
	prev := copyTransaction(stored)
	journal(ctx, func() { s.txs[t.TransactionID] = prev })
	stored.Status = t.Status
	stored.Timeline = append([]models.TimelineEntry(nil), t.Timeline...)
	stored.RetryCount = t.RetryCount
	stored.FailureReason = t.FailureReason
	stored.ExternalReference = t.ExternalReference
	stored.SettledAt = t.SettledAt
	stored.UpdatedAt = t.UpdatedAt
	return nil
}

func (s *MemoryStore) SumLimitAmount(ctx context.Context, userID uuid.UUID, txType models.TransactionType, since time.Time) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, t := range s.txs {
		if t.Sender.UserID != userID || t.Type != txType || t.CreatedAt.Before(since) {
			continue
		}
		if t.Status == models.StatusCompleted || t.Status == models.StatusProcessing {
			total = total.Add(t.LimitAmount)
		}
	}
	return total, nil
}

func (s *MemoryStore) ListTransactions(ctx context.Context, f models.HistoryFilter) (*models.HistoryPage, error) {
	f.Normalize()

	s.mu.RLock()
	var matched []*models.Transaction
	for _, t := range s.txs {
		if !t.IsParty(f.UserID) {
			continue
		}
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.From != nil && t.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && t.CreatedAt.After(*f.To) {
			continue
		}
		matched = append(matched, copyTransaction(t))
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return strings.Compare(matched[i].TransactionID, matched[j].TransactionID) > 0
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	summary := map[models.TransactionStatus]*models.StatusSummary{}
	for _, t := range matched {
		sum, ok := summary[t.Status]
		if !ok {
			sum = &models.StatusSummary{Status: t.Status, TotalAmount: decimal.Zero}
			summary[t.Status] = sum
		}
		sum.Count++
		sum.TotalAmount = sum.TotalAmount.Add(t.Amount)
	}

	page := &models.HistoryPage{
		Transactions: []*models.Transaction{},
		Total:        len(matched),
		Page:         f.Page,
		Pages:        (len(matched) + f.Limit - 1) / f.Limit,
		Summary:      []models.StatusSummary{},
	}
	if off := f.Offset(); off < len(matched) {
		end := off + f.Limit
		if end > len(matched) {
			end = len(matched)
		}
		page.Transactions = matched[off:end]
	}
	for _, sum := range summary {
		page.Summary = append(page.Summary, *sum)
	}
	sort.Slice(page.Summary, func(i, j int) bool { return page.Summary[i].Status < page.Summary[j].Status })
	return page, nil
}

// Outbox

func (s *MemoryStore) AppendEvent(ctx context.Context, e *models.OutboxEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *e
	s.outbox = append(s.outbox, &c)
	journal(ctx, func() {
		for i, stored := range s.outbox {
			if stored.EventID == e.EventID {
				s.outbox = append(s.outbox[:i], s.outbox[i+1:]...)
				return
			}
		}
	})
	return nil
}

func (s *MemoryStore) ClaimPendingEvents(ctx context.Context, limit int, staleBefore time.Time) ([]*models.OutboxEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	var claimed []*models.OutboxEvent
	for _, e := range s.outbox {
		if len(claimed) == limit {
			break
		}
		stale := e.Status == models.OutboxProcessing && e.UpdatedAt.Before(staleBefore)
		if e.Status != models.OutboxPending && !stale {
			continue
		}
		e.Status = models.OutboxProcessing
		e.Attempts++
		e.UpdatedAt = now
		c := *e
		claimed = append(claimed, &c)
	}
	return claimed, nil
}

func (s *MemoryStore) MarkEventPublished(ctx context.Context, id uuid.UUID, at time.Time) error {
	return s.updateEvent(id, func(e *models.OutboxEvent) {
		e.Status = models.OutboxPublished
		e.PublishedAt = &at
		e.LastError = ""
	})
}

func (s *MemoryStore) MarkEventFailed(ctx context.Context, id uuid.UUID, reason string) error {
	return s.updateEvent(id, func(e *models.OutboxEvent) {
		e.Status = models.OutboxPending
		e.LastError = reason
	})
}

func (s *MemoryStore) updateEvent(id uuid.UUID, fn func(e *models.OutboxEvent)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.outbox {
		if e.EventID == id {
			fn(e)
			e.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return fmt.Errorf("outbox event %s not found", id)
}

// OutboxEvents returns copies of every stored event in insertion order.
func (s *MemoryStore) OutboxEvents() []models.OutboxEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.OutboxEvent, 0, len(s.outbox))
	for _, e := range s.outbox {
		out = append(out, *e)
	}
	return out
}

// MemoryTransactionStore adapts MemoryStore to the transaction store contract
// of the Postgres repository.
type MemoryTransactionStore struct {
	*MemoryStore
}

func (s MemoryTransactionStore) Create(ctx context.Context, t *models.Transaction) error {
	return s.CreateTransaction(ctx, t)
}

func (s MemoryTransactionStore) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	return s.GetTransaction(ctx, id)
}

func (s MemoryTransactionStore) GetByIdempotencyKey(ctx context.Context, key string) (*models.Transaction, error) {
	return s.GetTransactionByIdempotencyKey(ctx, key)
}

func (s MemoryTransactionStore) UpdateState(ctx context.Context, t *models.Transaction, expected models.TransactionStatus) error {
	return s.UpdateTransactionState(ctx, t, expected)
}

func (s MemoryTransactionStore) List(ctx context.Context, f models.HistoryFilter) (*models.HistoryPage, error) {
	return s.ListTransactions(ctx, f)
}

// MemoryUserDirectory is a fixed user directory.
type MemoryUserDirectory struct {
	mu    sync.RWMutex
	users map[uuid.UUID]models.UserRef
}

func NewMemoryUserDirectory(users ...models.UserRef) *MemoryUserDirectory {
	d := &MemoryUserDirectory{users: make(map[uuid.UUID]models.UserRef)}
	for _, u := range users {
		d.Add(u)
	}
	return d
}

func (d *MemoryUserDirectory) Add(u models.UserRef) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[u.UserID] = u
}

func (d *MemoryUserDirectory) FindByIdentifier(ctx context.Context, identifier string) (*models.UserRef, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	identifier = strings.TrimSpace(identifier)
	for _, u := range d.users {
		if (u.Email != "" && strings.EqualFold(u.Email, identifier)) || (u.Phone != "" && u.Phone == identifier) {
			found := u
			return &found, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", models.ErrRecipientNotFound, identifier)
}

func (d *MemoryUserDirectory) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserRef, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	u, ok := d.users[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrUserNotFound, userID)
	}
	return &u, nil
}

// MemoryRateCache keeps rate snapshots in process memory.
type MemoryRateCache struct {
	mu    sync.RWMutex
	snaps map[string]models.ExchangeRateSnapshot
}

func NewMemoryRateCache() *MemoryRateCache {
	return &MemoryRateCache{snaps: make(map[string]models.ExchangeRateSnapshot)}
}

func (c *MemoryRateCache) Get(ctx context.Context, base string) (*models.ExchangeRateSnapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap, ok := c.snaps[base]
	if !ok {
		return nil, nil
	}
	return &snap, nil
}

func (c *MemoryRateCache) Set(ctx context.Context, snap *models.ExchangeRateSnapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snaps[snap.Base] = *snap
	return nil
}
