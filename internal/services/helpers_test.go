package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-remit-wallet/internal/locker"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
	"github.com/sbilibin2017/gw-remit-wallet/internal/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// staticRates serves fixed rate tables keyed by base currency.
type staticRates struct {
	mu    sync.Mutex
	rates map[string]map[string]decimal.Decimal
	calls int
}

func (s *staticRates) FetchRates(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	r, ok := s.rates[base]
	if !ok {
		return nil, fmt.Errorf("%w: base %s", models.ErrRateUnavailable, base)
	}
	return r, nil
}

// outboxLog reads the lifecycle events committed to the memory outbox.
type outboxLog struct {
	store *repositories.MemoryStore
}

func (o outboxLog) statuses() []models.TransactionStatus {
	var out []models.TransactionStatus
	for _, e := range o.store.OutboxEvents() {
		ev, err := e.Event()
		if err != nil {
			panic(err)
		}
		out = append(out, ev.Transaction.Status)
	}
	return out
}

type sliceQueue struct {
	mu   sync.Mutex
	jobs []models.SettlementJob
	err  error
}

func (q *sliceQueue) Enqueue(ctx context.Context, job models.SettlementJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *sliceQueue) drain() []models.SettlementJob {
	q.mu.Lock()
	defer q.mu.Unlock()
	jobs := q.jobs
	q.jobs = nil
	return jobs
}

type fixture struct {
	store   *repositories.MemoryStore
	users   *repositories.MemoryUserDirectory
	rates   *staticRates
	ledger  *LedgerService
	oracle  *ConversionOracle
	limits  *LimitPolicy
	wallets *WalletService
	svc     *TransactionService
	queue   *sliceQueue
	events  outboxLog
	deps    TransactionDeps
}

type account struct {
	user   models.UserRef
	wallet *models.Wallet
}

func newFixture(t *testing.T, gateway PaymentGateway) *fixture {
	t.Helper()

	f := &fixture{
		store: repositories.NewMemoryStore(),
		users: repositories.NewMemoryUserDirectory(),
		rates: &staticRates{rates: map[string]map[string]decimal.Decimal{
			"USD": {"EUR": dec("0.9"), "GBP": dec("0.8"), "INR": dec("83")},
			"EUR": {"USD": dec("1.111111")},
		}},
		queue: &sliceQueue{},
	}
	f.events = outboxLog{store: f.store}
	l := locker.NewLocal()
	f.ledger = NewLedgerService(f.store, f.store, l)
	f.oracle = NewConversionOracle(f.rates, repositories.NewMemoryRateCache(), OracleConfig{
		FeeRate:    dec("0.02"),
		RateTTL:    models.DefaultRateTTL,
		MaxRetries: 1,
	})
	f.limits = NewLimitPolicy(f.store, f.store, f.oracle)
	f.wallets = NewWalletService(f.store, f.ledger, models.USD, nil)
	f.deps = TransactionDeps{
		Transactions: repositories.MemoryTransactionStore{MemoryStore: f.store},
		Wallets:      f.store,
		Users:        f.users,
		Ledger:       f.ledger,
		Limits:       f.limits,
		Oracle:       f.oracle,
		Gateway:      gateway,
		Outbox:       f.store,
		Locker:       l,
		Transactor:   f.store,
		Queue:        f.queue,
	}
	f.svc = NewTransactionService(f.deps, TransactionConfig{})
	return f
}

// rebuild replaces the service with one whose collaborators went through
// tune, keeping the fixture's store and clock.
func (f *fixture) rebuild(tune func(d *TransactionDeps)) {
	tune(&f.deps)
	now := f.svc.now
	f.svc = NewTransactionService(f.deps, TransactionConfig{})
	f.svc.now = now
}

// failingCreate rejects every insert after the reservation was made.
type failingCreate struct {
	TransactionStore
	err error
}

func (s failingCreate) Create(ctx context.Context, t *models.Transaction) error {
	return s.err
}

// addAccount registers an approved user with a funded wallet. Limits can be
// adjusted through tune before the wallet is stored.
func (f *fixture) addAccount(t *testing.T, name string, funds map[string]string, tune ...func(w *models.Wallet)) account {
	t.Helper()
	ctx := context.Background()

	u := models.UserRef{
		UserID:    uuid.New(),
		Name:      name,
		Email:     name + "@example.com",
		Phone:     "+1555" + name,
		KYCStatus: models.KYCApproved,
	}
	f.users.Add(u)

	w := models.NewWallet(u.UserID, models.USD, models.SeedCurrencies, f.svc.now())
	for _, fn := range tune {
		fn(w)
	}
	_, err := f.store.Create(ctx, w)
	require.NoError(t, err)

	for cur, amount := range funds {
		require.NoError(t, f.ledger.Credit(ctx, w.WalletID, cur, dec(amount)))
	}
	return account{user: u, wallet: w}
}

func (f *fixture) balance(t *testing.T, a account, currency string) models.Balance {
	t.Helper()
	b, err := f.ledger.GetBalance(context.Background(), a.wallet.WalletID, currency)
	require.NoError(t, err)
	return b
}

func (f *fixture) settleAll(t *testing.T) {
	t.Helper()
	for _, job := range f.queue.drain() {
		require.NoError(t, f.svc.ProcessSettlement(context.Background(), job))
	}
}

func (f *fixture) tx(t *testing.T, id string) *models.Transaction {
	t.Helper()
	tx, err := f.store.GetTransaction(context.Background(), id)
	require.NoError(t, err)
	return tx
}
