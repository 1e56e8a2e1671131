package pipeline

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/midwestsb/autobooks/internal/bank"
	"github.com/midwestsb/autobooks/internal/classify"
	"github.com/midwestsb/autobooks/internal/ledger"
	"github.com/midwestsb/autobooks/internal/llm"
	"github.com/midwestsb/autobooks/pkg/logger"
	"github.com/midwestsb/autobooks/pkg/money"
)

type mockTxRepo struct {
	mock.Mock
}

func (m *mockTxRepo) List(ctx context.Context, f bank.Filter, limit int) ([]*bank.Transaction, error) {
	args := m.Called(ctx, f, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*bank.Transaction), args.Error(1)
}

func (m *mockTxRepo) Get(ctx context.Context, name string) (*bank.Transaction, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bank.Transaction), args.Error(1)
}

func (m *mockTxRepo) CountByStatus(ctx context.Context, status bank.Status) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func (m *mockTxRepo) UpdateStatus(ctx context.Context, name string, status bank.Status, errDescription string) error {
	args := m.Called(ctx, name, status, errDescription)
	return args.Error(0)
}

func (m *mockTxRepo) SaveRecommendation(ctx context.Context, name string, aiResult string, entries []bank.RecommendedEntry) error {
	args := m.Called(ctx, name, aiResult, entries)
	return args.Error(0)
}

type mockAI struct {
	mock.Mock
}

func (m *mockAI) ClassifyExpenses(ctx context.Context, reqs []llm.Request) ([]classify.AIResult, error) {
	args := m.Called(ctx, reqs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]classify.AIResult), args.Error(1)
}

func (m *mockAI) ClassifyRevenues(ctx context.Context, reqs []llm.Request) ([]classify.AIResult, error) {
	args := m.Called(ctx, reqs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]classify.AIResult), args.Error(1)
}

// mockLedger records every posted entry in order.
type mockLedger struct {
	mock.Mock

	mu      sync.Mutex
	entries []*ledger.JournalEntry
}

func (m *mockLedger) PostEntry(ctx context.Context, entry *ledger.JournalEntry) (uuid.UUID, error) {
	args := m.Called(ctx, entry)
	if args.Error(1) == nil {
		m.mu.Lock()
		m.entries = append(m.entries, entry)
		m.mu.Unlock()
	}
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockLedger) posted() []*ledger.JournalEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries
}

type mockHints struct {
	mock.Mock
}

func (m *mockHints) Hint(ctx context.Context, counterparty string) (string, error) {
	args := m.Called(ctx, counterparty)
	return args.String(0), args.Error(1)
}

func (m *mockHints) Confirm(ctx context.Context, counterparty, account string) error {
	args := m.Called(ctx, counterparty, account)
	return args.Error(0)
}

// recordSink captures progress events for assertions.
type recordSink struct {
	mu     sync.Mutex
	events []Progress
}

func (r *recordSink) Publish(_ context.Context, p Progress) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, p)
	return nil
}

func (r *recordSink) all() []Progress {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events
}

func testLogger() *logger.Logger {
	return logger.New("test", io.Discard)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.PollInterval = 10 * time.Millisecond
	return cfg
}

func newTestService(t *testing.T, repo *mockTxRepo, ai *mockAI, poster *mockLedger, hints VendorHints, sink ProgressSink) *Service {
	t.Helper()
	svc, err := NewService(testConfig(), repo, ai, poster, hints, sink, testLogger())
	require.NoError(t, err)
	return svc
}

// emptyOtherAccounts stubs List to return nothing for every account filter
// not explicitly registered before it.
func emptyOtherAccounts(repo *mockTxRepo) {
	repo.On("List", mock.Anything, mock.Anything, mock.Anything).
		Return([]*bank.Transaction{}, nil)
}

func pendingTx(name, account, counterparty string, amount money.Cents, kind bank.TransferKind) *bank.Transaction {
	return &bank.Transaction{
		Name:            name,
		Amount:          amount,
		CreatedAt:       time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC),
		Counterparty:    counterparty,
		Kind:            kind,
		AccountNickname: account,
		UpstreamStatus:  bank.UpstreamStatusSent,
		Status:          bank.StatusPending,
	}
}
