package ledger

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/midwestsb/autobooks/internal/shared/errors"
	"github.com/midwestsb/autobooks/pkg/logger"
	"github.com/midwestsb/autobooks/pkg/money"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetAccount(ctx context.Context, name string) (*Account, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Account), args.Error(1)
}

func (m *mockRepo) ListLeafAccounts(ctx context.Context, roots []RootType) ([]*Account, error) {
	args := m.Called(ctx, roots)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Account), args.Error(1)
}

func (m *mockRepo) InsertEntry(ctx context.Context, entry *JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func balancedEntry() *JournalEntry {
	return &JournalEntry{
		ReferenceName: "tx-1",
		Lines: []Line{
			{Account: "MSB Trust", Debit: money.FromDollars(500, 0)},
			{Account: "MSB Operating", Credit: money.FromDollars(500, 0)},
		},
	}
}

func leaf(name string, root RootType) *Account {
	return &Account{Name: name, RootType: root}
}

func TestPostEntry(t *testing.T) {
	log := logger.New("test", io.Discard)

	t.Run("posts valid entry and assigns ID", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetAccount", mock.Anything, "MSB Trust").Return(leaf("MSB Trust", RootAsset), nil)
		repo.On("GetAccount", mock.Anything, "MSB Operating").Return(leaf("MSB Operating", RootAsset), nil)
		repo.On("InsertEntry", mock.Anything, mock.Anything).Return(nil).Once()

		svc := NewService(repo, log)
		entry := balancedEntry()

		id, err := svc.PostEntry(context.Background(), entry)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
		assert.Equal(t, id, entry.ID)
		assert.False(t, entry.PostingDate.IsZero())
		repo.AssertExpectations(t)
	})

	t.Run("rejects unbalanced entry before touching the chart", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, log)

		entry := balancedEntry()
		entry.Lines[1].Credit = money.FromDollars(400, 0)

		_, err := svc.PostEntry(context.Background(), entry)

		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUnbalanced))
		repo.AssertNotCalled(t, "GetAccount", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "InsertEntry", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown account", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetAccount", mock.Anything, "MSB Trust").Return(nil, ErrAccountNotFound)

		svc := NewService(repo, log)
		_, err := svc.PostEntry(context.Background(), balancedEntry())

		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeLedgerPosting))
		repo.AssertNotCalled(t, "InsertEntry", mock.Anything, mock.Anything)
	})

	t.Run("rejects group account", func(t *testing.T) {
		repo := new(mockRepo)
		group := &Account{Name: "MSB Trust", RootType: RootAsset, IsGroup: true}
		repo.On("GetAccount", mock.Anything, "MSB Trust").Return(group, nil)

		svc := NewService(repo, log)
		_, err := svc.PostEntry(context.Background(), balancedEntry())

		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeLedgerPosting))
		assert.ErrorIs(t, err, ErrGroupAccount)
	})

	t.Run("wraps repository failure", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetAccount", mock.Anything, mock.Anything).Return(leaf("x", RootAsset), nil)
		repo.On("InsertEntry", mock.Anything, mock.Anything).Return(assert.AnError)

		svc := NewService(repo, log)
		_, err := svc.PostEntry(context.Background(), balancedEntry())

		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeLedgerPosting))
	})
}

func TestChartExcerpt(t *testing.T) {
	repo := new(mockRepo)
	repo.On("ListLeafAccounts", mock.Anything, []RootType{RootExpense}).
		Return([]*Account{leaf("Office Supplies", RootExpense)}, nil)

	svc := NewService(repo, logger.New("test", io.Discard))
	accounts, err := svc.ChartExcerpt(context.Background(), []RootType{RootExpense})

	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Office Supplies", accounts[0].Name)
}
