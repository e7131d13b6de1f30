// internal/session/session_test.go
package session

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"bankist-ledger/internal/events"
	"bankist-ledger/internal/repository/memory"
	"bankist-ledger/internal/seed"
	"bankist-ledger/internal/service"
	"bankist-ledger/internal/util"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedger(t *testing.T) service.LedgerService {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := memory.NewAccountStore(seed.DefaultAccounts())
	require.NoError(t, err)
	return service.NewLedgerService(store, events.NewLogPublisher(logger), logger)
}

func TestLoginLogout(t *testing.T) {
	ctx := context.Background()
	s := New(newLedger(t))

	_, err := s.Current(ctx)
	assert.ErrorIs(t, err, util.ErrNotLoggedIn)

	acc, err := s.Login(ctx, "js", 1111)
	require.NoError(t, err)
	assert.Equal(t, "Jonas", acc.FirstName())
	assert.Equal(t, "js", s.Username())

	// A failed login keeps the previous account.
	_, err = s.Login(ctx, "jd", 9999)
	assert.ErrorIs(t, err, util.ErrAuthFailure)
	assert.Equal(t, "js", s.Username())

	s.Logout()
	assert.Equal(t, "", s.Username())
	assert.ErrorIs(t, s.Transfer(ctx, "jd", decimal.NewFromInt(1)), util.ErrNotLoggedIn)
	assert.ErrorIs(t, s.RequestLoan(ctx, decimal.NewFromInt(1)), util.ErrNotLoggedIn)
	_, err = s.Summary(ctx)
	assert.ErrorIs(t, err, util.ErrNotLoggedIn)
}

func TestToggleSort(t *testing.T) {
	ctx := context.Background()
	s := New(newLedger(t))
	_, err := s.Login(ctx, "js", 1111)
	require.NoError(t, err)

	before, err := s.Current(ctx)
	require.NoError(t, err)

	assert.True(t, s.ToggleSort())
	rows, err := s.DisplayMovements(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(-650).Equal(rows[0].Amount))
	assert.True(t, decimal.NewFromInt(3000).Equal(rows[len(rows)-1].Amount))

	assert.False(t, s.ToggleSort())
	rows, err = s.DisplayMovements(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(200).Equal(rows[0].Amount))

	after, err := s.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.Movements, after.Movements, "stored order must not change")
}

func TestLoginResetsSort(t *testing.T) {
	ctx := context.Background()
	s := New(newLedger(t))
	_, err := s.Login(ctx, "js", 1111)
	require.NoError(t, err)
	s.ToggleSort()

	_, err = s.Login(ctx, "jd", 2222)
	require.NoError(t, err)
	assert.False(t, s.Sorted())
}

func TestSessionOperations(t *testing.T) {
	ctx := context.Background()
	ledger := newLedger(t)
	s := New(ledger)
	_, err := s.Login(ctx, "jd", 2222)
	require.NoError(t, err)

	require.NoError(t, s.Transfer(ctx, "ss", decimal.NewFromInt(720)))
	sum, err := s.Summary(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(11000).Equal(sum.Balance), "got %s", sum.Balance)

	require.NoError(t, s.RequestLoan(ctx, decimal.NewFromInt(85000)))
	assert.ErrorIs(t, s.RequestLoan(ctx, decimal.NewFromInt(850001)), util.ErrLoanRejected)
}

func TestSessionCloseAccount(t *testing.T) {
	ctx := context.Background()
	ledger := newLedger(t)
	s := New(ledger)
	_, err := s.Login(ctx, "stw", 3333)
	require.NoError(t, err)

	t.Run("OtherAccountRejected", func(t *testing.T) {
		assert.ErrorIs(t, s.CloseAccount(ctx, "ss", 4444), util.ErrAuthFailure)
		_, err := ledger.FindByUsername(ctx, "ss")
		assert.NoError(t, err)
	})

	t.Run("WrongPINRejected", func(t *testing.T) {
		assert.ErrorIs(t, s.CloseAccount(ctx, "stw", 1), util.ErrAuthFailure)
		assert.Equal(t, "stw", s.Username())
	})

	t.Run("ClosesAndLogsOut", func(t *testing.T) {
		require.NoError(t, s.CloseAccount(ctx, "stw", 3333))
		assert.Equal(t, "", s.Username())
		_, err := ledger.FindByUsername(ctx, "stw")
		assert.ErrorIs(t, err, util.ErrNotFound)

		_, err = s.Login(ctx, "stw", 3333)
		assert.ErrorIs(t, err, util.ErrAuthFailure)
	})
}

func TestCurrentAfterCloseElsewhere(t *testing.T) {
	ctx := context.Background()
	ledger := newLedger(t)
	s := New(ledger)
	_, err := s.Login(ctx, "ss", 4444)
	require.NoError(t, err)

	require.NoError(t, ledger.CloseAccount(ctx, "ss", 4444))
	_, err = s.Current(ctx)
	assert.ErrorIs(t, err, util.ErrNotFound)
}
