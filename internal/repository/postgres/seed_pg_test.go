// internal/repository/postgres/seed_pg_test.go
package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func TestLoadAccounts(t *testing.T) {
	t.Run("MapsRows", func(t *testing.T) {
		ctx := context.Background()
		q := new(MockDBExecutor)
		q.On("SelectContext", ctx, mock.AnythingOfType("*[]postgres.seedRow"), mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				dest := args.Get(1).(*[]seedRow)
				*dest = []seedRow{
					{Owner: "Jessica Davis", Movements: pq.StringArray{"5000", "-150.50"}, InterestRate: decimal.RequireFromString("1.5"), PIN: 2222},
					{Owner: "Sarah Smith", Movements: pq.StringArray{}, InterestRate: decimal.NewFromInt(1), PIN: 4444},
				}
			}).
			Return(nil).Once()

		defs, err := NewSeedRepository(q).LoadAccounts(ctx)
		require.NoError(t, err)
		require.Len(t, defs, 2)
		assert.Equal(t, "Jessica Davis", defs[0].Owner)
		assert.Equal(t, 2222, defs[0].PIN)
		require.Len(t, defs[0].Movements, 2)
		assert.True(t, decimal.RequireFromString("-150.5").Equal(defs[0].Movements[1]))
		assert.Empty(t, defs[1].Movements)

		q.AssertExpectations(t)
	})

	t.Run("QueryError", func(t *testing.T) {
		ctx := context.Background()
		q := new(MockDBExecutor)
		boom := errors.New("connection refused")
		q.On("SelectContext", ctx, mock.Anything, mock.Anything, mock.Anything).Return(boom).Once()

		_, err := NewSeedRepository(q).LoadAccounts(ctx)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("InvalidMovement", func(t *testing.T) {
		ctx := context.Background()
		q := new(MockDBExecutor)
		q.On("SelectContext", ctx, mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				dest := args.Get(1).(*[]seedRow)
				*dest = []seedRow{{Owner: "Bad Row", Movements: pq.StringArray{"abc"}}}
			}).
			Return(nil).Once()

		_, err := NewSeedRepository(q).LoadAccounts(ctx)
		assert.Error(t, err)
	})
}
