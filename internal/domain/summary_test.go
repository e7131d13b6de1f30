// internal/domain/summary_test.go
package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func movs(values ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromInt(v)
	}
	return out
}

func TestSummaryCalculator(t *testing.T) {
	history := movs(200, 450, -400, 3000, -650, -130, 70, 1300)

	t.Run("Balance", func(t *testing.T) {
		assert.True(t, decimal.NewFromInt(3840).Equal(Balance(history)), "got %s", Balance(history))
	})

	t.Run("TotalIncome", func(t *testing.T) {
		assert.True(t, decimal.NewFromInt(5020).Equal(TotalIncome(history)), "got %s", TotalIncome(history))
	})

	t.Run("TotalExpense", func(t *testing.T) {
		assert.True(t, decimal.NewFromInt(1180).Equal(TotalExpense(history)), "got %s", TotalExpense(history))
	})

	t.Run("EmptyHistory", func(t *testing.T) {
		assert.True(t, Balance(nil).IsZero())
		assert.True(t, TotalIncome(nil).IsZero())
		assert.True(t, TotalExpense(nil).IsZero())
		assert.True(t, QualifyingInterest(nil, decimal.NewFromFloat(1.2)).IsZero())
	})

	t.Run("InputNotMutated", func(t *testing.T) {
		before := append([]decimal.Decimal(nil), history...)
		_ = Summarize(history, decimal.NewFromFloat(1.2))
		assert.Equal(t, before, history)
	})
}

func TestQualifyingInterest(t *testing.T) {
	t.Run("DropsInterestBelowOne", func(t *testing.T) {
		got := QualifyingInterest(movs(100, 5), decimal.NewFromFloat(1.2))
		assert.True(t, decimal.RequireFromString("1.2").Equal(got), "got %s", got)
	})

	t.Run("KeepsExactlyOne", func(t *testing.T) {
		got := QualifyingInterest(movs(100), decimal.NewFromInt(1))
		assert.True(t, decimal.NewFromInt(1).Equal(got), "got %s", got)
	})

	t.Run("IgnoresWithdrawals", func(t *testing.T) {
		got := QualifyingInterest(movs(-1000, 500), decimal.NewFromInt(1))
		assert.True(t, decimal.NewFromInt(5).Equal(got), "got %s", got)
	})

	t.Run("SeedAccount", func(t *testing.T) {
		// Deposits 200, 450, 3000, 70, 1300 at 1.2%: 2.4 + 5.4 + 36 + (0.84 dropped) + 15.6
		got := QualifyingInterest(movs(200, 450, -400, 3000, -650, -130, 70, 1300), decimal.NewFromFloat(1.2))
		assert.True(t, decimal.RequireFromString("59.4").Equal(got), "got %s", got)
	})
}

func TestMovementType(t *testing.T) {
	assert.Equal(t, MovementDeposit, MovementType(decimal.NewFromInt(1)))
	assert.Equal(t, MovementWithdrawal, MovementType(decimal.NewFromInt(-1)))
	assert.Equal(t, MovementWithdrawal, MovementType(decimal.Zero))
}

func TestDisplayOrder(t *testing.T) {
	history := movs(200, -400, 3000, -650)

	t.Run("Chronological", func(t *testing.T) {
		rows := DisplayOrder(history, false)
		assert.Len(t, rows, 4)
		assert.Equal(t, 1, rows[0].Index)
		assert.True(t, decimal.NewFromInt(200).Equal(rows[0].Amount))
		assert.Equal(t, MovementDeposit, rows[0].Type)
		assert.Equal(t, MovementWithdrawal, rows[3].Type)
	})

	t.Run("SortedAscendingOnCopy", func(t *testing.T) {
		rows := DisplayOrder(history, true)
		want := movs(-650, -400, 200, 3000)
		for i, row := range rows {
			assert.True(t, want[i].Equal(row.Amount), "row %d: got %s", i, row.Amount)
			assert.Equal(t, i+1, row.Index)
		}
		assert.Equal(t, movs(200, -400, 3000, -650), history, "stored order must not change")
	})
}
