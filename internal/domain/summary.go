// internal/domain/summary.go
package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

// MovementKind classifies a movement for display.
type MovementKind string

const (
	MovementDeposit    MovementKind = "deposit"
	MovementWithdrawal MovementKind = "withdrawal"
)

var (
	hundred = decimal.NewFromInt(100)
	// minInterest is the smallest per-deposit interest that is counted.
	minInterest = decimal.NewFromInt(1)
)

// Summary holds the figures derived from an account's movements.
type Summary struct {
	Balance  decimal.Decimal `json:"balance"`
	Income   decimal.Decimal `json:"income"`
	Expense  decimal.Decimal `json:"expense"` // Absolute value of all withdrawals
	Interest decimal.Decimal `json:"interest"`
}

// DisplayMovement is one row of a movement listing.
type DisplayMovement struct {
	Index  int             `json:"index"` // 1-based position in the listed order
	Type   MovementKind    `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// Balance returns the sum of all movements.
func Balance(movements []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		total = total.Add(m)
	}
	return total
}

// TotalIncome returns the sum of all deposits.
func TotalIncome(movements []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		if m.IsPositive() {
			total = total.Add(m)
		}
	}
	return total
}

// TotalExpense returns the absolute value of the sum of all withdrawals.
func TotalExpense(movements []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		if m.IsNegative() {
			total = total.Add(m)
		}
	}
	return total.Abs()
}

// QualifyingInterest sums deposit*rate/100 over every deposit whose interest is at least 1.
func QualifyingInterest(movements []decimal.Decimal, rate decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		if !m.IsPositive() {
			continue
		}
		interest := m.Mul(rate).Div(hundred)
		if interest.GreaterThanOrEqual(minInterest) {
			total = total.Add(interest)
		}
	}
	return total
}

// Summarize computes every summary figure at once.
func Summarize(movements []decimal.Decimal, rate decimal.Decimal) Summary {
	return Summary{
		Balance:  Balance(movements),
		Income:   TotalIncome(movements),
		Expense:  TotalExpense(movements),
		Interest: QualifyingInterest(movements, rate),
	}
}

// MovementType reports whether amount is a deposit or a withdrawal.
func MovementType(amount decimal.Decimal) MovementKind {
	if amount.IsPositive() {
		return MovementDeposit
	}
	return MovementWithdrawal
}

// DisplayOrder lists movements chronologically, or by ascending amount when sorted is set.
// The input slice is never reordered.
func DisplayOrder(movements []decimal.Decimal, sorted bool) []DisplayMovement {
	movs := slices.Clone(movements)
	if sorted {
		slices.SortStableFunc(movs, func(a, b decimal.Decimal) int { return a.Cmp(b) })
	}
	out := make([]DisplayMovement, len(movs))
	for i, m := range movs {
		out[i] = DisplayMovement{Index: i + 1, Type: MovementType(m), Amount: m}
	}
	return out
}
