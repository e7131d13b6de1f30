// internal/seed/static.go
package seed

import (
	"context"

	"bankist-ledger/internal/domain"
	"bankist-ledger/internal/repository"

	"github.com/shopspring/decimal"
)

// Static serves a fixed set of account definitions.
type Static struct {
	defs []domain.AccountDefinition
}

// NewStatic returns a seed source for the given definitions.
// With no definitions it serves the four built-in Bankist accounts.
func NewStatic(defs ...domain.AccountDefinition) *Static {
	if len(defs) == 0 {
		defs = DefaultAccounts()
	}
	return &Static{defs: defs}
}

// LoadAccounts returns copies of the configured definitions.
func (s *Static) LoadAccounts(ctx context.Context) ([]domain.AccountDefinition, error) {
	out := make([]domain.AccountDefinition, len(s.defs))
	for i, d := range s.defs {
		d.Movements = append([]decimal.Decimal(nil), d.Movements...)
		out[i] = d
	}
	return out, nil
}

// DefaultAccounts returns the four demo accounts.
func DefaultAccounts() []domain.AccountDefinition {
	return []domain.AccountDefinition{
		{
			Owner:        "Jonas Schmedtmann",
			Movements:    amounts(200, 450, -400, 3000, -650, -130, 70, 1300),
			InterestRate: decimal.RequireFromString("1.2"),
			PIN:          1111,
		},
		{
			Owner:        "Jessica Davis",
			Movements:    amounts(5000, 3400, -150, -790, -3210, -1000, 8500, -30),
			InterestRate: decimal.RequireFromString("1.5"),
			PIN:          2222,
		},
		{
			Owner:        "Steven Thomas Williams",
			Movements:    amounts(200, -200, 340, -300, -20, 50, 400, -460),
			InterestRate: decimal.RequireFromString("0.7"),
			PIN:          3333,
		},
		{
			Owner:        "Sarah Smith",
			Movements:    amounts(430, 1000, 700, 50, 90),
			InterestRate: decimal.NewFromInt(1),
			PIN:          4444,
		},
	}
}

func amounts(values ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromInt(v)
	}
	return out
}

var _ repository.SeedRepository = (*Static)(nil)
