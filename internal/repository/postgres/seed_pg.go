// internal/repository/postgres/seed_pg.go
package postgres

import (
	"context"
	"fmt"

	"bankist-ledger/internal/domain"
	"bankist-ledger/internal/repository"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// seedRow mirrors one row of the accounts seed table.
type seedRow struct {
	Owner        string          `db:"owner"`
	Movements    pq.StringArray  `db:"movements"` // numeric[] read in text form, oldest first
	InterestRate decimal.Decimal `db:"interest_rate"`
	PIN          int             `db:"pin"`
}

// SeedRepository implements repository.SeedRepository for PostgreSQL.
// It only reads; ledger state is never written back.
type SeedRepository struct {
	q repository.DBExecutor
}

// NewSeedRepository creates a new SeedRepository reading through q (usually *sqlx.DB).
func NewSeedRepository(q repository.DBExecutor) *SeedRepository {
	return &SeedRepository{q: q}
}

// LoadAccounts reads every seed account ordered by position.
func (r *SeedRepository) LoadAccounts(ctx context.Context) ([]domain.AccountDefinition, error) {
	rows := []seedRow{}
	query := `SELECT owner, movements, interest_rate, pin FROM accounts ORDER BY position`
	if err := r.q.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to load seed accounts: %w", err)
	}

	defs := make([]domain.AccountDefinition, 0, len(rows))
	for _, row := range rows {
		def, err := row.definition()
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func (row seedRow) definition() (domain.AccountDefinition, error) {
	movements := make([]decimal.Decimal, len(row.Movements))
	for i, raw := range row.Movements {
		m, err := decimal.NewFromString(raw)
		if err != nil {
			return domain.AccountDefinition{}, fmt.Errorf("invalid movement %q for owner '%s': %w", raw, row.Owner, err)
		}
		movements[i] = m
	}
	return domain.AccountDefinition{
		Owner:        row.Owner,
		Movements:    movements,
		InterestRate: row.InterestRate,
		PIN:          row.PIN,
	}, nil
}

var _ repository.SeedRepository = (*SeedRepository)(nil)
