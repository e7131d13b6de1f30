// internal/repository/account_repo.go
package repository

import (
	"context"

	"bankist-ledger/internal/domain"

	"github.com/shopspring/decimal"
)

// Posting is a single movement to append to one account.
type Posting struct {
	Username string
	Amount   decimal.Decimal
}

// AccountRepository defines the interface for account data operations.
// Returned accounts are copies; mutating them never changes stored state.
type AccountRepository interface {
	// List returns every account in insertion order.
	List(ctx context.Context) ([]*domain.Account, error)
	// GetByUsername retrieves an account by its derived username.
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	// GetByOwner retrieves the first account whose owner name matches exactly.
	GetByOwner(ctx context.Context, owner string) (*domain.Account, error)
	// AppendMovements applies all postings or none of them.
	AppendMovements(ctx context.Context, postings ...Posting) error
	// Delete removes an account permanently.
	Delete(ctx context.Context, username string) error
}

// SeedRepository supplies the account definitions a ledger starts from.
type SeedRepository interface {
	LoadAccounts(ctx context.Context) ([]domain.AccountDefinition, error)
}
