// internal/repository/memory/account_store.go
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"bankist-ledger/internal/domain"
	"bankist-ledger/internal/repository"
	"bankist-ledger/internal/util"
)

// AccountStore is an in-memory implementation of repository.AccountRepository.
// Accounts keep their insertion order; every read returns copies.
type AccountStore struct {
	mu       sync.Mutex
	accounts []*domain.Account
}

// NewAccountStore builds a store from seed definitions, deriving each username.
// Two definitions that derive the same username are rejected with util.ErrDuplicateUsername.
func NewAccountStore(defs []domain.AccountDefinition) (*AccountStore, error) {
	s := &AccountStore{accounts: make([]*domain.Account, 0, len(defs))}
	seen := make(map[string]string, len(defs))
	for _, def := range defs {
		acc := domain.NewAccount(def)
		if prev, ok := seen[acc.Username]; ok {
			return nil, fmt.Errorf("%q and %q both derive %q: %w", prev, acc.Owner, acc.Username, util.ErrDuplicateUsername)
		}
		seen[acc.Username] = acc.Owner
		s.accounts = append(s.accounts, acc)
	}
	return s, nil
}

// List returns a copy of every account in insertion order.
func (s *AccountStore) List(ctx context.Context) ([]*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Account, len(s.accounts))
	for i, a := range s.accounts {
		out[i] = a.Clone()
	}
	return out, nil
}

// GetByUsername retrieves a copy of the account with the given username.
func (s *AccountStore) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(username)
	if i < 0 {
		return nil, util.ErrNotFound
	}
	return s.accounts[i].Clone(), nil
}

// GetByOwner retrieves a copy of the first account owned by owner.
func (s *AccountStore) GetByOwner(ctx context.Context, owner string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.accounts, func(a *domain.Account) bool { return a.Owner == owner })
	if i < 0 {
		return nil, util.ErrNotFound
	}
	return s.accounts[i].Clone(), nil
}

// AppendMovements appends every posting, or none if any target account is missing.
func (s *AccountStore) AppendMovements(ctx context.Context, postings ...repository.Posting) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	targets := make([]*domain.Account, len(postings))
	for i, p := range postings {
		idx := s.indexOf(p.Username)
		if idx < 0 {
			return fmt.Errorf("append movements to %q: %w", p.Username, util.ErrNotFound)
		}
		targets[i] = s.accounts[idx]
	}
	for i, p := range postings {
		targets[i].Movements = append(targets[i].Movements, p.Amount)
	}
	return nil
}

// Delete removes the account with the given username.
func (s *AccountStore) Delete(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(username)
	if i < 0 {
		return util.ErrNotFound
	}
	s.accounts = slices.Delete(s.accounts, i, i+1)
	return nil
}

func (s *AccountStore) indexOf(username string) int {
	return slices.IndexFunc(s.accounts, func(a *domain.Account) bool { return a.Username == username })
}

// Compile-time check: ensure AccountStore implements AccountRepository interface
var _ repository.AccountRepository = (*AccountStore)(nil)
