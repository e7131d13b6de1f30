// internal/session/session.go
package session

import (
	"context"
	"fmt"
	"sync"

	"bankist-ledger/internal/domain"
	"bankist-ledger/internal/service"
	"bankist-ledger/internal/util"

	"github.com/shopspring/decimal"
)

// Session tracks the logged-in account and the movement sort toggle.
// It holds the account's username, never the account itself.
type Session struct {
	mu       sync.Mutex
	ledger   service.LedgerService
	username string // Empty when logged out
	sorted   bool
}

// New creates a logged-out session bound to ledger.
func New(ledger service.LedgerService) *Session {
	return &Session{ledger: ledger}
}

// Login authenticates against the ledger and makes the account current.
// The sort toggle is reset; a failed login leaves the session unchanged.
func (s *Session) Login(ctx context.Context, username string, pin int) (*domain.Account, error) {
	acc, err := s.ledger.Authenticate(ctx, username, pin)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = acc.Username
	s.sorted = false
	return acc, nil
}

// Logout clears the current account.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = ""
}

// Username returns the current username, or "" when logged out.
func (s *Session) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

// ToggleSort flips the display order flag and returns the new value.
func (s *Session) ToggleSort() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sorted = !s.sorted
	return s.sorted
}

// Sorted reports whether movements are listed by ascending amount.
func (s *Session) Sorted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorted
}

// Current returns a fresh snapshot of the logged-in account.
func (s *Session) Current(ctx context.Context) (*domain.Account, error) {
	username, err := s.requireLogin()
	if err != nil {
		return nil, err
	}
	return s.ledger.FindByUsername(ctx, username)
}

// DisplayMovements lists the current account's movements in display order.
func (s *Session) DisplayMovements(ctx context.Context) ([]domain.DisplayMovement, error) {
	acc, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	return domain.DisplayOrder(acc.Movements, s.Sorted()), nil
}

// Summary returns the summary figures of the current account.
func (s *Session) Summary(ctx context.Context) (domain.Summary, error) {
	username, err := s.requireLogin()
	if err != nil {
		return domain.Summary{}, err
	}
	return s.ledger.Summary(ctx, username)
}

// Transfer sends amount from the current account to toUsername.
func (s *Session) Transfer(ctx context.Context, toUsername string, amount decimal.Decimal) error {
	username, err := s.requireLogin()
	if err != nil {
		return err
	}
	return s.ledger.Transfer(ctx, username, toUsername, amount)
}

// RequestLoan applies for a loan on the current account.
func (s *Session) RequestLoan(ctx context.Context, amount decimal.Decimal) error {
	username, err := s.requireLogin()
	if err != nil {
		return err
	}
	return s.ledger.ApplyLoan(ctx, username, amount)
}

// CloseAccount closes the current account. username must name the current account
// and pin must match; on success the session is logged out.
func (s *Session) CloseAccount(ctx context.Context, username string, pin int) error {
	current, err := s.requireLogin()
	if err != nil {
		return err
	}
	if username != current {
		return util.ErrAuthFailure
	}
	if err := s.ledger.CloseAccount(ctx, username, pin); err != nil {
		return fmt.Errorf("close account: %w", err)
	}
	s.Logout()
	return nil
}

func (s *Session) requireLogin() (string, error) {
	username := s.Username()
	if username == "" {
		return "", util.ErrNotLoggedIn
	}
	return username, nil
}
