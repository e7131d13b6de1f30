// internal/service/ledger_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"bankist-ledger/internal/domain"
	"bankist-ledger/internal/events"
	"bankist-ledger/internal/repository"
	"bankist-ledger/internal/util"

	"github.com/shopspring/decimal"
)

// loanCoverRatio is the share of a requested loan that some past movement must reach.
var loanCoverRatio = decimal.RequireFromString("0.1")

// LedgerService defines the interface for ledger business logic.
type LedgerService interface {
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	FindByOwner(ctx context.Context, owner string) (*domain.Account, error)
	Authenticate(ctx context.Context, username string, pin int) (*domain.Account, error)
	Transfer(ctx context.Context, fromUsername, toUsername string, amount decimal.Decimal) error
	ApplyLoan(ctx context.Context, username string, amount decimal.Decimal) error
	CloseAccount(ctx context.Context, username string, pin int) error
	Summary(ctx context.Context, username string) (domain.Summary, error)
	OverallBalance(ctx context.Context) (decimal.Decimal, error)
	Accounts(ctx context.Context) ([]*domain.Account, error)
}

// ledgerService implements the LedgerService interface.
// mu serializes every check-then-act sequence against the repository.
type ledgerService struct {
	mu        sync.Mutex
	seq       uint64 // last event sequence, guarded by mu
	repo      repository.AccountRepository
	publisher events.Publisher
	logger    *slog.Logger
}

// NewLedgerService creates a new instance of LedgerService.
func NewLedgerService(repo repository.AccountRepository, publisher events.Publisher, logger *slog.Logger) LedgerService {
	return &ledgerService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// FindByUsername returns a snapshot of the account with the given username.
func (s *ledgerService) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.GetByUsername(ctx, username)
}

// FindByOwner returns a snapshot of the first account owned by owner.
func (s *ledgerService) FindByOwner(ctx context.Context, owner string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.GetByOwner(ctx, owner)
}

// Authenticate returns the account when username exists and pin matches.
// An unknown username and a wrong pin are indistinguishable to the caller.
func (s *ledgerService) Authenticate(ctx context.Context, username string, pin int) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrAuthFailure
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if !acc.PINMatches(pin) {
		return nil, util.ErrAuthFailure
	}
	return acc, nil
}

// Transfer moves amount from one account to another. Both movements are appended or neither.
func (s *ledgerService) Transfer(ctx context.Context, fromUsername, toUsername string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return util.ErrInvalidAmount
	}
	if fromUsername == toUsername {
		return util.ErrSelfTransfer
	}

	event, err := s.transfer(ctx, fromUsername, toUsername, amount)
	if err != nil {
		return err
	}

	s.logger.Info("Transfer completed", "from", fromUsername, "to", toUsername, "amount", amount.String())
	s.publish(ctx, event)
	return nil
}

func (s *ledgerService) transfer(ctx context.Context, fromUsername, toUsername string, amount decimal.Decimal) (domain.LedgerEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sender, err := s.repo.GetByUsername(ctx, fromUsername)
	if err != nil {
		return domain.LedgerEvent{}, fmt.Errorf("transfer: failed to get sender '%s': %w", fromUsername, err)
	}
	if _, err := s.repo.GetByUsername(ctx, toUsername); err != nil {
		return domain.LedgerEvent{}, fmt.Errorf("transfer: failed to get recipient '%s': %w", toUsername, err)
	}
	if sender.Balance().LessThan(amount) {
		return domain.LedgerEvent{}, util.ErrInsufficientFunds
	}

	err = s.repo.AppendMovements(ctx,
		repository.Posting{Username: fromUsername, Amount: amount.Neg()},
		repository.Posting{Username: toUsername, Amount: amount},
	)
	if err != nil {
		return domain.LedgerEvent{}, fmt.Errorf("transfer: failed to append movements: %w", err)
	}
	return s.nextEvent(domain.EventTransfer, fromUsername, toUsername, amount), nil
}

// ApplyLoan grants amount when some past movement is at least 10% of it.
func (s *ledgerService) ApplyLoan(ctx context.Context, username string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return util.ErrInvalidAmount
	}

	event, err := s.applyLoan(ctx, username, amount)
	if err != nil {
		return err
	}

	s.logger.Info("Loan granted", "username", username, "amount", amount.String())
	s.publish(ctx, event)
	return nil
}

func (s *ledgerService) applyLoan(ctx context.Context, username string, amount decimal.Decimal) (domain.LedgerEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return domain.LedgerEvent{}, fmt.Errorf("loan: failed to get account '%s': %w", username, err)
	}
	if !loanCovered(acc.Movements, amount) {
		return domain.LedgerEvent{}, util.ErrLoanRejected
	}

	if err := s.repo.AppendMovements(ctx, repository.Posting{Username: username, Amount: amount}); err != nil {
		return domain.LedgerEvent{}, fmt.Errorf("loan: failed to append movement: %w", err)
	}
	return s.nextEvent(domain.EventLoan, username, "", amount), nil
}

// loanCovered reports whether any movement is at least 10% of amount.
func loanCovered(movements []decimal.Decimal, amount decimal.Decimal) bool {
	threshold := amount.Mul(loanCoverRatio)
	for _, m := range movements {
		if m.GreaterThanOrEqual(threshold) {
			return true
		}
	}
	return false
}

// CloseAccount permanently removes the account once the pin is confirmed.
func (s *ledgerService) CloseAccount(ctx context.Context, username string, pin int) error {
	event, err := s.closeAccount(ctx, username, pin)
	if err != nil {
		return err
	}

	s.logger.Info("Account closed", "username", username)
	s.publish(ctx, event)
	return nil
}

func (s *ledgerService) closeAccount(ctx context.Context, username string, pin int) (domain.LedgerEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return domain.LedgerEvent{}, fmt.Errorf("close account: failed to get account '%s': %w", username, err)
	}
	if !acc.PINMatches(pin) {
		return domain.LedgerEvent{}, util.ErrAuthFailure
	}
	if err := s.repo.Delete(ctx, username); err != nil {
		return domain.LedgerEvent{}, fmt.Errorf("close account: failed to delete '%s': %w", username, err)
	}
	return s.nextEvent(domain.EventAccountClosed, username, "", decimal.Zero), nil
}

// Summary computes balance, income, expense and qualifying interest for one account.
func (s *ledgerService) Summary(ctx context.Context, username string) (domain.Summary, error) {
	acc, err := s.FindByUsername(ctx, username)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("summary: %w", err)
	}
	return domain.Summarize(acc.Movements, acc.InterestRate), nil
}

// OverallBalance sums every movement of every account.
func (s *ledgerService) OverallBalance(ctx context.Context) (decimal.Decimal, error) {
	accounts, err := s.Accounts(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	var all []decimal.Decimal
	for _, acc := range accounts {
		all = append(all, acc.Movements...)
	}
	return domain.Balance(all), nil
}

// Accounts returns snapshots of every account in insertion order.
func (s *ledgerService) Accounts(ctx context.Context) ([]*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// nextEvent stamps an event with the next sequence number. Callers must hold mu.
func (s *ledgerService) nextEvent(kind domain.EventKind, username, counterparty string, amount decimal.Decimal) domain.LedgerEvent {
	s.seq++
	event := domain.NewLedgerEvent(kind, username, counterparty, amount)
	event.Sequence = s.seq
	return event
}

// publish never fails the operation that produced the event.
func (s *ledgerService) publish(ctx context.Context, event domain.LedgerEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish ledger event", "event_id", event.ID.String(), "kind", event.Kind, "error", err)
	}
}
