// internal/domain/event.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventKind defines the type of a ledger event.
type EventKind string

const (
	EventTransfer      EventKind = "transfer"
	EventLoan          EventKind = "loan"
	EventAccountClosed EventKind = "account_closed"
)

// LedgerEvent is emitted after a successful ledger mutation.
// Sequence follows the order in which mutations were applied; delivery order may differ.
type LedgerEvent struct {
	ID           uuid.UUID       `json:"id"`
	Sequence     uint64          `json:"sequence"`
	Kind         EventKind       `json:"kind"`
	Username     string          `json:"username"`               // Account that initiated the change
	Counterparty string          `json:"counterparty,omitempty"` // Recipient, transfers only
	Amount       decimal.Decimal `json:"amount"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

// NewLedgerEvent creates a LedgerEvent with a fresh ID and the current UTC time.
func NewLedgerEvent(kind EventKind, username, counterparty string, amount decimal.Decimal) LedgerEvent {
	return LedgerEvent{
		ID:           uuid.New(),
		Kind:         kind,
		Username:     username,
		Counterparty: counterparty,
		Amount:       amount,
		OccurredAt:   time.Now().UTC(),
	}
}
