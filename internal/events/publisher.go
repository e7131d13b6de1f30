// internal/events/publisher.go
package events

import (
	"context"
	"log/slog"

	"bankist-ledger/internal/domain"
)

// Publisher delivers ledger events to interested parties.
type Publisher interface {
	Publish(ctx context.Context, event domain.LedgerEvent) error
	Close() error
}

// LogPublisher writes every event to a structured logger.
// It is used when no message broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a LogPublisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the event at info level.
func (p *LogPublisher) Publish(ctx context.Context, event domain.LedgerEvent) error {
	p.logger.InfoContext(ctx, "Ledger event",
		"event_id", event.ID.String(),
		"kind", event.Kind,
		"username", event.Username,
		"counterparty", event.Counterparty,
		"amount", event.Amount.String(),
	)
	return nil
}

// Close is a no-op.
func (p *LogPublisher) Close() error { return nil }

var _ Publisher = (*LogPublisher)(nil)
