// internal/events/kafka/publisher.go
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"bankist-ledger/internal/domain"
	"bankist-ledger/internal/events"
)

// Publisher writes ledger events to a Kafka topic as JSON, keyed by username.
type Publisher struct {
	writer *kafka.Writer
}

// batchTimeout caps how long a single synchronous write waits for a batch to fill.
const batchTimeout = 10 * time.Millisecond

// NewPublisher creates a Publisher for the given brokers and topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{}, // Same account, same partition
			AllowAutoTopicCreation: true,
			BatchTimeout:           batchTimeout,
		},
	}
}

// Publish sends a single event and waits for the broker acknowledgement.
func (p *Publisher) Publish(ctx context.Context, event domain.LedgerEvent) error {
	msg, err := newMessage(event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event %s: %w", event.Kind, event.ID, err)
	}
	return nil
}

// Close flushes pending writes and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func newMessage(event domain.LedgerEvent) (kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to encode %s event: %w", event.Kind, err)
	}
	return kafka.Message{
		Key:   []byte(event.Username),
		Value: data,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_kind", Value: []byte(event.Kind)},
			{Key: "sequence", Value: []byte(strconv.FormatUint(event.Sequence, 10))},
		},
	}, nil
}

var _ events.Publisher = (*Publisher)(nil)
