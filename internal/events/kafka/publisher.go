// Package kafka publishes mutation events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/kirdwahi/ledger/internal/events"
)

// Publisher wraps a kafka-go writer.
type Publisher struct {
	writer *kafkago.Writer
}

// NewPublisher builds a publisher for the given brokers and topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafkago.Writer{
			Addr:     kafkago.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafkago.LeastBytes{},
		},
	}
}

// Publish implements events.Publisher. Events for the same khate number share
// a message key so per-account ordering is preserved.
func (p *Publisher) Publish(ctx context.Context, ev events.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(ev.KhateNumber),
		Value: data,
	})
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error { return p.writer.Close() }
