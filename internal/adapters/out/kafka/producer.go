// Package kafka provides the broker-facing implementation of the
// EventPublisher port. Delivery events are serialized to JSON and produced
// keyed by tracking number, so every event of one delivery lands on the same
// partition and consumers observe them in emission order.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"delivery/internal/core/domain/event"

	"github.com/segmentio/kafka-go"
)

// messageWriter abstracts the kafka-go Writer for testability.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes delivery events to the broker.
//
// Writes are asynchronous: WriteMessages enqueues and returns, broker-level
// send results arrive through the completion callback where failures are
// logged. Only serialization failures surface synchronously from Publish.
// Callers never fail a lifecycle operation because of a broker problem.
type Producer struct {
	writer messageWriter
	topic  string
	logger *slog.Logger
}

// NewProducer creates a Producer writing to the given topic.
// The hash balancer together with the tracking number key pins each
// delivery's events to one partition.
func NewProducer(brokers []string, topic string, logger *slog.Logger) *Producer {
	log := logger.With("component", "kafka_producer", "topic", topic)

	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.Hash{},
		Async:    true,
		Completion: func(messages []kafka.Message, err error) {
			if err == nil {
				return
			}
			for _, msg := range messages {
				log.Error("Failed to deliver event to broker",
					"key", string(msg.Key),
					"error", err)
			}
		},
	}

	return &Producer{
		writer: writer,
		topic:  topic,
		logger: log,
	}
}

// Publish serializes the event and enqueues it for the broker.
// Returns an error only when serialization fails; send failures are reported
// asynchronously through the completion callback.
func (p *Producer) Publish(ctx context.Context, evt event.DeliveryEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal delivery event %s: %w", evt.EventID, err)
	}

	msg := kafka.Message{
		Key:   []byte(evt.TrackingNumber),
		Value: payload,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write delivery event %s: %w", evt.EventID, err)
	}

	p.logger.DebugContext(ctx, "Enqueued delivery event",
		"eventId", evt.EventID,
		"eventType", evt.EventType,
		"trackingNumber", evt.TrackingNumber)
	return nil
}

// Close flushes pending messages and releases the writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
