package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// auditEvent is the envelope shared by the driver and vehicle event streams.
// Only the envelope fields matter for the audit trail; the rest of the
// payload is service-specific and logged verbatim.
type auditEvent struct {
	EventID   string    `json:"eventId"`
	EventType string    `json:"eventType"`
	Timestamp time.Time `json:"timestamp"`
}

// AuditConsumer tails a neighboring service's event stream and writes each
// event to the audit log. It performs no side effects beyond logging, so
// replays are harmless.
type AuditConsumer struct {
	reader messageReader
	logger *slog.Logger
}

// NewAuditConsumer creates an audit consumer for one foreign topic.
func NewAuditConsumer(brokers []string, groupID, topic string, logger *slog.Logger) *AuditConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		GroupID: groupID,
		Topic:   topic,
	})

	return &AuditConsumer{
		reader: reader,
		logger: logger.With("component", "audit_consumer", "topic", topic),
	}
}

// Run consumes until the context is cancelled or the reader is closed.
// A cancelled context is a clean stop, not an error.
func (c *AuditConsumer) Run(ctx context.Context) error {
	c.logger.InfoContext(ctx, "Audit consumer started")

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				c.logger.InfoContext(ctx, "Audit consumer stopped")
				return nil
			}
			return err
		}

		c.handleMessage(ctx, msg)
	}
}

// Close releases the underlying reader and leaves the consumer group.
func (c *AuditConsumer) Close() error {
	return c.reader.Close()
}

func (c *AuditConsumer) handleMessage(ctx context.Context, msg kafka.Message) {
	var evt auditEvent
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		c.logger.WarnContext(ctx, "Skipping malformed audit event",
			"partition", msg.Partition,
			"offset", msg.Offset,
			"error", err)
		return
	}

	c.logger.InfoContext(ctx, "Observed foreign event",
		"eventId", evt.EventID,
		"eventType", evt.EventType,
		"timestamp", evt.Timestamp,
		"payload", string(msg.Value))
}
