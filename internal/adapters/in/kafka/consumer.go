// Package kafka provides the broker-facing inbound adapters. The delivery
// event consumer subscribes to the service's own event stream and dispatches
// decoded events to registered handlers; the audit consumer tails the driver
// and vehicle streams of neighboring services.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"delivery/internal/core/domain/event"

	"github.com/segmentio/kafka-go"
)

// messageReader abstracts the kafka-go Reader for testability.
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// EventHandlerFunc processes one decoded delivery event. Handlers must be
// idempotent: the broker delivers at least once, so replays of the same
// event ID are expected.
type EventHandlerFunc func(ctx context.Context, evt event.DeliveryEvent) error

// DeliveryEventConsumer subscribes to the delivery event stream and
// dispatches each event by kind. A malformed payload or a failing handler is
// logged and skipped; consumption never stops because of one bad message.
//
// The constructor installs logging handlers for the notification-worthy
// kinds; RegisterHandler replaces them when real side effects are wired in.
type DeliveryEventConsumer struct {
	reader   messageReader
	logger   *slog.Logger
	handlers map[event.EventType]EventHandlerFunc
}

// NewDeliveryEventConsumer creates a consumer joined to the given consumer
// group. All instances of the service share the group, so each event is
// processed by exactly one instance.
func NewDeliveryEventConsumer(brokers []string, groupID, topic string, logger *slog.Logger) *DeliveryEventConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		GroupID: groupID,
		Topic:   topic,
	})

	c := &DeliveryEventConsumer{
		reader: reader,
		logger: logger.With("component", "delivery_event_consumer", "topic", topic),
	}
	c.handlers = map[event.EventType]EventHandlerFunc{
		event.TypeDeliveryCreated:       c.logDeliveryCreated,
		event.TypeDeliveryStatusUpdated: c.logDeliveryStatusUpdated,
		event.TypeDeliveryDelivered:     c.logDeliveryDelivered,
	}
	return c
}

// RegisterHandler installs or replaces the handler for one event kind.
func (c *DeliveryEventConsumer) RegisterHandler(kind event.EventType, handler EventHandlerFunc) {
	c.handlers[kind] = handler
}

// Run consumes until the context is cancelled or the reader is closed.
// A cancelled context is a clean stop, not an error.
func (c *DeliveryEventConsumer) Run(ctx context.Context) error {
	c.logger.InfoContext(ctx, "Delivery event consumer started")

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				c.logger.InfoContext(ctx, "Delivery event consumer stopped")
				return nil
			}
			return err
		}

		c.handleMessage(ctx, msg)
	}
}

// Close releases the underlying reader and leaves the consumer group.
func (c *DeliveryEventConsumer) Close() error {
	return c.reader.Close()
}

func (c *DeliveryEventConsumer) handleMessage(ctx context.Context, msg kafka.Message) {
	var evt event.DeliveryEvent
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		c.logger.WarnContext(ctx, "Skipping malformed delivery event",
			"partition", msg.Partition,
			"offset", msg.Offset,
			"error", err)
		return
	}

	handler, ok := c.handlers[evt.EventType]
	if !ok {
		c.logger.InfoContext(ctx, "No handler for event kind, ignoring",
			"eventId", evt.EventID,
			"eventType", evt.EventType)
		return
	}

	if err := handler(ctx, evt); err != nil {
		c.logger.ErrorContext(ctx, "Event handler failed",
			"eventId", evt.EventID,
			"eventType", evt.EventType,
			"trackingNumber", evt.TrackingNumber,
			"error", err)
	}
}

func (c *DeliveryEventConsumer) logDeliveryCreated(ctx context.Context, evt event.DeliveryEvent) error {
	c.logger.InfoContext(ctx, "Delivery registered, customer notification due",
		"trackingNumber", evt.TrackingNumber,
		"customerName", evt.CustomerName)
	return nil
}

func (c *DeliveryEventConsumer) logDeliveryStatusUpdated(ctx context.Context, evt event.DeliveryEvent) error {
	c.logger.InfoContext(ctx, "Delivery status changed",
		"trackingNumber", evt.TrackingNumber,
		"status", evt.Status)
	return nil
}

func (c *DeliveryEventConsumer) logDeliveryDelivered(ctx context.Context, evt event.DeliveryEvent) error {
	c.logger.InfoContext(ctx, "Delivery completed",
		"trackingNumber", evt.TrackingNumber,
		"deliveryTime", evt.DeliveryTime)
	return nil
}
