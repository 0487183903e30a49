package commands

import (
	"context"
	"log/slog"

	"delivery/internal/core/domain/event"
	"delivery/internal/core/domain/model/delivery"
	"delivery/internal/core/ports"
)

// publishDeliveryEvent translates the persisted delivery snapshot into a
// domain event and hands it to the publisher. Publication is best-effort and
// decoupled from persistence: by the time this runs the transaction has
// committed, so translation or publish failures are logged and swallowed,
// never propagated to the lifecycle operation's caller.
func publishDeliveryEvent(
	ctx context.Context,
	publisher ports.EventPublisher,
	logger *slog.Logger,
	d *delivery.Delivery,
	kind event.EventType,
) {
	evt, err := event.New(d, kind)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to translate delivery event",
			"trackingNumber", d.TrackingNumber().String(),
			"eventType", kind.String(),
			"error", err)
		return
	}

	if err := publisher.Publish(ctx, evt); err != nil {
		logger.ErrorContext(ctx, "Failed to publish delivery event",
			"trackingNumber", evt.TrackingNumber,
			"eventId", evt.EventID,
			"eventType", kind.String(),
			"error", err)
	}
}
