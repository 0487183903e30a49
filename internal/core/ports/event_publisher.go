package ports

import (
	"context"

	"delivery/internal/core/domain/event"
)

// EventPublisher delivers translated domain events to the broker.
//
// Publish serializes the event and hands it to the broker keyed by tracking
// number, so all events of one delivery land on the same partition in order.
// A serialization failure is reported synchronously before any network
// attempt; broker-level send results are reported asynchronously by the
// implementation (logged, not returned). Callers never roll back persisted
// state because of a publish failure: event delivery is best-effort and
// decoupled from persistence.
type EventPublisher interface {
	Publish(ctx context.Context, evt event.DeliveryEvent) error
}
