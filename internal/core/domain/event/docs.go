// Package event defines the delivery domain events and their translation from
// aggregate snapshots.
//
// Every committed state change of a delivery is announced as a DeliveryEvent:
// an immutable, denormalized copy of the delivery tagged with a unique event
// ID, an event kind and the emission time. Events are serialized to JSON and
// published keyed by tracking number, which guarantees per-delivery ordering
// on a partitioned broker.
//
// The eleven event kinds form the shared vocabulary of the delivery topics.
// This service emits delivery-created, delivery-assigned and
// delivery-status-updated; the status-specific and driver/vehicle kinds are
// produced by sibling services on the same topics and are recognized here for
// consumption.
package event
