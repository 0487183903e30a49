package event

import (
	"fmt"
	"time"

	"delivery/internal/core/domain/model/delivery"
	"delivery/internal/pkg/errs"

	"github.com/google/uuid"
)

// EventType identifies the kind of domain event on the wire.
// Values are the lowercase-hyphenated strings shared with sibling services.
type EventType string

const (
	TypeDeliveryCreated        EventType = "delivery-created"
	TypeDeliveryAssigned       EventType = "delivery-assigned"
	TypeDeliveryStatusUpdated  EventType = "delivery-status-updated"
	TypeDeliveryPickedUp       EventType = "delivery-picked-up"
	TypeDeliveryInTransit      EventType = "delivery-in-transit"
	TypeDeliveryOutForDelivery EventType = "delivery-out-for-delivery"
	TypeDeliveryDelivered      EventType = "delivery-delivered"
	TypeDeliveryFailed         EventType = "delivery-failed"
	TypeDeliveryCancelled      EventType = "delivery-cancelled"
	TypeDriverLocationUpdated  EventType = "driver-location-updated"
	TypeVehicleStatusUpdated   EventType = "vehicle-status-updated"
)

// getValidEventTypes returns the set of defined event kinds.
func getValidEventTypes() map[EventType]struct{} {
	return map[EventType]struct{}{
		TypeDeliveryCreated:        {},
		TypeDeliveryAssigned:       {},
		TypeDeliveryStatusUpdated:  {},
		TypeDeliveryPickedUp:       {},
		TypeDeliveryInTransit:      {},
		TypeDeliveryOutForDelivery: {},
		TypeDeliveryDelivered:      {},
		TypeDeliveryFailed:         {},
		TypeDeliveryCancelled:      {},
		TypeDriverLocationUpdated:  {},
		TypeVehicleStatusUpdated:   {},
	}
}

// Validate checks that the event type is one of the eleven defined kinds.
func (t EventType) Validate() error {
	if _, ok := getValidEventTypes()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"eventType",
			fmt.Errorf("%q is not a defined event type", string(t)),
		)
	}
	return nil
}

// String returns the wire representation of the event type.
func (t EventType) String() string {
	return string(t)
}

// TypeForStatus returns the status-specific event kind for statuses that have
// one (PICKED_UP, IN_TRANSIT, OUT_FOR_DELIVERY, DELIVERED, FAILED, CANCELLED),
// and false for statuses announced only through the generic
// delivery-status-updated kind.
func TypeForStatus(status delivery.Status) (EventType, bool) {
	switch status {
	case delivery.PickedUp:
		return TypeDeliveryPickedUp, true
	case delivery.InTransit:
		return TypeDeliveryInTransit, true
	case delivery.OutForDelivery:
		return TypeDeliveryOutForDelivery, true
	case delivery.Delivered:
		return TypeDeliveryDelivered, true
	case delivery.Failed:
		return TypeDeliveryFailed, true
	case delivery.Cancelled:
		return TypeDeliveryCancelled, true
	default:
		return "", false
	}
}

// DeliveryEvent is an immutable, denormalized snapshot of a delivery at a
// specific lifecycle transition, published for consumption by unrelated
// systems (billing, notifications, analytics). One event is produced per
// successful state-changing operation; events are never mutated or retracted.
//
// The JSON field names are the inter-service wire format and must not change.
type DeliveryEvent struct {
	EventID         string     `json:"eventId"`
	EventType       EventType  `json:"eventType"`
	Timestamp       time.Time  `json:"timestamp"`
	TrackingNumber  string     `json:"trackingNumber"`
	DeliveryID      uint64     `json:"deliveryId"`
	CustomerName    string     `json:"customerName"`
	CustomerPhone   string     `json:"customerPhone"`
	PickupAddress   string     `json:"pickupAddress"`
	DeliveryAddress string     `json:"deliveryAddress"`
	PickupCity      string     `json:"pickupCity"`
	DeliveryCity    string     `json:"deliveryCity"`
	Weight          float64    `json:"weight"`
	Price           float64    `json:"price"`
	Status          string     `json:"status"`
	DriverID        string     `json:"driverId"`
	VehicleID       string     `json:"vehicleId"`
	Notes           string     `json:"notes"`
	PickupTime      *time.Time `json:"pickupTime,omitempty"`
	DeliveryTime    *time.Time `json:"deliveryTime,omitempty"`
}

// New translates a delivery snapshot into a domain event of the given kind.
// It is pure apart from reading the clock and minting the event ID: every
// delivery field is copied, the event gets a fresh unique ID, and the
// timestamp records the emission time (distinct from the delivery's own
// lifecycle timestamps).
//
// Example:
//
//	evt, err := event.New(d, event.TypeDeliveryCreated)
//	if err != nil {
//	    return err
//	}
//	_ = publisher.Publish(ctx, evt)
func New(d *delivery.Delivery, kind EventType) (DeliveryEvent, error) {
	if err := d.Validate(); err != nil {
		return DeliveryEvent{}, err
	}
	if err := kind.Validate(); err != nil {
		return DeliveryEvent{}, err
	}

	return DeliveryEvent{
		EventID:         uuid.NewString(),
		EventType:       kind,
		Timestamp:       time.Now(),
		TrackingNumber:  d.TrackingNumber().String(),
		DeliveryID:      d.ID(),
		CustomerName:    d.CustomerName(),
		CustomerPhone:   d.CustomerPhone(),
		PickupAddress:   d.PickupAddress(),
		DeliveryAddress: d.DeliveryAddress(),
		PickupCity:      d.PickupCity(),
		DeliveryCity:    d.DeliveryCity(),
		Weight:          d.Weight(),
		Price:           d.Price(),
		Status:          d.Status().String(),
		DriverID:        d.DriverID(),
		VehicleID:       d.VehicleID(),
		Notes:           d.Notes(),
		PickupTime:      d.PickupTime(),
		DeliveryTime:    d.DeliveryTime(),
	}, nil
}
