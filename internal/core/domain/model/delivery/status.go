package delivery

import (
	"fmt"

	"delivery/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
// It implements a state machine with defined transitions to ensure
// deliveries follow the correct operational workflow.
//
// State transitions:
//
//	Pending ──> Assigned ──> PickupInProgress ──> PickedUp ──> InTransit ──> OutForDelivery ──> Delivered
//	   │            │               │                 │            │               │
//	   │            │               ├──> Failed <─────┴────────────┴───────────────┤
//	   └────────────┴───────────────┴──> Cancelled
//
// Delivered, Failed and Cancelled are terminal: no further transitions leave them.
//
// Status is a value object that validates state transitions and provides the
// wire string representations used for persistence, the REST API and events.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when a delivery is first created.
	// Deliveries in this status are waiting to be assigned to a driver.
	Pending

	// Assigned indicates a driver and vehicle have been attached to the delivery.
	Assigned

	// PickupInProgress indicates the driver is on the way to the pickup address.
	PickupInProgress

	// PickedUp indicates the parcel has been collected from the pickup address.
	// Entering this status stamps the delivery's pickup time on first occurrence.
	PickedUp

	// InTransit indicates the parcel is moving between cities or hubs.
	InTransit

	// OutForDelivery indicates the parcel is on the final leg to the recipient.
	OutForDelivery

	// Delivered indicates the parcel reached the recipient. Terminal.
	// Entering this status stamps the delivery's delivery time on first occurrence.
	Delivered

	// Failed indicates the delivery could not be completed. Terminal.
	Failed

	// Cancelled indicates the delivery was called off before completion. Terminal.
	Cancelled
)

// getStatusStrings returns a map of Status values to their wire representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "UNKNOWN",
		Pending:          "PENDING",
		Assigned:         "ASSIGNED",
		PickupInProgress: "PICKUP_IN_PROGRESS",
		PickedUp:         "PICKED_UP",
		InTransit:        "IN_TRANSIT",
		OutForDelivery:   "OUT_FOR_DELIVERY",
		Delivered:        "DELIVERED",
		Failed:           "FAILED",
		Cancelled:        "CANCELLED",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:          "PENDING",
		Assigned:         "ASSIGNED",
		PickupInProgress: "PICKUP_IN_PROGRESS",
		PickedUp:         "PICKED_UP",
		InTransit:        "IN_TRANSIT",
		OutForDelivery:   "OUT_FOR_DELIVERY",
		Delivered:        "DELIVERED",
		Failed:           "FAILED",
		Cancelled:        "CANCELLED",
	}
}

// successors returns the adjacency table of legal lifecycle transitions.
// Terminal statuses have no successors.
func successors() map[Status][]Status {
	return map[Status][]Status{
		Pending:          {Assigned, Cancelled},
		Assigned:         {PickupInProgress, Cancelled},
		PickupInProgress: {PickedUp, Failed, Cancelled},
		PickedUp:         {InTransit, Failed},
		InTransit:        {OutForDelivery, Failed},
		OutForDelivery:   {Delivered, Failed},
	}
}

// StatusFromString parses a wire representation ("PENDING", "IN_TRANSIT", ...)
// into a Status. Used when reconstructing deliveries from persistence and when
// binding API path and body parameters.
//
// Returns an error if the string names no valid status.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid delivery status", s),
	)
}

// Validate checks if the Status value is one of the nine defined statuses.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, e.g. "OUT_FOR_DELIVERY".
// Invalid values return "UNKNOWN". Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status permits no further transitions.
// Delivered, Failed and Cancelled are terminal.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Failed || s == Cancelled
}

// CanTransitionTo reports whether moving from this status to next is a legal
// lifecycle transition according to the adjacency table.
//
// The baseline update-status operation does not consult this table; it exists
// for callers that opt into strict transition checking.
func (s Status) CanTransitionTo(next Status) bool {
	for _, candidate := range successors()[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ValidateTransitionTo checks that moving from this status to next is legal,
// returning a descriptive validation error when it is not.
//
// Example:
//
//	if err := current.ValidateTransitionTo(next); err != nil {
//	    return err // e.g. "DELIVERED -> PENDING is not allowed"
//	}
func (s Status) ValidateTransitionTo(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if !s.CanTransitionTo(next) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status transition",
			fmt.Errorf("%s -> %s is not allowed", s.String(), next.String()),
		)
	}
	return nil
}
