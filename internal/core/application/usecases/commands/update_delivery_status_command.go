package commands

import (
	"errors"

	"delivery/internal/core/domain/model/delivery"
	"delivery/internal/core/domain/model/kernel"
	"delivery/internal/pkg/guard"
)

var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand represents a request to move a delivery to a new
// lifecycle status, optionally replacing its notes. A nil notes pointer leaves
// the existing notes untouched; a non-nil pointer overwrites them, including
// with the empty string.
//
// Example:
//
//	tn, _ := kernel.TrackingNumberFromString("DEL1717171717171A1B2C3D4")
//	notes := "recipient confirmed by phone"
//	cmd, err := NewUpdateDeliveryStatusCommand(tn, delivery.OutForDelivery, &notes)
//	if err != nil {
//	    return err
//	}
//	updated, err := handler.Handle(ctx, cmd)
type UpdateDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	trackingNumber kernel.TrackingNumber
	status         delivery.Status
	notes          *string

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryStatusCommand creates a command to update a delivery's status.
// Validates that the tracking number is well-formed and the status is one of
// the nine defined values. Returns an error if any validation fails.
func NewUpdateDeliveryStatusCommand(
	trackingNumber kernel.TrackingNumber,
	status delivery.Status,
	notes *string,
) (UpdateDeliveryStatusCommand, error) {
	cmd := UpdateDeliveryStatusCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTrackingNumber(trackingNumber),
		cmd.setStatus(status),
	); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateDeliveryStatusCommandIsNotConstructed if validation fails.
func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

// TrackingNumber returns the delivery's tracking number.
func (c UpdateDeliveryStatusCommand) TrackingNumber() kernel.TrackingNumber {
	return c.trackingNumber
}

// Status returns the target lifecycle status.
func (c UpdateDeliveryStatusCommand) Status() delivery.Status {
	return c.status
}

// Notes returns the optional replacement notes, nil when notes are untouched.
func (c UpdateDeliveryStatusCommand) Notes() *string {
	return c.notes
}

func (c *UpdateDeliveryStatusCommand) setTrackingNumber(trackingNumber kernel.TrackingNumber) error {
	if err := trackingNumber.Validate(); err != nil {
		return err
	}
	c.trackingNumber = trackingNumber
	return nil
}

func (c *UpdateDeliveryStatusCommand) setStatus(status delivery.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}
