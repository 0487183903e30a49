package commands

import (
	"errors"

	"delivery/internal/core/domain/model/kernel"
	"delivery/internal/pkg/errs"
	"delivery/internal/pkg/guard"
)

var ErrAssignDeliveryCommandIsNotConstructed = errors.New(
	"AssignDeliveryCommand must be created via NewAssignDeliveryCommand constructor",
)

// AssignDeliveryCommand represents a request to attach a driver and vehicle to
// an existing delivery. Driver and vehicle identifiers are opaque references
// into external inventory services; this service only requires them to be
// non-empty.
//
// Example:
//
//	tn, _ := kernel.TrackingNumberFromString("DEL1717171717171A1B2C3D4")
//	cmd, err := NewAssignDeliveryCommand(tn, "driver-42", "vehicle-7")
//	if err != nil {
//	    return err
//	}
//	assigned, err := handler.Handle(ctx, cmd)
type AssignDeliveryCommand struct { //nolint:recvcheck //using for validation
	trackingNumber kernel.TrackingNumber
	driverID       string
	vehicleID      string

	guard guard.ConstructorGuard
}

// NewAssignDeliveryCommand creates a command to assign a driver and vehicle.
// Validates that the tracking number is well-formed and both identifiers are
// non-empty. Returns an error if any validation fails.
func NewAssignDeliveryCommand(
	trackingNumber kernel.TrackingNumber,
	driverID string,
	vehicleID string,
) (AssignDeliveryCommand, error) {
	cmd := AssignDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTrackingNumber(trackingNumber),
		cmd.setDriverID(driverID),
		cmd.setVehicleID(vehicleID),
	); err != nil {
		return AssignDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignDeliveryCommandIsNotConstructed if validation fails.
func (c AssignDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAssignDeliveryCommandIsNotConstructed)
}

// TrackingNumber returns the delivery's tracking number.
func (c AssignDeliveryCommand) TrackingNumber() kernel.TrackingNumber {
	return c.trackingNumber
}

// DriverID returns the driver identifier to assign.
func (c AssignDeliveryCommand) DriverID() string {
	return c.driverID
}

// VehicleID returns the vehicle identifier to assign.
func (c AssignDeliveryCommand) VehicleID() string {
	return c.vehicleID
}

func (c *AssignDeliveryCommand) setTrackingNumber(trackingNumber kernel.TrackingNumber) error {
	if err := trackingNumber.Validate(); err != nil {
		return err
	}
	c.trackingNumber = trackingNumber
	return nil
}

func (c *AssignDeliveryCommand) setDriverID(driverID string) error {
	if driverID == "" {
		return errs.NewValueIsRequiredError("driverId")
	}
	c.driverID = driverID
	return nil
}

func (c *AssignDeliveryCommand) setVehicleID(vehicleID string) error {
	if vehicleID == "" {
		return errs.NewValueIsRequiredError("vehicleId")
	}
	c.vehicleID = vehicleID
	return nil
}
