package commands

import (
	"errors"
	"fmt"

	"delivery/internal/pkg/errs"
	"delivery/internal/pkg/guard"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand represents a request to register a new parcel delivery.
// Encapsulates the customer contact details, pickup and drop-off geography,
// and the physical/commercial attributes of the parcel.
//
// Example:
//
//	cmd, err := NewCreateDeliveryCommand("John Doe", "+221701234567",
//	    "12 Rue Felix Faure", "Almadies Route 5", "Dakar", "Dakar",
//	    5.5, 2500, "fragile")
//	if err != nil {
//	    return fmt.Errorf("invalid delivery data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create delivery: %w", err)
//	}
//	fmt.Printf("Delivery %s accepted", created.TrackingNumber())
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	customerName    string
	customerPhone   string
	pickupAddress   string
	deliveryAddress string
	pickupCity      string
	deliveryCity    string
	weight          float64
	price           float64
	notes           string

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand creates a command to register a new delivery.
// Validates that all contact, address and city fields are non-empty and that
// weight and price are strictly positive. Notes are optional.
// Returns an error if any validation fails.
func NewCreateDeliveryCommand(
	customerName string,
	customerPhone string,
	pickupAddress string,
	deliveryAddress string,
	pickupCity string,
	deliveryCity string,
	weight float64,
	price float64,
	notes string,
) (CreateDeliveryCommand, error) {
	cmd := CreateDeliveryCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequiredText("customerName", customerName, &cmd.customerName),
		cmd.setRequiredText("customerPhone", customerPhone, &cmd.customerPhone),
		cmd.setRequiredText("pickupAddress", pickupAddress, &cmd.pickupAddress),
		cmd.setRequiredText("deliveryAddress", deliveryAddress, &cmd.deliveryAddress),
		cmd.setRequiredText("pickupCity", pickupCity, &cmd.pickupCity),
		cmd.setRequiredText("deliveryCity", deliveryCity, &cmd.deliveryCity),
		cmd.setWeight(weight),
		cmd.setPrice(price),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateDeliveryCommandIsNotConstructed if validation fails.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// CustomerName returns the recipient's name.
func (c CreateDeliveryCommand) CustomerName() string {
	return c.customerName
}

// CustomerPhone returns the recipient's phone number.
func (c CreateDeliveryCommand) CustomerPhone() string {
	return c.customerPhone
}

// PickupAddress returns the pickup street address.
func (c CreateDeliveryCommand) PickupAddress() string {
	return c.pickupAddress
}

// DeliveryAddress returns the drop-off street address.
func (c CreateDeliveryCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

// PickupCity returns the pickup city.
func (c CreateDeliveryCommand) PickupCity() string {
	return c.pickupCity
}

// DeliveryCity returns the drop-off city.
func (c CreateDeliveryCommand) DeliveryCity() string {
	return c.deliveryCity
}

// Weight returns the parcel weight.
func (c CreateDeliveryCommand) Weight() float64 {
	return c.weight
}

// Price returns the delivery price.
func (c CreateDeliveryCommand) Price() float64 {
	return c.price
}

// Notes returns the optional free-text notes.
func (c CreateDeliveryCommand) Notes() string {
	return c.notes
}

func (c *CreateDeliveryCommand) setRequiredText(paramName, value string, field *string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(paramName)
	}
	*field = value
	return nil
}

func (c *CreateDeliveryCommand) setWeight(weight float64) error {
	if weight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%g is not greater than 0", weight))
	}
	c.weight = weight
	return nil
}

func (c *CreateDeliveryCommand) setPrice(price float64) error {
	if price <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%g is not greater than 0", price))
	}
	c.price = price
	return nil
}
