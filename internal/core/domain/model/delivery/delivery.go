package delivery

import (
	"errors"
	"fmt"
	"time"

	"delivery/internal/core/domain/model/kernel"
	"delivery/internal/pkg/errs"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
	// created through the NewDelivery or RestoreDelivery factory methods.
	// This ensures all deliveries are properly validated.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery")

	// ErrStorageIDAlreadyAttached is returned when AttachStorageID is called on
	// a delivery that already carries a storage key. The internal key is
	// assigned by the store exactly once and never changes.
	ErrStorageIDAlreadyAttached = errors.New("storage ID is already attached")
)

// freeTextLimit caps the free-text intake fields (addresses, notes).
// Flexible intake, but bounded.
const freeTextLimit = 500

// Delivery represents a parcel delivery in the system. It is the aggregate
// root that manages the delivery lifecycle from creation through driver
// assignment to final delivery or failure.
//
// Delivery follows these invariants:
//   - Must have a valid, immutable tracking number
//   - Customer name/phone, both addresses and both cities are non-empty
//   - Weight and price are strictly positive
//   - pickupTime is stamped on the first transition into PickedUp and never
//     cleared or overwritten; deliveryTime likewise for Delivered
//   - driverID/vehicleID become non-empty only via Assign, which also forces
//     the status to Assigned
//   - The internal storage key is attached at most once
//   - Can only be created through NewDelivery or RestoreDelivery
//
// The Delivery struct uses private fields to ensure encapsulation and
// maintains its invariants through validated methods.
type Delivery struct {
	// id is the storage-internal numeric key, 0 until the store assigns one
	id uint64

	// trackingNumber is the externally visible, globally unique identifier
	trackingNumber kernel.TrackingNumber

	// customer contact details
	customerName  string
	customerPhone string

	// pickup and drop-off geography
	pickupAddress   string
	deliveryAddress string
	pickupCity      string
	deliveryCity    string

	// weight in kilograms and price in the billing currency, both positive
	weight float64
	price  float64

	// status represents the current state in the delivery lifecycle
	status Status

	// driverID and vehicleID are opaque foreign identifiers, "" = unassigned
	driverID  string
	vehicleID string

	createdAt time.Time
	updatedAt time.Time

	// pickupTime and deliveryTime are nil until the delivery first enters
	// PickedUp / Delivered respectively
	pickupTime   *time.Time
	deliveryTime *time.Time

	// notes is optional free text, replaceable on any status update
	notes string

	// isConstructed ensures the delivery was created via a factory method
	isConstructed bool
}

// NewDelivery creates a new Delivery with validation. This is the only way to
// create a delivery on the write path, ensuring all business invariants hold.
//
// The new delivery starts in Pending status with no driver or vehicle and no
// storage key; createdAt and updatedAt are stamped to the current time.
//
// Example:
//
//	tn := kernel.GenerateTrackingNumber()
//	d, err := NewDelivery(tn, "John Doe", "+221701234567",
//	    "12 Rue Felix Faure", "Almadies Route 5", "Dakar", "Dakar",
//	    5.5, 2500, "fragile")
//	if err != nil {
//	    // Handle validation error
//	}
func NewDelivery(
	trackingNumber kernel.TrackingNumber,
	customerName string,
	customerPhone string,
	pickupAddress string,
	deliveryAddress string,
	pickupCity string,
	deliveryCity string,
	weight float64,
	price float64,
	notes string,
) (*Delivery, error) {
	now := time.Now()
	d := &Delivery{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setTrackingNumber(trackingNumber),
		d.setRequiredText("customerName", customerName, &d.customerName),
		d.setRequiredText("customerPhone", customerPhone, &d.customerPhone),
		d.setRequiredText("pickupAddress", pickupAddress, &d.pickupAddress),
		d.setRequiredText("deliveryAddress", deliveryAddress, &d.deliveryAddress),
		d.setRequiredText("pickupCity", pickupCity, &d.pickupCity),
		d.setRequiredText("deliveryCity", deliveryCity, &d.deliveryCity),
		d.setWeight(weight),
		d.setPrice(price),
		d.setNotes(notes),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDeliveryParams carries the full persisted state of a delivery for
// reconstruction from storage.
type RestoreDeliveryParams struct {
	ID              uint64
	TrackingNumber  kernel.TrackingNumber
	CustomerName    string
	CustomerPhone   string
	PickupAddress   string
	DeliveryAddress string
	PickupCity      string
	DeliveryCity    string
	Weight          float64
	Price           float64
	Status          Status
	DriverID        string
	VehicleID       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	PickupTime      *time.Time
	DeliveryTime    *time.Time
	Notes           string
}

// RestoreDelivery reconstructs a Delivery from its persisted state.
// Unlike NewDelivery it accepts any lifecycle status, assignment state and
// already-stamped timestamps, but still enforces field-level invariants so
// corrupt rows cannot become live aggregates.
func RestoreDelivery(p RestoreDeliveryParams) (*Delivery, error) {
	d := &Delivery{
		id:            p.ID,
		driverID:      p.DriverID,
		vehicleID:     p.VehicleID,
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
		pickupTime:    p.PickupTime,
		deliveryTime:  p.DeliveryTime,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setTrackingNumber(p.TrackingNumber),
		d.setRequiredText("customerName", p.CustomerName, &d.customerName),
		d.setRequiredText("customerPhone", p.CustomerPhone, &d.customerPhone),
		d.setRequiredText("pickupAddress", p.PickupAddress, &d.pickupAddress),
		d.setRequiredText("deliveryAddress", p.DeliveryAddress, &d.deliveryAddress),
		d.setRequiredText("pickupCity", p.PickupCity, &d.pickupCity),
		d.setRequiredText("deliveryCity", p.DeliveryCity, &d.deliveryCity),
		d.setWeight(p.Weight),
		d.setPrice(p.Price),
		d.setNotes(p.Notes),
		d.setStatus(p.Status),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate ensures the Delivery instance was properly constructed through a
// factory method. This prevents bypassing validation by directly
// instantiating the struct.
//
// Returns ErrDeliveryIsNotConstructed if the delivery was not created via
// NewDelivery or RestoreDelivery.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}

	return nil
}

// IsEqual compares two deliveries by their tracking numbers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.trackingNumber.IsEqual(other.trackingNumber)
}

// ID returns the storage-internal numeric key, 0 if not yet persisted.
func (d *Delivery) ID() uint64 {
	return d.id
}

// TrackingNumber returns the externally visible delivery identifier.
func (d *Delivery) TrackingNumber() kernel.TrackingNumber {
	return d.trackingNumber
}

// CustomerName returns the recipient's name.
func (d *Delivery) CustomerName() string {
	return d.customerName
}

// CustomerPhone returns the recipient's phone number.
func (d *Delivery) CustomerPhone() string {
	return d.customerPhone
}

// PickupAddress returns the pickup street address.
func (d *Delivery) PickupAddress() string {
	return d.pickupAddress
}

// DeliveryAddress returns the drop-off street address.
func (d *Delivery) DeliveryAddress() string {
	return d.deliveryAddress
}

// PickupCity returns the pickup city.
func (d *Delivery) PickupCity() string {
	return d.pickupCity
}

// DeliveryCity returns the drop-off city.
func (d *Delivery) DeliveryCity() string {
	return d.deliveryCity
}

// Weight returns the parcel weight.
func (d *Delivery) Weight() float64 {
	return d.weight
}

// Price returns the delivery price.
func (d *Delivery) Price() float64 {
	return d.price
}

// Status returns the current lifecycle status.
func (d *Delivery) Status() Status {
	return d.status
}

// DriverID returns the assigned driver identifier, "" if unassigned.
func (d *Delivery) DriverID() string {
	return d.driverID
}

// VehicleID returns the assigned vehicle identifier, "" if unassigned.
func (d *Delivery) VehicleID() string {
	return d.vehicleID
}

// CreatedAt returns the creation timestamp.
func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

// UpdatedAt returns the last-mutation timestamp.
func (d *Delivery) UpdatedAt() time.Time {
	return d.updatedAt
}

// PickupTime returns the timestamp of the first transition into PickedUp,
// nil if the delivery has not been picked up yet.
func (d *Delivery) PickupTime() *time.Time {
	if d.pickupTime == nil {
		return nil
	}
	t := *d.pickupTime
	return &t
}

// DeliveryTime returns the timestamp of the first transition into Delivered,
// nil if the delivery has not been delivered yet.
func (d *Delivery) DeliveryTime() *time.Time {
	if d.deliveryTime == nil {
		return nil
	}
	t := *d.deliveryTime
	return &t
}

// Notes returns the current free-text notes.
func (d *Delivery) Notes() string {
	return d.notes
}

// Assign attaches a driver and vehicle to the delivery and forces the status
// to Assigned.
//
// This method enforces the following business rules:
//   - Both identifiers must be non-empty
//   - The status becomes Assigned unconditionally, matching the assignment
//     operation's contract (reassignment of an in-flight delivery resets it)
//
// Example:
//
//	if err := d.Assign("driver-42", "vehicle-7"); err != nil {
//	    // Handle assignment failure
//	}
//
// After successful assignment, DriverID and VehicleID return the supplied
// identifiers and Status returns Assigned.
func (d *Delivery) Assign(driverID, vehicleID string) error {
	if driverID == "" {
		return errs.NewValueIsRequiredError("driverId")
	}
	if vehicleID == "" {
		return errs.NewValueIsRequiredError("vehicleId")
	}

	d.driverID = driverID
	d.vehicleID = vehicleID
	d.status = Assigned
	d.updatedAt = time.Now()
	return nil
}

// ChangeStatus moves the delivery to the given status and applies the
// timestamp-stamping rules:
//   - first entry into PickedUp stamps pickupTime
//   - first entry into Delivered stamps deliveryTime
//   - repeated entries leave the stamped times untouched
//
// ChangeStatus accepts any valid status without consulting the transition
// table; ordering legality is the caller's concern (see
// Status.ValidateTransitionTo for strict checking).
//
// Returns an error only when next is not one of the nine defined statuses.
func (d *Delivery) ChangeStatus(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}

	now := time.Now()
	d.status = next
	if next == PickedUp && d.pickupTime == nil {
		d.pickupTime = &now
	}
	if next == Delivered && d.deliveryTime == nil {
		d.deliveryTime = &now
	}
	d.updatedAt = now
	return nil
}

// ReplaceNotes overwrites the delivery's free-text notes.
func (d *Delivery) ReplaceNotes(notes string) error {
	if err := d.setNotes(notes); err != nil {
		return err
	}
	d.updatedAt = time.Now()
	return nil
}

// AttachStorageID records the numeric key assigned by the store.
// The key is attached exactly once; further calls fail.
func (d *Delivery) AttachStorageID(id uint64) error {
	if id == 0 {
		return errs.NewValueIsRequiredError("storage ID")
	}
	if d.id != 0 {
		return ErrStorageIDAlreadyAttached
	}

	d.id = id
	return nil
}

func (d *Delivery) setTrackingNumber(trackingNumber kernel.TrackingNumber) error {
	if err := trackingNumber.Validate(); err != nil {
		return err
	}
	d.trackingNumber = trackingNumber
	return nil
}

func (d *Delivery) setRequiredText(paramName, value string, field *string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(paramName)
	}
	if len(value) > freeTextLimit {
		return errs.NewValueIsOutOfRangeError(paramName, len(value), 1, freeTextLimit)
	}
	*field = value
	return nil
}

func (d *Delivery) setWeight(weight float64) error {
	if weight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%g is not greater than 0", weight))
	}
	d.weight = weight
	return nil
}

func (d *Delivery) setPrice(price float64) error {
	if price <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%g is not greater than 0", price))
	}
	d.price = price
	return nil
}

func (d *Delivery) setNotes(notes string) error {
	if len(notes) > freeTextLimit {
		return errs.NewValueIsOutOfRangeError("notes", len(notes), 0, freeTextLimit)
	}
	d.notes = notes
	return nil
}

func (d *Delivery) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}
