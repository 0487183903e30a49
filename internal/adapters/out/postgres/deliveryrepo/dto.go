// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery persistence. This package implements the repository pattern for
// the delivery domain aggregate, handling the conversion between domain
// entities and database representations.
package deliveryrepo

import (
	"time"

	"delivery/internal/core/domain/model/delivery"
	"delivery/internal/core/domain/model/kernel"
)

// DeliveryDTO represents the database structure for persisting delivery
// aggregates. The numeric primary key is store-assigned; the tracking number
// carries a unique index because it is the only identifier the outside world
// uses. Status and driver columns are indexed for the listing queries.
type DeliveryDTO struct {
	ID              uint64     `gorm:"primaryKey;autoIncrement"`
	TrackingNumber  string     `gorm:"size:32;uniqueIndex"`
	CustomerName    string     `gorm:"size:500"`
	CustomerPhone   string     `gorm:"size:500"`
	PickupAddress   string     `gorm:"size:500"`
	DeliveryAddress string     `gorm:"size:500"`
	PickupCity      string     `gorm:"size:500"`
	DeliveryCity    string     `gorm:"size:500"`
	Weight          float64    `gorm:"type:decimal(10,2)"`
	Price           float64    `gorm:"type:decimal(10,2)"`
	Status          string     `gorm:"size:32;index"`
	DriverID        string     `gorm:"size:64;index"`
	VehicleID       string     `gorm:"size:64"`
	CreatedAt       time.Time
	UpdatedAt       time.Time  `gorm:"index"`
	PickupTime      *time.Time
	DeliveryTime    *time.Time
	Notes           string     `gorm:"size:500"`
}

// TableName specifies the database table name for delivery entities.
// Overrides GORM's default naming convention to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// fromDomain converts a delivery domain aggregate to its database
// representation.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	return DeliveryDTO{
		ID:              aggregate.ID(),
		TrackingNumber:  aggregate.TrackingNumber().String(),
		CustomerName:    aggregate.CustomerName(),
		CustomerPhone:   aggregate.CustomerPhone(),
		PickupAddress:   aggregate.PickupAddress(),
		DeliveryAddress: aggregate.DeliveryAddress(),
		PickupCity:      aggregate.PickupCity(),
		DeliveryCity:    aggregate.DeliveryCity(),
		Weight:          aggregate.Weight(),
		Price:           aggregate.Price(),
		Status:          aggregate.Status().String(),
		DriverID:        aggregate.DriverID(),
		VehicleID:       aggregate.VehicleID(),
		CreatedAt:       aggregate.CreatedAt(),
		UpdatedAt:       aggregate.UpdatedAt(),
		PickupTime:      aggregate.PickupTime(),
		DeliveryTime:    aggregate.DeliveryTime(),
		Notes:           aggregate.Notes(),
	}
}

// toDomain converts a database DTO to a delivery domain aggregate.
// Reconstructs the complete aggregate via RestoreDelivery so field-level
// invariants still hold on the way out of storage.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	trackingNumber, err := kernel.TrackingNumberFromString(dto.TrackingNumber)
	if err != nil {
		return nil, err
	}

	status, err := delivery.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(delivery.RestoreDeliveryParams{
		ID:              dto.ID,
		TrackingNumber:  trackingNumber,
		CustomerName:    dto.CustomerName,
		CustomerPhone:   dto.CustomerPhone,
		PickupAddress:   dto.PickupAddress,
		DeliveryAddress: dto.DeliveryAddress,
		PickupCity:      dto.PickupCity,
		DeliveryCity:    dto.DeliveryCity,
		Weight:          dto.Weight,
		Price:           dto.Price,
		Status:          status,
		DriverID:        dto.DriverID,
		VehicleID:       dto.VehicleID,
		CreatedAt:       dto.CreatedAt,
		UpdatedAt:       dto.UpdatedAt,
		PickupTime:      dto.PickupTime,
		DeliveryTime:    dto.DeliveryTime,
		Notes:           dto.Notes,
	})
}
