// Package queries contains read operations that retrieve system state.
// Implements the Query side of the CQRS pattern with raw SQL over the GORM
// connection for direct, allocation-light reads that bypass the aggregate
// write model.
package queries

import (
	"database/sql"
	"time"
)

// deliveryColumns is the projection shared by every delivery query.
const deliveryColumns = `
		id,
		tracking_number,
		customer_name,
		customer_phone,
		pickup_address,
		delivery_address,
		pickup_city,
		delivery_city,
		weight,
		price,
		status,
		driver_id,
		vehicle_id,
		created_at,
		updated_at,
		pickup_time,
		delivery_time,
		notes`

// DeliveryResponse is the read model shared by the delivery queries.
// It mirrors the persisted row: DriverID and VehicleID are empty until
// assignment, PickupTime and DeliveryTime are nil until the corresponding
// status has been reached.
type DeliveryResponse struct {
	ID              uint64
	TrackingNumber  string
	CustomerName    string
	CustomerPhone   string
	PickupAddress   string
	DeliveryAddress string
	PickupCity      string
	DeliveryCity    string
	Weight          float64
	Price           float64
	Status          string
	DriverID        string
	VehicleID       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	PickupTime      *time.Time
	DeliveryTime    *time.Time
	Notes           string
}

func scanDeliveryRow(rows *sql.Rows) (DeliveryResponse, error) {
	var resp DeliveryResponse
	var driverID, vehicleID, notes sql.NullString
	var pickupTime, deliveryTime sql.NullTime

	err := rows.Scan(
		&resp.ID,
		&resp.TrackingNumber,
		&resp.CustomerName,
		&resp.CustomerPhone,
		&resp.PickupAddress,
		&resp.DeliveryAddress,
		&resp.PickupCity,
		&resp.DeliveryCity,
		&resp.Weight,
		&resp.Price,
		&resp.Status,
		&driverID,
		&vehicleID,
		&resp.CreatedAt,
		&resp.UpdatedAt,
		&pickupTime,
		&deliveryTime,
		&notes,
	)
	if err != nil {
		return DeliveryResponse{}, err
	}

	resp.DriverID = driverID.String
	resp.VehicleID = vehicleID.String
	resp.Notes = notes.String
	if pickupTime.Valid {
		t := pickupTime.Time
		resp.PickupTime = &t
	}
	if deliveryTime.Valid {
		t := deliveryTime.Time
		resp.DeliveryTime = &t
	}

	return resp, nil
}
