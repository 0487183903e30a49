package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetDeliveriesQueryHandler executes delivery listings against the database
// with direct SQL reads. One handler serves all three listing variants.
type GetDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveriesQueryHandler creates a handler for delivery listings.
// Requires a GORM database connection for query execution.
func NewGetDeliveriesQueryHandler(db *gorm.DB) GetDeliveriesQueryHandler {
	return GetDeliveriesQueryHandler{db: db}
}

// Handle executes the listing.
// Applies the query's status or driver filter when present and returns the
// matching deliveries newest first. An empty result is an empty slice, not an
// error.
func (h GetDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveriesQuery,
) ([]DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT` + deliveryColumns + `
		FROM deliveries`
	args := make([]any, 0, 1)

	switch {
	case query.Status() != nil:
		sql += `
		WHERE status = ?`
		args = append(args, query.Status().String())
	case query.DriverID() != "":
		sql += `
		WHERE driver_id = ?`
		args = append(args, query.DriverID())
	}

	sql += `
		ORDER BY created_at DESC`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := make([]DeliveryResponse, 0)
	for rows.Next() {
		resp, scanErr := scanDeliveryRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
