package queries

import (
	"context"

	"delivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetDeliveryByTrackingNumberQueryHandler resolves tracking lookups against
// the database with a direct SQL read.
type GetDeliveryByTrackingNumberQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryByTrackingNumberQueryHandler creates a handler for tracking
// lookups. Requires a GORM database connection for query execution.
func NewGetDeliveryByTrackingNumberQueryHandler(db *gorm.DB) GetDeliveryByTrackingNumberQueryHandler {
	return GetDeliveryByTrackingNumberQueryHandler{db: db}
}

// Handle executes the tracking lookup.
// Returns an ObjectNotFoundError when no delivery carries the tracking number.
func (h GetDeliveryByTrackingNumberQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryByTrackingNumberQuery,
) (DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return DeliveryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT`+deliveryColumns+`
		FROM deliveries
		WHERE tracking_number = ?
	`, query.TrackingNumber().String()).Rows()
	if err != nil {
		return DeliveryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return DeliveryResponse{}, err
		}
		return DeliveryResponse{}, errs.NewObjectNotFoundError(
			"trackingNumber", query.TrackingNumber().String())
	}

	return scanDeliveryRow(rows)
}
