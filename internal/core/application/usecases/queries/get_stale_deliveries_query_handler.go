package queries

import (
	"context"

	"delivery/internal/core/domain/model/delivery"

	"gorm.io/gorm"
)

// GetStaleDeliveriesQueryHandler finds deliveries that stopped progressing.
// A delivery is stale when its status is non-terminal and its last mutation
// predates the query's cutoff.
type GetStaleDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetStaleDeliveriesQueryHandler creates a handler for staleness queries.
// Requires a GORM database connection for query execution.
func NewGetStaleDeliveriesQueryHandler(db *gorm.DB) GetStaleDeliveriesQueryHandler {
	return GetStaleDeliveriesQueryHandler{db: db}
}

// Handle executes the staleness query.
// Terminal deliveries never qualify regardless of age. Results are oldest
// first so the longest-stuck parcels surface at the top.
func (h GetStaleDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetStaleDeliveriesQuery,
) ([]DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT`+deliveryColumns+`
		FROM deliveries
		WHERE status NOT IN (?, ?, ?)
		  AND updated_at < ?
		ORDER BY updated_at
	`,
		delivery.Delivered.String(),
		delivery.Failed.String(),
		delivery.Cancelled.String(),
		query.Cutoff(),
	).Rows()
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
