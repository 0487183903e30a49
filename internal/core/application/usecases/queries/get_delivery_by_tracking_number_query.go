package queries

import (
	"errors"

	"delivery/internal/core/domain/model/kernel"
	"delivery/internal/pkg/guard"
)

var ErrGetDeliveryByTrackingNumberQueryIsNotConstructed = errors.New(
	"GetDeliveryByTrackingNumberQuery must be created via NewGetDeliveryByTrackingNumberQuery constructor",
)

// GetDeliveryByTrackingNumberQuery retrieves a single delivery by its
// customer-facing tracking number. This is the public tracking lookup: the
// tracking number is the only identifier customers ever see.
//
// Example:
//
//	tn, _ := kernel.TrackingNumberFromString("DEL1717171717171A1B2C3D4")
//	query, _ := NewGetDeliveryByTrackingNumberQuery(tn)
//	handler := NewGetDeliveryByTrackingNumberQueryHandler(db)
//
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("tracking lookup failed: %w", err)
//	}
//	fmt.Printf("Delivery %s is %s\n", resp.TrackingNumber, resp.Status)
type GetDeliveryByTrackingNumberQuery struct {
	trackingNumber kernel.TrackingNumber

	guard guard.ConstructorGuard
}

// NewGetDeliveryByTrackingNumberQuery creates a tracking lookup query.
// Returns an error if the tracking number is not well-formed.
func NewGetDeliveryByTrackingNumberQuery(
	trackingNumber kernel.TrackingNumber,
) (GetDeliveryByTrackingNumberQuery, error) {
	if err := trackingNumber.Validate(); err != nil {
		return GetDeliveryByTrackingNumberQuery{}, err
	}

	return GetDeliveryByTrackingNumberQuery{
		trackingNumber: trackingNumber,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDeliveryByTrackingNumberQueryIsNotConstructed if validation fails.
func (q GetDeliveryByTrackingNumberQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryByTrackingNumberQueryIsNotConstructed)
}

// TrackingNumber returns the tracking number to look up.
func (q GetDeliveryByTrackingNumberQuery) TrackingNumber() kernel.TrackingNumber {
	return q.trackingNumber
}
