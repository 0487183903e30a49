package queries

import (
	"errors"

	"delivery/internal/core/domain/model/delivery"
	"delivery/internal/pkg/errs"
	"delivery/internal/pkg/guard"
)

var ErrGetDeliveriesQueryIsNotConstructed = errors.New(
	"GetDeliveriesQuery must be created via a NewGetDeliveries*Query constructor",
)

// GetDeliveriesQuery retrieves delivery listings, newest first. Three
// constructor variants cover the listing surfaces: the full listing, the
// per-status listing, and the per-driver workload listing. A query carries at
// most one filter.
//
// Example:
//
//	query, _ := NewGetDeliveriesByStatusQuery(delivery.InTransit)
//	handler := NewGetDeliveriesQueryHandler(db)
//
//	inTransit, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("listing failed: %w", err)
//	}
//	fmt.Printf("%d deliveries in transit\n", len(inTransit))
type GetDeliveriesQuery struct {
	status   *delivery.Status
	driverID string

	guard guard.ConstructorGuard
}

// NewGetDeliveriesQuery creates an unfiltered listing query.
func NewGetDeliveriesQuery() GetDeliveriesQuery {
	return GetDeliveriesQuery{guard: guard.NewConstructorGuard()}
}

// NewGetDeliveriesByStatusQuery creates a listing query filtered to one
// lifecycle status. Returns an error if the status is not one of the nine
// defined values.
func NewGetDeliveriesByStatusQuery(status delivery.Status) (GetDeliveriesQuery, error) {
	if err := status.Validate(); err != nil {
		return GetDeliveriesQuery{}, err
	}

	return GetDeliveriesQuery{
		status: &status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// NewGetDeliveriesByDriverQuery creates a listing query filtered to one
// driver's assigned deliveries. Returns an error if the driver identifier is
// empty.
func NewGetDeliveriesByDriverQuery(driverID string) (GetDeliveriesQuery, error) {
	if driverID == "" {
		return GetDeliveriesQuery{}, errs.NewValueIsRequiredError("driverId")
	}

	return GetDeliveriesQuery{
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
// Returns ErrGetDeliveriesQueryIsNotConstructed if validation fails.
func (q GetDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveriesQueryIsNotConstructed)
}

// Status returns the status filter, nil when the listing is unfiltered by
// status.
func (q GetDeliveriesQuery) Status() *delivery.Status {
	return q.status
}

// DriverID returns the driver filter, "" when the listing is unfiltered by
// driver.
func (q GetDeliveriesQuery) DriverID() string {
	return q.driverID
}
