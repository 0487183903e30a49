package queries

import (
	"errors"
	"time"

	"delivery/internal/pkg/errs"
	"delivery/internal/pkg/guard"
)

var ErrGetStaleDeliveriesQueryIsNotConstructed = errors.New(
	"GetStaleDeliveriesQuery must be created via NewGetStaleDeliveriesQuery constructor",
)

// GetStaleDeliveriesQuery retrieves deliveries stuck in a non-terminal status
// with no mutation since the cutoff. Feeds the stale delivery monitor, which
// flags parcels that stopped moving through the lifecycle.
type GetStaleDeliveriesQuery struct {
	cutoff time.Time

	guard guard.ConstructorGuard
}

// NewGetStaleDeliveriesQuery creates a staleness query.
// Deliveries last updated strictly before cutoff qualify. Returns an error if
// cutoff is the zero time.
func NewGetStaleDeliveriesQuery(cutoff time.Time) (GetStaleDeliveriesQuery, error) {
	if cutoff.IsZero() {
		return GetStaleDeliveriesQuery{}, errs.NewValueIsRequiredError("cutoff")
	}

	return GetStaleDeliveriesQuery{
		cutoff: cutoff,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetStaleDeliveriesQueryIsNotConstructed if validation fails.
func (q GetStaleDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetStaleDeliveriesQueryIsNotConstructed)
}

// Cutoff returns the staleness threshold.
func (q GetStaleDeliveriesQuery) Cutoff() time.Time {
	return q.cutoff
}
