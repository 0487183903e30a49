package ports

import (
	"context"
	"errors"

	"delivery/internal/core/domain/model/delivery"
	"delivery/internal/core/domain/model/kernel"
)

// ErrDuplicateTrackingNumber is returned by DeliveryRepository.Add when the
// store rejects a write because the tracking number already exists. The
// application layer treats it as retryable: regenerate the tracking number
// and try again, up to a bounded number of attempts.
var ErrDuplicateTrackingNumber = errors.New("tracking number already exists")

// DeliveryRepository defines the persistence contract for delivery aggregates.
// Provides methods for storing and retrieving delivery entities by their
// externally visible tracking number.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate to storage and attaches the
	// store-assigned numeric key to it. Returns ErrDuplicateTrackingNumber
	// (possibly wrapped) if the tracking number collides with an existing row.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate.
	// The delivery must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// GetByTrackingNumber retrieves a delivery by its tracking number.
	// Returns errs.ObjectNotFoundError if no delivery carries that number.
	GetByTrackingNumber(ctx context.Context, trackingNumber kernel.TrackingNumber) (*delivery.Delivery, error)
}
