package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"delivery/internal/core/domain/event"
	"delivery/internal/core/domain/model/delivery"
	"delivery/internal/core/domain/model/kernel"
	"delivery/internal/core/ports"
)

// maxTrackingNumberAttempts bounds tracking number regeneration when the
// store reports a collision. Collisions are negligible but not impossible,
// so persistent failure after this many attempts surfaces as an error.
const maxTrackingNumberAttempts = 3

// CreateDeliveryCommandHandler handles the business logic for delivery
// creation. Mints a unique tracking number, persists the new delivery in
// Pending status, and announces it with a delivery-created event.
//
// Example:
//
//	handler := NewCreateDeliveryCommandHandler(uowFactory, publisher, logger)
//	cmd, _ := NewCreateDeliveryCommand("John Doe", "+221701234567",
//	    "12 Rue Felix Faure", "Almadies Route 5", "Dakar", "Dakar", 5.5, 2500, "")
//
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("delivery creation failed: %w", err)
//	}
//	// created.TrackingNumber() is the customer-facing identifier
type CreateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCreateDeliveryCommandHandler creates a handler for delivery creation.
// Requires a DeliveryUoWFactory for transactional persistence and an
// EventPublisher for post-commit announcements.
func NewCreateDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "create_delivery_handler"),
	}
}

// Handle processes the delivery creation command.
//
// A fresh tracking number is generated per attempt; if the store rejects the
// write because the number already exists, the handler regenerates and
// retries up to maxTrackingNumberAttempts before surfacing the failure. On
// successful commit a delivery-created event is published best-effort; a
// publish failure never rolls back the persisted delivery.
func (h *CreateDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd CreateDeliveryCommand,
) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= maxTrackingNumberAttempts; attempt++ {
		d, err := delivery.NewDelivery(
			kernel.GenerateTrackingNumber(),
			cmd.CustomerName(),
			cmd.CustomerPhone(),
			cmd.PickupAddress(),
			cmd.DeliveryAddress(),
			cmd.PickupCity(),
			cmd.DeliveryCity(),
			cmd.Weight(),
			cmd.Price(),
			cmd.Notes(),
		)
		if err != nil {
			return nil, err
		}

		uow := h.uowFactory.Create()
		if err = uow.Begin(ctx); err != nil {
			return nil, err
		}

		addErr := uow.DeliveryRepository().Add(ctx, d)
		if addErr != nil {
			_ = uow.Rollback(ctx)
			if errors.Is(addErr, ports.ErrDuplicateTrackingNumber) {
				h.logger.WarnContext(ctx, "Tracking number collision, regenerating",
					"trackingNumber", d.TrackingNumber().String(),
					"attempt", attempt)
				continue
			}
			return nil, addErr
		}

		if err = uow.Commit(ctx); err != nil {
			_ = uow.Rollback(ctx)
			return nil, err
		}

		publishDeliveryEvent(ctx, h.publisher, h.logger, d, event.TypeDeliveryCreated)
		return d, nil
	}

	return nil, fmt.Errorf("exhausted %d tracking number attempts: %w",
		maxTrackingNumberAttempts, ports.ErrDuplicateTrackingNumber)
}
