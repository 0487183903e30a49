package commands

import (
	"context"
	"log/slog"

	"delivery/internal/core/domain/event"
	"delivery/internal/core/domain/model/delivery"
	"delivery/internal/core/ports"
)

// AssignDeliveryCommandHandler handles the business logic for driver/vehicle
// assignment. Loads the delivery by tracking number, attaches the
// identifiers, forces the status to Assigned, and announces the change with a
// delivery-assigned event.
type AssignDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewAssignDeliveryCommandHandler creates a handler for assignment operations.
func NewAssignDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AssignDeliveryCommandHandler {
	return AssignDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "assign_delivery_handler"),
	}
}

// Handle processes the assignment command.
// The read-modify-persist sequence runs inside a unit of work so concurrent
// mutations on the same tracking number serialize. A not-found lookup
// propagates to the caller; a publish failure after commit does not.
func (h *AssignDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd AssignDeliveryCommand,
) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryRepository()
	d, err := repo.GetByTrackingNumber(ctx, cmd.TrackingNumber())
	if err != nil {
		return nil, err
	}

	if err = d.Assign(cmd.DriverID(), cmd.VehicleID()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, d); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishDeliveryEvent(ctx, h.publisher, h.logger, d, event.TypeDeliveryAssigned)
	return d, nil
}
