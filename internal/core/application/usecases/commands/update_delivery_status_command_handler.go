package commands

import (
	"context"
	"log/slog"

	"delivery/internal/core/domain/event"
	"delivery/internal/core/domain/model/delivery"
	"delivery/internal/core/ports"
)

// UpdateDeliveryStatusCommandHandler handles the business logic for status
// progression. Loads the delivery by tracking number, applies the status
// change with its timestamp-stamping rules, optionally replaces notes, and
// announces the change with a delivery-status-updated event.
//
// With strictTransitions enabled the handler validates the change against the
// lifecycle adjacency table and rejects illegal jumps (e.g. DELIVERED back to
// PENDING). Disabled, it accepts any defined status, matching the permissive
// baseline behavior.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory        DeliveryUoWFactory
	publisher         ports.EventPublisher
	logger            *slog.Logger
	strictTransitions bool
}

// NewUpdateDeliveryStatusCommandHandler creates a handler for status updates.
// strictTransitions selects between transition-table enforcement and the
// permissive baseline.
func NewUpdateDeliveryStatusCommandHandler(
	uowFactory DeliveryUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
	strictTransitions bool,
) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory:        uowFactory,
		publisher:         publisher,
		logger:            logger.With("component", "update_delivery_status_handler"),
		strictTransitions: strictTransitions,
	}
}

// Handle processes the status update command.
// First entry into PICKED_UP stamps the pickup time; first entry into
// DELIVERED stamps the delivery time; repeats leave the stamps untouched.
// A not-found lookup propagates to the caller; a publish failure after commit
// does not.
func (h *UpdateDeliveryStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateDeliveryStatusCommand,
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

	if h.strictTransitions {
		if err = d.Status().ValidateTransitionTo(cmd.Status()); err != nil {
			return nil, err
		}
	}

	if err = d.ChangeStatus(cmd.Status()); err != nil {
		return nil, err
	}

	if notes := cmd.Notes(); notes != nil {
		if err = d.ReplaceNotes(*notes); err != nil {
			return nil, err
		}
	}

	if err = repo.Update(ctx, d); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishDeliveryEvent(ctx, h.publisher, h.logger, d, event.TypeDeliveryStatusUpdated)
	return d, nil
}
