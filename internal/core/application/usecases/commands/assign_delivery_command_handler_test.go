package commands_test

import (
	"errors"
	"testing"

	"delivery/internal/core/application/usecases/commands"
	"delivery/internal/core/domain/model/delivery"
	"delivery/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssignDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	d := restoredDelivery(delivery.Pending)
	cmd, err := commands.NewAssignDeliveryCommand(d.TrackingNumber(), "driver-42", "vehicle-7")
	require.NoError(t, err)

	repo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("GetByTrackingNumber", mock.Anything, cmd.TrackingNumber()).Return(d, nil).Once(),
		repo.On("Update", mock.Anything, d).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("Publish", mock.Anything, mock.AnythingOfType("event.DeliveryEvent")).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignDeliveryCommandHandler(factory, publisher, discardLogger())
	assigned, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, delivery.Assigned, assigned.Status())
	require.Equal(t, "driver-42", assigned.DriverID())
	require.Equal(t, "vehicle-7", assigned.VehicleID())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestAssignDeliveryCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AssignDeliveryCommand{} // not constructed properly
	factory := new(MockDeliveryUoWFactory)
	publisher := new(MockEventPublisher)
	h := commands.NewAssignDeliveryCommandHandler(factory, publisher, discardLogger())
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrAssignDeliveryCommandIsNotConstructed)
}

func TestAssignDeliveryCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	d := restoredDelivery(delivery.Pending)
	cmd, err := commands.NewAssignDeliveryCommand(d.TrackingNumber(), "driver-42", "vehicle-7")
	require.NoError(t, err)

	notFound := errs.NewObjectNotFoundError("trackingNumber", cmd.TrackingNumber().String())

	repo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("GetByTrackingNumber", mock.Anything, cmd.TrackingNumber()).Return(nil, notFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	h := commands.NewAssignDeliveryCommandHandler(factory, publisher, discardLogger())
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestAssignDeliveryCommandHandler_Handle_UpdateError(t *testing.T) {
	ctx := t.Context()
	d := restoredDelivery(delivery.Pending)
	cmd, err := commands.NewAssignDeliveryCommand(d.TrackingNumber(), "driver-42", "vehicle-7")
	require.NoError(t, err)

	repo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("GetByTrackingNumber", mock.Anything, cmd.TrackingNumber()).Return(d, nil).Once(),
		repo.On("Update", mock.Anything, d).Return(errors.New("update failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	h := commands.NewAssignDeliveryCommandHandler(factory, publisher, discardLogger())
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestAssignDeliveryCommandHandler_Handle_ReassignsInFlightDelivery(t *testing.T) {
	ctx := t.Context()
	d := restoredDelivery(delivery.InTransit)
	cmd, err := commands.NewAssignDeliveryCommand(d.TrackingNumber(), "driver-99", "vehicle-3")
	require.NoError(t, err)

	repo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("GetByTrackingNumber", mock.Anything, cmd.TrackingNumber()).Return(d, nil).Once(),
		repo.On("Update", mock.Anything, d).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("Publish", mock.Anything, mock.AnythingOfType("event.DeliveryEvent")).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignDeliveryCommandHandler(factory, publisher, discardLogger())
	assigned, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, delivery.Assigned, assigned.Status())
	require.Equal(t, "driver-99", assigned.DriverID())
}
