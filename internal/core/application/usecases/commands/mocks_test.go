package commands_test

import (
	"context"
	"io"
	"log/slog"

	"delivery/internal/core/application/usecases/commands"
	"delivery/internal/core/domain/event"
	"delivery/internal/core/domain/model/delivery"
	"delivery/internal/core/domain/model/kernel"
	"delivery/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) GetByTrackingNumber(
	ctx context.Context,
	tn kernel.TrackingNumber,
) (*delivery.Delivery, error) {
	args := m.Called(ctx, tn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

type MockDeliveryUoW struct{ mock.Mock }

func (m *MockDeliveryUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, evt event.DeliveryEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func restoredDelivery(status delivery.Status) *delivery.Delivery {
	d, err := delivery.RestoreDelivery(delivery.RestoreDeliveryParams{
		ID:              1,
		TrackingNumber:  kernel.GenerateTrackingNumber(),
		CustomerName:    "John Doe",
		CustomerPhone:   "+221701234567",
		PickupAddress:   "12 Rue Felix Faure",
		DeliveryAddress: "Almadies Route 5",
		PickupCity:      "Dakar",
		DeliveryCity:    "Dakar",
		Weight:          5.5,
		Price:           2500,
		Status:          status,
	})
	if err != nil {
		panic(err)
	}
	return d
}
