package queries_test

import (
	"context"
	"testing"
	"time"

	"delivery/internal/adapters/out/postgres/deliveryrepo"
	"delivery/internal/core/application/usecases/queries"
	"delivery/internal/core/domain/model/delivery"
	"delivery/internal/core/domain/model/kernel"
	"delivery/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type noopAggregateTracker struct{}

func (noopAggregateTracker) TrackAggregate(_ kernel.TrackingNumber, _ any) {}

// DeliveryQueriesIntegrationTestSuite exercises the read-side handlers
// against a real PostgreSQL database seeded through the write-side repository.
type DeliveryQueriesIntegrationTestSuite struct {
	suite.Suite
	container       *postgres.PostgresContainer
	db              *gorm.DB
	repo            *deliveryrepo.GormDeliveryRepository
	byTrackingQuery queries.GetDeliveryByTrackingNumberQueryHandler
	listHandler     queries.GetDeliveriesQueryHandler
	staleHandler    queries.GetStaleDeliveriesQueryHandler
}

func (suite *DeliveryQueriesIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&deliveryrepo.DeliveryDTO{})
	suite.Require().NoError(err)

	suite.repo = deliveryrepo.NewGormDeliveryRepository(db, noopAggregateTracker{})
	suite.byTrackingQuery = queries.NewGetDeliveryByTrackingNumberQueryHandler(db)
	suite.listHandler = queries.NewGetDeliveriesQueryHandler(db)
	suite.staleHandler = queries.NewGetStaleDeliveriesQueryHandler(db)
}

func (suite *DeliveryQueriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *DeliveryQueriesIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE deliveries RESTART IDENTITY").Error
	suite.Require().NoError(err)
}

func (suite *DeliveryQueriesIntegrationTestSuite) seedDelivery(mutate func(*delivery.Delivery)) *delivery.Delivery {
	d, err := delivery.NewDelivery(
		kernel.GenerateTrackingNumber(),
		"John Doe", "+221701234567",
		"12 Rue Felix Faure", "Almadies Route 5",
		"Dakar", "Dakar",
		5.5, 2500, "")
	suite.Require().NoError(err)

	if mutate != nil {
		mutate(d)
	}

	err = suite.repo.Add(context.Background(), d)
	suite.Require().NoError(err)
	return d
}

func (suite *DeliveryQueriesIntegrationTestSuite) TestGetDeliveryByTrackingNumber_Found() {
	d := suite.seedDelivery(nil)

	query, err := queries.NewGetDeliveryByTrackingNumberQuery(d.TrackingNumber())
	suite.Require().NoError(err)

	resp, err := suite.byTrackingQuery.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal(d.TrackingNumber().String(), resp.TrackingNumber)
	suite.Equal(d.ID(), resp.ID)
	suite.Equal("John Doe", resp.CustomerName)
	suite.Equal("PENDING", resp.Status)
	suite.Empty(resp.DriverID)
	suite.Nil(resp.PickupTime)
	suite.Nil(resp.DeliveryTime)
}

func (suite *DeliveryQueriesIntegrationTestSuite) TestGetDeliveryByTrackingNumber_NotFound() {
	query, err := queries.NewGetDeliveryByTrackingNumberQuery(kernel.GenerateTrackingNumber())
	suite.Require().NoError(err)

	_, err = suite.byTrackingQuery.Handle(context.Background(), query)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DeliveryQueriesIntegrationTestSuite) TestGetDeliveries_EmptyDatabase() {
	result, err := suite.listHandler.Handle(context.Background(), queries.NewGetDeliveriesQuery())
	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *DeliveryQueriesIntegrationTestSuite) TestGetDeliveries_NewestFirst() {
	first := suite.seedDelivery(nil)
	time.Sleep(10 * time.Millisecond)
	second := suite.seedDelivery(nil)

	result, err := suite.listHandler.Handle(context.Background(), queries.NewGetDeliveriesQuery())
	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(second.TrackingNumber().String(), result[0].TrackingNumber)
	suite.Equal(first.TrackingNumber().String(), result[1].TrackingNumber)
}

func (suite *DeliveryQueriesIntegrationTestSuite) TestGetDeliveries_FilterByStatus() {
	suite.seedDelivery(nil)
	inTransit := suite.seedDelivery(func(d *delivery.Delivery) {
		suite.Require().NoError(d.Assign("driver-42", "vehicle-7"))
		suite.Require().NoError(d.ChangeStatus(delivery.InTransit))
	})

	query, err := queries.NewGetDeliveriesByStatusQuery(delivery.InTransit)
	suite.Require().NoError(err)

	result, err := suite.listHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(inTransit.TrackingNumber().String(), result[0].TrackingNumber)
	suite.Equal("IN_TRANSIT", result[0].Status)
}

func (suite *DeliveryQueriesIntegrationTestSuite) TestGetDeliveries_FilterByDriver() {
	suite.seedDelivery(nil)
	assigned := suite.seedDelivery(func(d *delivery.Delivery) {
		suite.Require().NoError(d.Assign("driver-42", "vehicle-7"))
	})
	suite.seedDelivery(func(d *delivery.Delivery) {
		suite.Require().NoError(d.Assign("driver-99", "vehicle-3"))
	})

	query, err := queries.NewGetDeliveriesByDriverQuery("driver-42")
	suite.Require().NoError(err)

	result, err := suite.listHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(assigned.TrackingNumber().String(), result[0].TrackingNumber)
	suite.Equal("driver-42", result[0].DriverID)
}

func (suite *DeliveryQueriesIntegrationTestSuite) TestGetStaleDeliveries_SkipsTerminalAndFresh() {
	stuck := suite.seedDelivery(func(d *delivery.Delivery) {
		suite.Require().NoError(d.Assign("driver-42", "vehicle-7"))
	})
	suite.seedDelivery(func(d *delivery.Delivery) {
		suite.Require().NoError(d.ChangeStatus(delivery.Delivered))
	})
	suite.seedDelivery(func(d *delivery.Delivery) {
		suite.Require().NoError(d.ChangeStatus(delivery.Cancelled))
	})

	// Only rows older than the cutoff qualify; push the stuck delivery's
	// update into the past.
	err := suite.db.Exec(
		"UPDATE deliveries SET updated_at = ? WHERE tracking_number IN (SELECT tracking_number FROM deliveries)",
		time.Now().Add(-2*time.Hour),
	).Error
	suite.Require().NoError(err)

	query, err := queries.NewGetStaleDeliveriesQuery(time.Now().Add(-time.Hour))
	suite.Require().NoError(err)

	result, err := suite.staleHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(stuck.TrackingNumber().String(), result[0].TrackingNumber)
}

func (suite *DeliveryQueriesIntegrationTestSuite) TestGetStaleDeliveries_FreshRowsExcluded() {
	suite.seedDelivery(nil)

	query, err := queries.NewGetStaleDeliveriesQuery(time.Now().Add(-time.Hour))
	suite.Require().NoError(err)

	result, err := suite.staleHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *DeliveryQueriesIntegrationTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	_, err := suite.listHandler.Handle(context.Background(), queries.GetDeliveriesQuery{})
	suite.Require().Error(err)
	suite.ErrorIs(err, queries.ErrGetDeliveriesQueryIsNotConstructed)
}

func TestDeliveryQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DeliveryQueriesIntegrationTestSuite))
}
