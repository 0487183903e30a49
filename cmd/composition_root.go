package cmd

import (
	"log/slog"

	httpin "delivery/internal/adapters/in/http"
	kafkain "delivery/internal/adapters/in/kafka"
	kafkaout "delivery/internal/adapters/out/kafka"
	"delivery/internal/adapters/out/postgres"
	"delivery/internal/core/application/usecases/commands"
	"delivery/internal/core/application/usecases/queries"
	"delivery/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires every dependency explicitly. All construction happens
// here; nothing in the application reaches for process-wide singletons.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
	producer   *kafkaout.Producer
}

// NewCompositionRoot builds the shared infrastructure: the unit of work
// factory over the GORM connection and the Kafka producer for the delivery
// events topic.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		producer: kafkaout.NewProducer(
			[]string{config.KafkaHost},
			config.KafkaDeliveryEventsTopic,
			logger,
		),
	}
}

// Close flushes and releases the broker producer.
func (c *CompositionRoot) Close() error {
	return c.producer.Close()
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	return commands.NewCreateDeliveryCommandHandler(c.deliveryUoWFactory(), c.producer, c.logger)
}

func (c *CompositionRoot) CreateAssignDeliveryCommandHandler() commands.AssignDeliveryCommandHandler {
	return commands.NewAssignDeliveryCommandHandler(c.deliveryUoWFactory(), c.producer, c.logger)
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	return commands.NewUpdateDeliveryStatusCommandHandler(
		c.deliveryUoWFactory(), c.producer, c.logger, c.config.StrictStatusTransitions)
}

func (c *CompositionRoot) CreateGetDeliveryByTrackingNumberQueryHandler() queries.GetDeliveryByTrackingNumberQueryHandler {
	return queries.NewGetDeliveryByTrackingNumberQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveriesQueryHandler() queries.GetDeliveriesQueryHandler {
	return queries.NewGetDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStaleDeliveriesQueryHandler() queries.GetStaleDeliveriesQueryHandler {
	return queries.NewGetStaleDeliveriesQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the REST adapter with its handlers.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateDeliveryCommandHandler(),
		c.CreateAssignDeliveryCommandHandler(),
		c.CreateUpdateDeliveryStatusCommandHandler(),
		c.CreateGetDeliveryByTrackingNumberQueryHandler(),
		c.CreateGetDeliveriesQueryHandler(),
	)
}

// CreateDeliveryEventConsumer builds the consumer for the service's own
// event stream.
func (c *CompositionRoot) CreateDeliveryEventConsumer() *kafkain.DeliveryEventConsumer {
	return kafkain.NewDeliveryEventConsumer(
		[]string{c.config.KafkaHost},
		c.config.KafkaConsumerGroup,
		c.config.KafkaDeliveryEventsTopic,
		c.logger,
	)
}

// CreateAuditConsumers builds the audit consumers for the driver and vehicle
// event streams of neighboring services.
func (c *CompositionRoot) CreateAuditConsumers() []*kafkain.AuditConsumer {
	return []*kafkain.AuditConsumer{
		kafkain.NewAuditConsumer(
			[]string{c.config.KafkaHost},
			c.config.KafkaConsumerGroup,
			c.config.KafkaDriverEventsTopic,
			c.logger,
		),
		kafkain.NewAuditConsumer(
			[]string{c.config.KafkaHost},
			c.config.KafkaConsumerGroup,
			c.config.KafkaVehicleEventsTopic,
			c.logger,
		),
	}
}

// CreateJobManager assembles the background job layer.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetStaleDeliveriesQueryHandler(),
		c.config.StaleDeliveryThreshold,
		c.logger,
	)
}

// FuncDeliveryUoWFactory adapts a plain constructor function to the
// commands.DeliveryUoWFactory interface, bridging the ports-level unit of
// work factory into the application layer without an extra wrapper type.
type FuncDeliveryUoWFactory func() commands.DeliveryUoW

// Create invokes the wrapped constructor to produce a fresh unit of work.
func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}
