package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"delivery/cmd"
	"delivery/internal/adapters/out/postgres/deliveryrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustOpenDatabase(configs)

	root := cmd.NewCompositionRoot(configs, gormDB, logger)
	defer func() {
		if err := root.Close(); err != nil {
			logger.Error("Failed to close composition root", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startConsumers(ctx, root, logger)

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	runWebServer(ctx, root, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Fatalf("Error loading .env file")
	}

	return cmd.Config{
		HTTPPort:                 envVariable("HTTP_PORT"),
		DBHost:                   envVariable("DB_HOST"),
		DBPort:                   envVariable("DB_PORT"),
		DBUser:                   envVariable("DB_USER"),
		DBPassword:               envVariable("DB_PASSWORD"),
		DBName:                   envVariable("DB_NAME"),
		DBSslMode:                envVariable("DB_SSLMODE"),
		KafkaHost:                envVariable("KAFKA_HOST"),
		KafkaConsumerGroup:       envVariable("KAFKA_CONSUMER_GROUP"),
		KafkaDeliveryEventsTopic: envVariable("KAFKA_DELIVERY_EVENTS_TOPIC"),
		KafkaDriverEventsTopic:   envVariable("KAFKA_DRIVER_EVENTS_TOPIC"),
		KafkaVehicleEventsTopic:  envVariable("KAFKA_VEHICLE_EVENTS_TOPIC"),
		StrictStatusTransitions:  boolVariable("STRICT_STATUS_TRANSITIONS"),
		StaleDeliveryThreshold:   durationVariable("STALE_DELIVERY_THRESHOLD", 30*time.Minute),
	}
}

func envVariable(key string) string {
	return os.Getenv(key)
}

func boolVariable(key string) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return false
	}
	return value
}

func durationVariable(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	db, err := gorm.Open(gorm_postgres.Open(configs.DatabaseDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&deliveryrepo.DeliveryDTO{}); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	return db
}

func startConsumers(ctx context.Context, root *cmd.CompositionRoot, logger *slog.Logger) {
	deliveryConsumer := root.CreateDeliveryEventConsumer()
	go func() {
		if err := deliveryConsumer.Run(ctx); err != nil {
			logger.Error("Delivery event consumer terminated", "error", err)
		}
	}()

	auditConsumers := root.CreateAuditConsumers()
	for _, auditConsumer := range auditConsumers {
		go func() {
			if err := auditConsumer.Run(ctx); err != nil {
				logger.Error("Audit consumer terminated", "error", err)
			}
		}()
	}

	// Readers unblock when the context is cancelled, after which a Close
	// leaves the consumer group cleanly.
	go func() {
		<-ctx.Done()
		if err := deliveryConsumer.Close(); err != nil {
			logger.Error("Failed to close delivery event consumer", "error", err)
		}
		for _, auditConsumer := range auditConsumers {
			if err := auditConsumer.Close(); err != nil {
				logger.Error("Failed to close audit consumer", "error", err)
			}
		}
	}()
}

func runWebServer(ctx context.Context, root *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	root.CreateHTTPServer().RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && err != http.ErrServerClosed {
			logger.Error("Web server terminated", "error", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut web server down gracefully", "error", err)
	}
}
