package cmd

import (
	"fmt"
	"time"
)

// Config carries all externally supplied settings. Values are read from the
// environment in main and injected here; nothing in the application reads
// the environment directly.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaHost                string
	KafkaConsumerGroup       string
	KafkaDeliveryEventsTopic string
	KafkaDriverEventsTopic   string
	KafkaVehicleEventsTopic  string

	// StrictStatusTransitions enables transition-table enforcement on status
	// updates. Off by default: the baseline accepts any defined status.
	StrictStatusTransitions bool

	// StaleDeliveryThreshold is how long a non-terminal delivery may sit
	// untouched before the monitor job flags it.
	StaleDeliveryThreshold time.Duration
}

// DatabaseDSN assembles the Postgres connection string.
func (c Config) DatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
