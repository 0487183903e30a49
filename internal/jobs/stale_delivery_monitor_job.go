package jobs

import (
	"context"
	"log/slog"
	"time"

	"delivery/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// StaleDeliveryMonitorJob periodically scans for deliveries stuck in a
// non-terminal status with no mutation for longer than the configured
// threshold, and flags each one in the log for operations to chase.
type StaleDeliveryMonitorJob struct {
	handler   queries.GetStaleDeliveriesQueryHandler
	threshold time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStaleDeliveryMonitorJob creates the monitor job.
// threshold is how long a non-terminal delivery may sit untouched before it
// is flagged.
func NewStaleDeliveryMonitorJob(
	handler queries.GetStaleDeliveriesQueryHandler,
	threshold time.Duration,
	logger *slog.Logger,
) *StaleDeliveryMonitorJob {
	return &StaleDeliveryMonitorJob{
		handler:   handler,
		threshold: threshold,
		cron:      cron.New(),
		logger:    logger.With("component", "stale_delivery_monitor_job"),
	}
}

// Start begins the monitor job to run every minute.
func (j *StaleDeliveryMonitorJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		query, queryErr := queries.NewGetStaleDeliveriesQuery(time.Now().Add(-j.threshold))
		if queryErr != nil {
			j.logger.ErrorContext(ctx, "Stale delivery monitor failed to build query", "error", queryErr)
			return
		}

		stale, handleErr := j.handler.Handle(ctx, query)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Stale delivery monitor failed", "error", handleErr)
			return
		}

		for _, d := range stale {
			j.logger.WarnContext(ctx, "Delivery has stopped progressing",
				"trackingNumber", d.TrackingNumber,
				"status", d.Status,
				"driverId", d.DriverID,
				"lastUpdated", d.UpdatedAt)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale delivery monitor started (running every minute)",
		"threshold", j.threshold.String())
	return nil
}

// Stop stops the monitor job.
func (j *StaleDeliveryMonitorJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale delivery monitor stopped")
}
