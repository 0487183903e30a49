package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"delivery/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	staleDeliveryMonitorJob *StaleDeliveryMonitorJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes query handlers as dependencies to wire up the job execution.
func NewJobManager(
	staleDeliveriesHandler queries.GetStaleDeliveriesQueryHandler,
	staleThreshold time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		staleDeliveryMonitorJob: NewStaleDeliveryMonitorJob(staleDeliveriesHandler, staleThreshold, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.staleDeliveryMonitorJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale delivery monitor job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.staleDeliveryMonitorJob.Stop()
}
