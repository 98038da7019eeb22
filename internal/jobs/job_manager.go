package jobs

import (
	"fmt"
	"log/slog"

	"github.com/daechan-jo/auto-store-services-order/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderJob *OrderJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the command handler as a dependency to wire up job execution.
func NewJobManager(
	processOrdersHandler commands.ProcessOrdersCommandHandler,
	cronSpec string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderJob: NewOrderJob(processOrdersHandler, cronSpec, logger),
	}
}

// OrderJob exposes the order job for manual triggering.
func (jm *JobManager) OrderJob() *OrderJob {
	return jm.orderJob
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.orderJob.Start(); err != nil {
		return fmt.Errorf("failed to start order job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderJob.Stop()
}
