// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic order consolidation run.
//
// # Available Jobs
//
// 1. OrderJob - Runs every ten minutes to fetch accepted orders, merge them,
// advance their status and hand them to fulfillment
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with the required handler
//	jobManager := jobs.NewJobManager(processOrdersHandler, cronSpec, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The order job defaults to the cron expression "0 */10 * * * *" (every ten
// minutes on the minute). The spec is configurable for operations work.
//
// # Overlap
//
// A tick that fires while the previous run is still in flight is skipped and
// logged, never queued. The manual trigger endpoint shares the same guard.
package jobs
