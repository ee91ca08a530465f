// Package jobs provides scheduled background tasks for the ordering system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic maintenance required for the ordering service.
//
// # Available Jobs
//
// 1. StaleOrderCancellationJob - Runs every minute to cancel Pending orders
// that have exceeded the configured time-to-live without being confirmed.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(cancelStaleOrdersHandler, staleOrderTTL, logger)
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
// The sweep uses the cron expression "0 * * * * *", firing at the top of
// every minute. Expiry is measured against order creation time, so a sweep
// that fires late cancels the same set of orders it would have anyway.
//
// # Error Handling
//
// Sweep failures are logged and retried on the next tick; a failed run never
// leaves partial cancellations behind because the sweep is transactional.
package jobs
