package jobs

import (
	"visithub-backend/internal/config"
	"visithub-backend/internal/logger"
	"visithub-backend/internal/repository/postgres"
	"visithub-backend/internal/service"
	"visithub-backend/internal/window"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	store  *postgres.Store
	email  service.EmailService
	clock  window.Clock
	config *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(store *postgres.Store, email service.EmailService, clock window.Clock, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:  store,
		email:  email,
		clock:  clock,
		config: cfg,
	}
}

// Config returns the loaded application configuration
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.BackfillVisitWindows()
	jr.SendWindowOpeningReminders()
}
