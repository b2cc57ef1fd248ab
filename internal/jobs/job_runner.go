package jobs

import (
	"promodesk-backend/internal/config"
	"promodesk-backend/internal/console"
	"promodesk-backend/internal/logger"
	"promodesk-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	services *Services
	sessions *console.SessionManager
	config   *config.Config
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Org service.OrganizationService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(services *Services, sessions *console.SessionManager, cfg *config.Config) *JobRunner {
	return &JobRunner{
		services: services,
		sessions: sessions,
		config:   cfg,
	}
}

// Config exposes the loaded configuration to the scheduler
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

// RunAllJobs runs every job once (for manual execution)
func (jr *JobRunner) RunAllJobs() {
	jr.ExpireOrganizationPlans()
	jr.SweepConsoleSessions()
}
