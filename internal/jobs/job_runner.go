package jobs

import (
	"database/sql"

	"fleetrent-backend/internal/config"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository/postgres"
	"fleetrent-backend/internal/service"
	"fleetrent-backend/internal/storage"
)

// JobRunner coordinates all scheduled jobs.
type JobRunner struct {
	db       *sql.DB
	store    *postgres.Store
	services *Services
	config   *config.Config
}

// Services holds the service dependencies jobs deliver through.
type Services struct {
	Email    service.EmailService
	Template service.TemplateService
	Storage  storage.Storage
}

func NewJobRunner(db *sql.DB, store *postgres.Store, services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:       db,
		store:    store,
		services: services,
		config:   cfg,
	}
}

// Config exposes the loaded configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery so one bad sweep
// never takes the cron process down.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	log := logger.WithJob(jobName)
	log.Info("Starting job")
	jobFunc()
	log.Info("Job completed")
}

// RunAllNightlyJobs runs every sweep once (for manual execution).
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.MarkOverdueContracts()
	jr.MarkOverdueInvoices()
	jr.SendMaintenanceReminders()
	jr.CleanupPendingImages()
}
