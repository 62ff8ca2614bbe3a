package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/educhanakya/campus-api/database"
)

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron  *cron.Cron
	db    *database.BadgerStore
	store *database.Store
	audit *database.AuditLog
}

// NewCronManager creates a new cron manager
func NewCronManager(db *database.BadgerStore, store *database.Store, audit *database.AuditLog) *CronManager {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron:  c,
		db:    db,
		store: store,
		audit: audit,
	}
}

// Start starts all cron jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	// Register all jobs
	if err := m.registerJobs(); err != nil {
		return err
	}

	// Start the cron scheduler
	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	// 1. Every 30 minutes: Badger value-log garbage collection
	_, err := m.cron.AddFunc("0 */30 * * * *", func() {
		m.logJobStart("badger_value_log_gc")
		m.RunValueLogGC()
	})
	if err != nil {
		return err
	}

	// 2. Every hour: Record storage statistics in the activity log
	_, err = m.cron.AddFunc("0 0 * * * *", func() {
		m.logJobStart("record_storage_stats")
		m.RecordStorageStats()
	})
	if err != nil {
		return err
	}

	// 3. Daily at 2 AM: Collection size report
	_, err = m.cron.AddFunc("0 0 2 * * *", func() {
		m.logJobStart("collection_size_report")
		m.ReportCollectionSizes()
	})
	if err != nil {
		return err
	}

	log.Println("All cron jobs registered successfully")
	return nil
}

// logJobStart logs the start of a cron job
func (m *CronManager) logJobStart(jobName string) {
	log.Printf("[CRON] Starting job: %s at %s", jobName, time.Now().Format(time.RFC3339))
}

// logJobComplete logs successful completion of a cron job
func (m *CronManager) logJobComplete(jobName string, message string) {
	log.Printf("[CRON] Completed job: %s - %s", jobName, message)
}

// logJobError logs a cron job error
func (m *CronManager) logJobError(jobName string, err error) {
	log.Printf("[CRON] Error in job: %s - %v", jobName, err)
}
