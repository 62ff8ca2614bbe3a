package cron

import (
	"fmt"
	"strings"

	"github.com/educhanakya/campus-api/database"
)

// RunValueLogGC triggers one round of Badger value log garbage collection.
// Runs every 30 minutes; a round with nothing to rewrite is not an error.
func (m *CronManager) RunValueLogGC() {
	jobName := "badger_value_log_gc"

	if err := m.db.RunGC(0.5); err != nil {
		m.logJobError(jobName, fmt.Errorf("value log GC: %w", err))
		return
	}

	m.logJobComplete(jobName, "Value log GC round finished")
}

// RecordStorageStats writes the current Badger sizes into the activity log
// so admins can watch growth without shell access to the data directory.
func (m *CronManager) RecordStorageStats() {
	jobName := "record_storage_stats"

	lsm, vlog := m.db.Size()
	m.audit.Log("SYSTEM", fmt.Sprintf("Storage stats: LSM %d bytes, value log %d bytes", lsm, vlog))

	m.logJobComplete(jobName, fmt.Sprintf("LSM %d bytes, value log %d bytes", lsm, vlog))
}

// ReportCollectionSizes logs the record count of every collection.
// Runs daily at 2 AM.
func (m *CronManager) ReportCollectionSizes() {
	jobName := "collection_size_report"

	collections := []string{
		database.Institutions,
		database.Users,
		database.Projects,
		database.Candidates,
		database.Ideas,
		database.Learning,
		database.Messages,
		database.Resources,
	}

	counts := make([]string, 0, len(collections))
	for _, name := range collections {
		records, err := m.store.ReadAll(name)
		if err != nil {
			m.logJobError(jobName, fmt.Errorf("failed to read %s: %w", name, err))
			return
		}
		counts = append(counts, fmt.Sprintf("%s=%d", name, len(records)))
	}

	summary := strings.Join(counts, ", ")
	m.audit.Log("SYSTEM", "Collection sizes: "+summary)
	m.logJobComplete(jobName, summary)
}
