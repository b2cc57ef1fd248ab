package jobs

import (
	"context"
	"time"

	"promodesk-backend/internal/logger"
)

// ExpireOrganizationPlans flips organizations whose plan has lapsed to the
// expired status so their consoles switch to read-only mode.
func (jr *JobRunner) ExpireOrganizationPlans() {
	jr.runWithRecovery("ExpireOrganizationPlans", func() {
		ctx := context.Background()

		expired, err := jr.services.Org.ExpirePlans(ctx)
		if err != nil {
			logger.Error("Failed to expire organization plans", "error", err)
			return
		}

		logger.Info("Expired organization plans", "count", expired)
	})
}

// SweepConsoleSessions evicts console sessions idle past the configured
// limit. Admins with an evicted session simply open a new one.
func (jr *JobRunner) SweepConsoleSessions() {
	jr.runWithRecovery("SweepConsoleSessions", func() {
		if jr.sessions == nil {
			return
		}

		maxIdle := time.Duration(jr.config.Scheduler.SessionMaxIdleMinutes) * time.Minute
		removed := jr.sessions.Sweep(maxIdle)
		if removed > 0 {
			logger.Info("Swept idle console sessions", "removed", removed, "max_idle", maxIdle)
		}
	})
}
