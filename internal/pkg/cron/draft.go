package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/agrifarm/farmpay-backend-go/internal/pkg/draftstore"
)

// DraftJobs holds the maintenance jobs for the in-memory draft arena.
type DraftJobs struct {
	drafts *draftstore.Store
}

func NewDraftJobs(drafts *draftstore.Store) *DraftJobs {
	return &DraftJobs{drafts: drafts}
}

func (j *DraftJobs) RegisterJobs(scheduler *Scheduler, sweepInterval time.Duration) {
	scheduler.AddJob("expire_stale_drafts", sweepInterval, j.ExpireStaleDrafts)
}

// ExpireStaleDrafts evicts drafts whose TTL has elapsed. Expiry is a
// housekeeping sweep, not a correctness gate: reads also evict lazily.
func (j *DraftJobs) ExpireStaleDrafts(ctx context.Context) error {
	removed := j.drafts.Sweep(time.Now())
	if removed > 0 {
		slog.Info("Cron: expired stale payroll drafts", "count", removed, "remaining", j.drafts.Len())
	}
	return nil
}
