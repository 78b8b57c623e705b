package core

import (
	"time"

	"github.com/huangsam/gitfolio/internal/contract"
	"github.com/huangsam/gitfolio/schema"
)

// runTracker records one profiling run in the history store. A nil store
// or a failed BeginRun leaves it inert; tracking never fails a run.
type runTracker struct {
	store contract.HistoryStore
	id    int64
}

// beginRun opens a history run for cfg when history tracking is configured.
func beginRun(cfg *contract.Config, mgr contract.CacheManager) *runTracker {
	r := &runTracker{}
	if mgr == nil {
		return r
	}
	store := mgr.GetHistoryStore()
	if store == nil {
		return r
	}
	params := map[string]any{
		"view":      string(cfg.View),
		"languages": cfg.Languages,
		"limit":     cfg.ResultLimit,
		"author":    cfg.AuthorFilter,
	}
	id, err := store.BeginRun(time.Now(), cfg.SourcePath, cfg.View, params)
	if err != nil {
		contract.LogWarn("History tracking initialization failed", err)
		return r
	}
	r.store, r.id = store, id
	return r
}

// finish stores every author of the report and closes the run.
func (r *runTracker) finish(report *schema.ProfileReport) {
	if r.store == nil || r.id <= 0 {
		return
	}
	for author, p := range report.Authors {
		if err := r.store.RecordAuthorProfile(r.id, author, p); err != nil {
			contract.LogWarn("History tracking failed for "+author, err)
		}
	}
	if err := r.store.EndRun(r.id, time.Now(), report.RepoHash, len(report.Authors), report.Scans.Anomalies()); err != nil {
		contract.LogWarn("Failed to finalize history tracking", err)
	}
}
