// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/gitfolio/schema"
)

// GitClient defines the log queries the profiler needs.
// This allows the profiling logic to be tested without a real git executable.
type GitClient interface {
	// Run executes a git command and returns its stdout.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// GetAuthorLog returns one author name per commit (log --pretty=format:%an).
	GetAuthorLog(ctx context.Context, repoPath string) ([]byte, error)

	// GetNumstatLog returns author headers followed by numstat records.
	GetNumstatLog(ctx context.Context, repoPath string) ([]byte, error)

	// GetNameStatusLog returns author headers followed by name-status records.
	GetNameStatusLog(ctx context.Context, repoPath string) ([]byte, error)

	// GetRepoHash returns the current HEAD commit hash of the repository.
	GetRepoHash(ctx context.Context, repoPath string) (string, error)
}

// CacheManager defines the interface for managing the cache and history stores.
// This allows the persistence layer to be mocked for testing.
type CacheManager interface {
	GetProfileStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for cache data storage.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore records profiling runs and the per-author results they produced.
type HistoryStore interface {
	// BeginRun creates a new run and returns its ID.
	BeginRun(startTime time.Time, source string, view schema.ViewMode, configParams map[string]any) (int64, error)

	// EndRun completes a run with its summary data.
	EndRun(runID int64, endTime time.Time, repoHash string, totalAuthors int, skippedLines int) error

	// RecordAuthorProfile stores one author's profile for a run.
	RecordAuthorProfile(runID int64, author string, profile schema.ContributionProfile) error

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns returns every recorded run ordered by ID.
	GetAllRuns() ([]schema.ProfileRunRecord, error)

	// GetAllAuthorProfiles returns every recorded author row ordered by run and author.
	GetAllAuthorProfiles() ([]schema.AuthorProfileRecord, error)

	// Close closes the underlying connection.
	Close() error
}
