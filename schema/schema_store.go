package schema

import "time"

// CacheStatus represents the status of the profile cache.
type CacheStatus struct {
	Backend         string
	Connected       bool
	TotalEntries    int
	LastEntryTime   time.Time
	OldestEntryTime time.Time
	TableSizeBytes  int64
}

// HistoryStatus represents the status of the profile history store.
type HistoryStatus struct {
	Backend       string
	Connected     bool
	TotalRuns     int
	LastRunID     int64
	LastRunTime   time.Time
	OldestRunTime time.Time
	TotalAuthors  int
	TableSizes    map[string]int64
}

// ProfileRunRecord represents a row from the gitfolio_profile_runs table.
type ProfileRunRecord struct {
	RunID        int64
	RunUUID      string
	Source       string
	RepoHash     string
	View         string
	StartTime    time.Time
	EndTime      *time.Time
	DurationMs   *int32
	TotalAuthors int32
	SkippedLines int32
	ConfigParams *string
}

// AuthorProfileRecord represents a row from the gitfolio_author_profiles table.
type AuthorProfileRecord struct {
	RunID           int64
	Author          string
	Commits         int32
	LinesAdded      int32
	LinesDeleted    int32
	LinesCumulative int32
	FilesCreated    int32
	FilesModified   int32
	FilesDeleted    int32
	PrimaryLanguage *string
	RecordedAt      time.Time
}
