package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/gitfolio/internal/contract"
	"github.com/huangsam/gitfolio/schema"
)

// Table names for run history.
const (
	profileRunsTable    = "gitfolio_profile_runs"
	authorProfilesTable = "gitfolio_author_profiles"
)

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, GetHistoryDBFilePath())
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}
	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// createHistoryTables creates the run history tables.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{profileRunsTable, getCreateProfileRunsQuery(backend)},
		{authorProfilesTable, getCreateAuthorProfilesQuery(backend)},
	}
	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateProfileRunsQuery returns the CREATE TABLE query for gitfolio_profile_runs.
func getCreateProfileRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(profileRunsTable, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				run_uuid CHAR(36) NOT NULL,
				source VARCHAR(1024) NOT NULL,
				repo_hash VARCHAR(64) NOT NULL DEFAULT '',
				profile_view VARCHAR(16) NOT NULL,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				total_authors INT NOT NULL DEFAULT 0,
				skipped_lines INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				run_uuid TEXT NOT NULL,
				source TEXT NOT NULL,
				repo_hash TEXT NOT NULL DEFAULT '',
				profile_view TEXT NOT NULL,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				total_authors INT NOT NULL DEFAULT 0,
				skipped_lines INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_uuid TEXT NOT NULL,
				source TEXT NOT NULL,
				repo_hash TEXT NOT NULL DEFAULT '',
				profile_view TEXT NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_authors INTEGER NOT NULL DEFAULT 0,
				skipped_lines INTEGER NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateAuthorProfilesQuery returns the CREATE TABLE query for gitfolio_author_profiles.
func getCreateAuthorProfilesQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(authorProfilesTable, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				author VARCHAR(255) NOT NULL,
				commits INT NOT NULL,
				lines_added INT NOT NULL,
				lines_deleted INT NOT NULL,
				lines_cumulative INT NOT NULL,
				files_created INT NOT NULL,
				files_modified INT NOT NULL,
				files_deleted INT NOT NULL,
				primary_language VARCHAR(100),
				recorded_at DATETIME(6) NOT NULL,
				PRIMARY KEY (run_id, author)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				author TEXT NOT NULL,
				commits INT NOT NULL,
				lines_added INT NOT NULL,
				lines_deleted INT NOT NULL,
				lines_cumulative INT NOT NULL,
				files_created INT NOT NULL,
				files_modified INT NOT NULL,
				files_deleted INT NOT NULL,
				primary_language TEXT,
				recorded_at TIMESTAMPTZ NOT NULL,
				PRIMARY KEY (run_id, author)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				author TEXT NOT NULL,
				commits INTEGER NOT NULL,
				lines_added INTEGER NOT NULL,
				lines_deleted INTEGER NOT NULL,
				lines_cumulative INTEGER NOT NULL,
				files_created INTEGER NOT NULL,
				files_modified INTEGER NOT NULL,
				files_deleted INTEGER NOT NULL,
				primary_language TEXT,
				recorded_at TEXT NOT NULL,
				PRIMARY KEY (run_id, author)
			);
		`, quotedTableName)
	}
}

// BeginRun creates a new profiling run and returns its ID.
func (hs *HistoryStoreImpl) BeginRun(startTime time.Time, source string, view schema.ViewMode, configParams map[string]any) (int64, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(profileRunsTable, hs.backend)
	columns := "run_uuid, source, profile_view, start_time, config_params"
	args := []any{uuid.NewString(), source, string(view), formatTime(startTime, hs.backend), string(configJSON)}

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING run_id`, quotedTableName, columns, placeholders(hs.backend, len(args)))
		err = hs.db.QueryRow(query, args...).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`, quotedTableName, columns, placeholders(hs.backend, len(args)))
		var result sql.Result
		result, err = hs.db.Exec(query, args...)
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert profile run: %w", err)
	}
	return runID, nil
}

// EndRun updates the run with completion data.
func (hs *HistoryStoreImpl) EndRun(runID int64, endTime time.Time, repoHash string, totalAuthors int, skippedLines int) error {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(profileRunsTable, hs.backend)
	var start timeScanner
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, quotedTableName, placeholder(hs.backend, 1))
	if err := hs.db.QueryRow(query, runID).Scan(&start); err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}
	durationMs := endTime.Sub(start.Time).Milliseconds()

	p := func(i int) string { return placeholder(hs.backend, i) }
	update := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, repo_hash = %s, total_authors = %s, skipped_lines = %s WHERE run_id = %s`,
		quotedTableName, p(1), p(2), p(3), p(4), p(5), p(6))
	if _, err := hs.db.Exec(update, formatTime(endTime, hs.backend), durationMs, repoHash, totalAuthors, skippedLines, runID); err != nil {
		return fmt.Errorf("failed to update profile run: %w", err)
	}
	return nil
}

// RecordAuthorProfile stores one author's profile for a run.
func (hs *HistoryStoreImpl) RecordAuthorProfile(runID int64, author string, profile schema.ContributionProfile) error {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}

	var primary any
	if profile.PrimaryLanguage != "" {
		primary = profile.PrimaryLanguage
	}
	args := []any{
		runID, author, profile.Commits,
		profile.Lines.Added, profile.Lines.Deleted, profile.Lines.Cumulative,
		profile.Files.Created.Count, profile.Files.Modified.Count, profile.Files.Deleted.Count,
		primary, formatTime(time.Now(), hs.backend),
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (run_id, author, commits, lines_added, lines_deleted, lines_cumulative,
		                files_created, files_modified, files_deleted, primary_language, recorded_at)
		VALUES (%s)
	`, quoteTableName(authorProfilesTable, hs.backend), placeholders(hs.backend, len(args)))
	if _, err := hs.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert author profile: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return status, nil
	}

	runs := quoteTableName(profileRunsTable, hs.backend)
	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runs)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		var last, oldest timeScanner
		row := hs.db.QueryRow(fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", runs))
		if err := row.Scan(&status.LastRunID, &last); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		status.LastRunTime = last.Time

		row = hs.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", runs))
		if err := row.Scan(&oldest); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = oldest.Time

		authors := quoteTableName(authorProfilesTable, hs.backend)
		row = hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(DISTINCT author) FROM %s", authors))
		if err := row.Scan(&status.TotalAuthors); err != nil {
			return status, fmt.Errorf("failed to get total authors: %w", err)
		}
	}

	for _, table := range []string{profileRunsTable, authorProfilesTable} {
		var count int64
		row := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend)))
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	return status, nil
}

// GetAllRuns retrieves every run ordered by ID.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.ProfileRunRecord, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, run_uuid, source, repo_hash, profile_view, start_time, end_time,
		run_duration_ms, total_authors, skipped_lines, config_params FROM %s ORDER BY run_id`,
		quoteTableName(profileRunsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query profile runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ProfileRunRecord
	for rows.Next() {
		var record schema.ProfileRunRecord
		var start, end timeScanner
		if err := rows.Scan(&record.RunID, &record.RunUUID, &record.Source, &record.RepoHash, &record.View,
			&start, &end, &record.DurationMs, &record.TotalAuthors, &record.SkippedLines, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan profile run: %w", err)
		}
		record.StartTime = start.Time
		record.EndTime = end.ptr()
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profile runs: %w", err)
	}
	return results, nil
}

// GetAllAuthorProfiles retrieves every author row ordered by run and author.
func (hs *HistoryStoreImpl) GetAllAuthorProfiles() ([]schema.AuthorProfileRecord, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, author, commits, lines_added, lines_deleted, lines_cumulative,
		files_created, files_modified, files_deleted, primary_language, recorded_at
		FROM %s ORDER BY run_id, author`, quoteTableName(authorProfilesTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query author profiles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.AuthorProfileRecord
	for rows.Next() {
		var record schema.AuthorProfileRecord
		var recorded timeScanner
		if err := rows.Scan(&record.RunID, &record.Author, &record.Commits, &record.LinesAdded, &record.LinesDeleted,
			&record.LinesCumulative, &record.FilesCreated, &record.FilesModified, &record.FilesDeleted,
			&record.PrimaryLanguage, &recorded); err != nil {
			return nil, fmt.Errorf("failed to scan author profile: %w", err)
		}
		record.RecordedAt = recorded.Time
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating author profiles: %w", err)
	}
	return results, nil
}
