// Package parquet exports contribution profiles and run history to Parquet
// files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/gitfolio/schema"
	"github.com/parquet-go/parquet-go"
)

// ProfileRun is one profiling run. It maps to the gitfolio_profile_runs table.
type ProfileRun struct {
	RunID        int64      `parquet:"run_id,snappy"`
	RunUUID      string     `parquet:"run_uuid,snappy"`
	Source       string     `parquet:"source,snappy"`
	RepoHash     string     `parquet:"repo_hash,snappy"`
	View         string     `parquet:"view,snappy"`
	StartTime    time.Time  `parquet:"start_time,snappy"`
	EndTime      *time.Time `parquet:"end_time,optional,snappy"`
	DurationMs   *int32     `parquet:"run_duration_ms,optional,snappy"`
	TotalAuthors int32      `parquet:"total_authors,snappy"`
	SkippedLines int32      `parquet:"skipped_lines,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// AuthorProfileRow is one author's totals. It maps to the
// gitfolio_author_profiles table and is also the row shape of a
// profile report written with --output parquet (RunID is 0 there).
type AuthorProfileRow struct {
	RunID           int64     `parquet:"run_id,snappy"`
	Author          string    `parquet:"author,snappy"`
	Commits         int32     `parquet:"commits,snappy"`
	LinesAdded      int32     `parquet:"lines_added,snappy"`
	LinesDeleted    int32     `parquet:"lines_deleted,snappy"`
	LinesCumulative int32     `parquet:"lines_cumulative,snappy"`
	FilesCreated    int32     `parquet:"files_created,snappy"`
	FilesModified   int32     `parquet:"files_modified,snappy"`
	FilesDeleted    int32     `parquet:"files_deleted,snappy"`
	PrimaryLanguage *string   `parquet:"primary_language,optional,snappy"`
	RecordedAt      time.Time `parquet:"recorded_at,snappy"`
}

// WriteProfileRunsParquet writes runs to a Parquet file.
func WriteProfileRunsParquet(data []ProfileRun, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteAuthorProfilesParquet writes author rows to a Parquet file.
func WriteAuthorProfilesParquet(data []AuthorProfileRow, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteAuthorProfiles writes author rows to any writer.
func WriteAuthorProfiles(w io.Writer, data []AuthorProfileRow) error {
	return write(w, data)
}

func writeFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(file, data); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// write derives the schema from T's struct tags.
func write[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertProfileRunRecords converts stored runs to Parquet rows.
func ConvertProfileRunRecords(records []schema.ProfileRunRecord) []ProfileRun {
	result := make([]ProfileRun, 0, len(records))
	for _, r := range records {
		result = append(result, ProfileRun{
			RunID:        r.RunID,
			RunUUID:      r.RunUUID,
			Source:       r.Source,
			RepoHash:     r.RepoHash,
			View:         r.View,
			StartTime:    r.StartTime,
			EndTime:      r.EndTime,
			DurationMs:   r.DurationMs,
			TotalAuthors: r.TotalAuthors,
			SkippedLines: r.SkippedLines,
			ConfigParams: r.ConfigParams,
		})
	}
	return result
}

// ConvertAuthorProfileRecords converts stored author rows to Parquet rows.
func ConvertAuthorProfileRecords(records []schema.AuthorProfileRecord) []AuthorProfileRow {
	result := make([]AuthorProfileRow, 0, len(records))
	for _, r := range records {
		result = append(result, AuthorProfileRow{
			RunID:           r.RunID,
			Author:          r.Author,
			Commits:         r.Commits,
			LinesAdded:      r.LinesAdded,
			LinesDeleted:    r.LinesDeleted,
			LinesCumulative: r.LinesCumulative,
			FilesCreated:    r.FilesCreated,
			FilesModified:   r.FilesModified,
			FilesDeleted:    r.FilesDeleted,
			PrimaryLanguage: r.PrimaryLanguage,
			RecordedAt:      r.RecordedAt,
		})
	}
	return result
}

// ConvertProfiles turns ranked profiles into rows stamped with the given time.
func ConvertProfiles(profiles []schema.AuthorProfile, recordedAt time.Time) []AuthorProfileRow {
	result := make([]AuthorProfileRow, 0, len(profiles))
	for _, ap := range profiles {
		p := ap.Profile
		row := AuthorProfileRow{
			Author:          ap.Author,
			Commits:         int32(p.Commits),
			LinesAdded:      int32(p.Lines.Added),
			LinesDeleted:    int32(p.Lines.Deleted),
			LinesCumulative: int32(p.Lines.Cumulative),
			FilesCreated:    int32(p.Files.Created.Count),
			FilesModified:   int32(p.Files.Modified.Count),
			FilesDeleted:    int32(p.Files.Deleted.Count),
			RecordedAt:      recordedAt,
		}
		if p.PrimaryLanguage != "" {
			lang := p.PrimaryLanguage
			row.PrimaryLanguage = &lang
		}
		result = append(result, row)
	}
	return result
}
