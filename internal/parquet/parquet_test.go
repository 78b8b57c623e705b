package parquet

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/gitfolio/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRunStructTags(t *testing.T) {
	sch := parquet.SchemaOf(new(ProfileRun))
	require.NotNil(t, sch)

	for _, colName := range []string{"run_id", "run_uuid", "source", "repo_hash", "view", "start_time", "end_time", "run_duration_ms", "total_authors", "skipped_lines", "config_params"} {
		_, ok := sch.Lookup(colName)
		assert.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestAuthorProfileRowStructTags(t *testing.T) {
	sch := parquet.SchemaOf(new(AuthorProfileRow))
	for _, colName := range []string{"run_id", "author", "commits", "lines_added", "lines_deleted", "lines_cumulative", "files_created", "files_modified", "files_deleted", "primary_language", "recorded_at"} {
		_, ok := sch.Lookup(colName)
		assert.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func readAll[T any](t *testing.T, r io.ReaderAt, size int64) []T {
	t.Helper()
	f, err := parquet.OpenFile(r, size)
	require.NoError(t, err)
	reader := parquet.NewGenericReader[T](f)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	return rows[:n]
}

func TestWriteProfileRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "runs.parquet")
	end := time.Date(2026, 3, 1, 12, 0, 5, 0, time.UTC)
	duration := int32(5000)
	params := `{"view":"profile"}`
	data := []ProfileRun{
		{RunID: 1, RunUUID: "u-1", Source: "/tmp/a.zip", View: "profile", StartTime: end.Add(-5 * time.Second), EndTime: &end, DurationMs: &duration, TotalAuthors: 3, ConfigParams: &params},
		{RunID: 2, RunUUID: "u-2", Source: "/tmp/b", View: "lines", StartTime: end},
	}
	require.NoError(t, WriteProfileRunsParquet(data, outputPath))

	raw, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	rows := readAll[ProfileRun](t, bytes.NewReader(raw), int64(len(raw)))
	require.Len(t, rows, 2)

	assert.Equal(t, "u-1", rows[0].RunUUID)
	require.NotNil(t, rows[0].EndTime)
	assert.WithinDuration(t, end, *rows[0].EndTime, time.Microsecond)
	require.NotNil(t, rows[0].DurationMs)
	assert.Equal(t, duration, *rows[0].DurationMs)
	assert.Equal(t, int32(3), rows[0].TotalAuthors)
	assert.Nil(t, rows[1].EndTime)
	assert.Nil(t, rows[1].ConfigParams)
}

func TestWriteAuthorProfiles_FromProfiles(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	profiles := []schema.AuthorProfile{
		{Author: "Alice", Profile: schema.ContributionProfile{
			Commits: 2, Lines: schema.NewLineStats(5, 7),
			Files:           schema.FileTouches{Created: schema.FileCategory{Count: 1, Files: []string{"a.go"}}},
			PrimaryLanguage: "Go",
		}},
		{Author: "Bob", Profile: schema.ContributionProfile{Commits: 1}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAuthorProfiles(&buf, ConvertProfiles(profiles, now)))

	rows := readAll[AuthorProfileRow](t, bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.Len(t, rows, 2)
	assert.Equal(t, "Alice", rows[0].Author)
	assert.Equal(t, int32(-2), rows[0].LinesCumulative)
	assert.Equal(t, int32(1), rows[0].FilesCreated)
	require.NotNil(t, rows[0].PrimaryLanguage)
	assert.Equal(t, "Go", *rows[0].PrimaryLanguage)
	assert.Nil(t, rows[1].PrimaryLanguage)
}

func TestConvertRecords(t *testing.T) {
	lang := "Python"
	authors := ConvertAuthorProfileRecords([]schema.AuthorProfileRecord{{RunID: 4, Author: "Carol", Commits: 9, PrimaryLanguage: &lang}})
	require.Len(t, authors, 1)
	assert.Equal(t, int64(4), authors[0].RunID)
	assert.Equal(t, &lang, authors[0].PrimaryLanguage)

	runs := ConvertProfileRunRecords([]schema.ProfileRunRecord{{RunID: 7, RunUUID: "x", SkippedLines: 2}})
	require.Len(t, runs, 1)
	assert.Equal(t, int32(2), runs[0].SkippedLines)

	assert.Empty(t, ConvertProfileRunRecords(nil))
}

func TestWriteProfileRunsParquet_BadPath(t *testing.T) {
	err := WriteProfileRunsParquet(nil, filepath.Join(t.TempDir(), "missing", "dir", "out.parquet"))
	assert.Error(t, err)
}
