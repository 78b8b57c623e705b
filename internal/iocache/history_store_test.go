package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/gitfolio/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteHistory(t *testing.T) *HistoryStoreImpl {
	t.Helper()
	store, err := NewHistoryStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*HistoryStoreImpl)
}

func sampleProfile() schema.ContributionProfile {
	return schema.ContributionProfile{
		Commits: 3,
		Lines:   schema.NewLineStats(10, 4),
		Files: schema.FileTouches{
			Created:  schema.FileCategory{Count: 2, Files: []string{"a.go", "b.go"}},
			Modified: schema.FileCategory{Count: 1, Files: []string{"a.go"}},
			Deleted:  schema.FileCategory{Files: []string{}},
		},
		PrimaryLanguage: "Go",
	}
}

func TestHistoryStore_NoneBackend(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)

	runID, err := store.BeginRun(time.Now(), "/src", schema.ProfileView, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)
	assert.NoError(t, store.EndRun(1, time.Now(), "abc", 1, 0))
	assert.NoError(t, store.RecordAuthorProfile(1, "Alice", sampleProfile()))

	runs, err := store.GetAllRuns()
	assert.NoError(t, err)
	assert.Nil(t, runs)
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.NoError(t, store.Close())
}

func TestHistoryStore_SQLiteRoundTrip(t *testing.T) {
	store := newSQLiteHistory(t)

	start := time.Now().Add(-2 * time.Second)
	runID, err := store.BeginRun(start, "/tmp/upload.zip", schema.ProfileView, map[string]any{"limit": 10})
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	require.NoError(t, store.RecordAuthorProfile(runID, "Alice", sampleProfile()))
	require.NoError(t, store.RecordAuthorProfile(runID, "Bob", schema.ContributionProfile{Commits: 1, Files: schema.EmptyFileTouches()}))
	require.NoError(t, store.EndRun(runID, time.Now(), "deadbeef", 2, 3))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	_, err = uuid.Parse(run.RunUUID)
	assert.NoError(t, err, "runs carry a uuid")
	assert.Equal(t, "/tmp/upload.zip", run.Source)
	assert.Equal(t, "deadbeef", run.RepoHash)
	assert.Equal(t, "profile", run.View)
	assert.Equal(t, int32(2), run.TotalAuthors)
	assert.Equal(t, int32(3), run.SkippedLines)
	require.NotNil(t, run.EndTime)
	require.NotNil(t, run.DurationMs)
	assert.GreaterOrEqual(t, *run.DurationMs, int32(2000))
	require.NotNil(t, run.ConfigParams)
	assert.JSONEq(t, `{"limit":10}`, *run.ConfigParams)

	authors, err := store.GetAllAuthorProfiles()
	require.NoError(t, err)
	require.Len(t, authors, 2)
	alice := authors[0]
	assert.Equal(t, "Alice", alice.Author)
	assert.Equal(t, int32(6), alice.LinesCumulative)
	assert.Equal(t, int32(2), alice.FilesCreated)
	require.NotNil(t, alice.PrimaryLanguage)
	assert.Equal(t, "Go", *alice.PrimaryLanguage)
	assert.Nil(t, authors[1].PrimaryLanguage)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalRuns)
	assert.Equal(t, runID, status.LastRunID)
	assert.Equal(t, 2, status.TotalAuthors)
	assert.Equal(t, int64(2), status.TableSizes[authorProfilesTable])
}

func TestHistoryStore_UnfinishedRun(t *testing.T) {
	store := newSQLiteHistory(t)
	_, err := store.BeginRun(time.Now(), "/src", schema.CommitsView, nil)
	require.NoError(t, err)

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Nil(t, runs[0].EndTime)
	assert.Nil(t, runs[0].DurationMs)
	assert.Zero(t, runs[0].TotalAuthors)
}

func TestHistoryStore_EndUnknownRun(t *testing.T) {
	store := newSQLiteHistory(t)
	assert.Error(t, store.EndRun(999, time.Now(), "", 0, 0))
}

func TestHistoryStore_DuplicateAuthorRejected(t *testing.T) {
	store := newSQLiteHistory(t)
	runID, err := store.BeginRun(time.Now(), "/src", schema.ProfileView, nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordAuthorProfile(runID, "Alice", sampleProfile()))
	assert.Error(t, store.RecordAuthorProfile(runID, "Alice", sampleProfile()))
}

func TestClearHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := NewHistoryStore(schema.SQLiteBackend, path)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, ClearHistory(schema.SQLiteBackend, path, ""))
	assert.NoFileExists(t, path)
	assert.NoError(t, ClearHistory("", "", ""))
}

func TestCreateHistoryQueries(t *testing.T) {
	assert.Contains(t, getCreateProfileRunsQuery(schema.MySQLBackend), "AUTO_INCREMENT")
	assert.Contains(t, getCreateProfileRunsQuery(schema.PostgreSQLBackend), "BIGSERIAL")
	assert.Contains(t, getCreateProfileRunsQuery(schema.SQLiteBackend), "AUTOINCREMENT")
	assert.Contains(t, getCreateAuthorProfilesQuery(schema.SQLiteBackend), "PRIMARY KEY (run_id, author)")
}
