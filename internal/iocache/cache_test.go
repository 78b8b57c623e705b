package iocache

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/huangsam/gitfolio/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetGlobals lets a test run InitStores/CloseStores again.
func resetGlobals(t *testing.T) {
	t.Helper()
	initOnce = sync.Once{}
	closeOnce = sync.Once{}
	Manager = &CacheStoreManager{}
	t.Cleanup(func() {
		CloseStores()
		initOnce = sync.Once{}
		closeOnce = sync.Once{}
		Manager = &CacheStoreManager{}
	})
}

func TestInitStores(t *testing.T) {
	t.Run("sqlite cache and history", func(t *testing.T) {
		resetGlobals(t)
		dir := t.TempDir()
		cachePath := filepath.Join(dir, "cache.db")
		historyPath := filepath.Join(dir, "history.db")

		err := InitStores(schema.SQLiteBackend, cachePath, schema.SQLiteBackend, historyPath)
		require.NoError(t, err)
		assert.NotNil(t, Manager.GetProfileStore())
		assert.NotNil(t, Manager.GetHistoryStore())
		assert.FileExists(t, cachePath)
		assert.FileExists(t, historyPath)
	})

	t.Run("idempotent setup", func(t *testing.T) {
		resetGlobals(t)
		path := filepath.Join(t.TempDir(), "cache.db")
		for range 3 {
			assert.NoError(t, InitStores(schema.SQLiteBackend, path, "", ""))
		}
		assert.Nil(t, Manager.GetHistoryStore(), "history is opt-in")
		CloseStores()
		CloseStores()
	})

	t.Run("none backend", func(t *testing.T) {
		resetGlobals(t)
		require.NoError(t, InitStores(schema.NoneBackend, "", "", ""))
		store := Manager.GetProfileStore()
		require.NotNil(t, store)
		_, _, _, err := store.Get("anything")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("bad backend", func(t *testing.T) {
		resetGlobals(t)
		err := InitStores("redis", "", "", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to initialize profile caching")
	})
}

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		wantErr bool
	}{
		{"simple", "profile_cache", false},
		{"leading underscore", "_cache", false},
		{"digits", "cache2", false},
		{"empty", "", true},
		{"leading digit", "2cache", true},
		{"injection", "cache; DROP TABLE x", true},
		{"dash", "profile-cache", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.table)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`t`", quoteTableName("t", schema.MySQLBackend))
	assert.Equal(t, `"t"`, quoteTableName("t", schema.PostgreSQLBackend))
	assert.Equal(t, `"t"`, quoteTableName("t", schema.SQLiteBackend))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "$1, $2, $3", placeholders(schema.PostgreSQLBackend, 3))
	assert.Equal(t, "?, ?", placeholders(schema.MySQLBackend, 2))
	assert.Equal(t, "?", placeholder(schema.SQLiteBackend, 1))
}

func TestGetUpsertQuery(t *testing.T) {
	for backend, fragment := range map[schema.DatabaseBackend]string{
		schema.SQLiteBackend:     "INSERT OR REPLACE",
		schema.MySQLBackend:      "ON DUPLICATE KEY UPDATE",
		schema.PostgreSQLBackend: "ON CONFLICT (cache_key)",
	} {
		ps := &CacheStoreImpl{tableName: profileTable, backend: backend}
		assert.Contains(t, ps.getUpsertQuery(), fragment, backend)
	}
}

func TestGetCreateTableQuery(t *testing.T) {
	assert.Contains(t, getCreateTableQuery(profileTable, schema.MySQLBackend), "LONGBLOB")
	assert.Contains(t, getCreateTableQuery(profileTable, schema.PostgreSQLBackend), "BYTEA")
	assert.Contains(t, getCreateTableQuery(profileTable, schema.SQLiteBackend), "BLOB")
}

func TestSQLiteCacheStoreOperations(t *testing.T) {
	store, err := NewCacheStore(profileTable, schema.SQLiteBackend, filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, _, _, err = store.Get("missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	now := time.Now().Unix()
	require.NoError(t, store.Set("k", []byte(`{"a":1}`), 1, now))
	require.NoError(t, store.Set("k", []byte(`{"a":2}`), 2, now+5), "upsert replaces")

	value, version, ts, err := store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(value))
	assert.Equal(t, 2, version)
	assert.Equal(t, now+5, ts)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 1, status.TotalEntries)
	assert.Equal(t, now+5, status.LastEntryTime.Unix())
	assert.Greater(t, status.TableSizeBytes, int64(0))
}

func TestNewCacheStoreErrors(t *testing.T) {
	_, err := NewCacheStore("bad name", schema.SQLiteBackend, "")
	assert.Error(t, err)
	_, err = NewCacheStore(profileTable, "redis", "")
	assert.Error(t, err)
}

func TestCacheStoreImplWithNilDB(t *testing.T) {
	ps := &CacheStoreImpl{backend: schema.NoneBackend}
	assert.NoError(t, ps.Set("k", []byte("v"), 1, 0))
	_, _, _, err := ps.Get("k")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, ps.Close())

	status, err := ps.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
}

func TestClearCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore(profileTable, schema.SQLiteBackend, path)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, ClearCache(schema.SQLiteBackend, path, ""))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, ClearCache(schema.SQLiteBackend, path, ""), "missing file is fine")
	assert.Error(t, ClearCache(schema.SQLiteBackend, "", ""))
	assert.NoError(t, ClearCache(schema.NoneBackend, "", ""))
	assert.Error(t, ClearCache("redis", "", ""))

	custom := filepath.Join(t.TempDir(), "custom.db")
	require.NoError(t, os.WriteFile(custom, []byte("x"), 0o600))
	require.NoError(t, ClearCache(schema.SQLiteBackend, path, custom), "connStr wins over the default path")
	_, err = os.Stat(custom)
	assert.True(t, os.IsNotExist(err))
}

func TestCacheStoreManagerConcurrency(t *testing.T) {
	mgr := NewCacheStoreManager(&CacheStoreImpl{backend: schema.NoneBackend}, nil)
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NotNil(t, mgr.GetProfileStore())
			assert.Nil(t, mgr.GetHistoryStore())
		}()
	}
	wg.Wait()
}

func TestTimeScanner(t *testing.T) {
	var ts timeScanner
	require.NoError(t, ts.Scan("2026-01-02T03:04:05.5Z"))
	assert.True(t, ts.Valid)
	assert.Equal(t, 2026, ts.Time.Year())

	require.NoError(t, ts.Scan([]byte("2026-01-02 03:04:05.000000")))
	assert.Equal(t, 4, ts.Time.Minute())

	require.NoError(t, ts.Scan(nil))
	assert.Nil(t, ts.ptr())

	assert.Error(t, ts.Scan(42))
	assert.Error(t, ts.Scan("yesterday"))
}
