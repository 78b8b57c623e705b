package contract

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/gitfolio/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns a raw input that passes validation, for tests to tweak.
func validInput(t *testing.T) *ConfigRawInput {
	t.Helper()
	return &ConfigRawInput{
		SourcePathStr: t.TempDir(),
		Limit:         10,
		Precision:     1,
		Output:        "text",
		Color:         "yes",
		Languages:     "yes",
		CacheBackend:  "none",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError string
	}{
		{name: "valid minimal config", mutate: func(*ConfigRawInput) {}},
		{name: "limit too low", mutate: func(in *ConfigRawInput) { in.Limit = 0 }, expectError: "limit must be greater than 0"},
		{name: "limit too high", mutate: func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 }, expectError: "cannot exceed"},
		{name: "bad precision", mutate: func(in *ConfigRawInput) { in.Precision = 3 }, expectError: "precision must be between"},
		{name: "bad output", mutate: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: "invalid output format"},
		{name: "parquet needs file", mutate: func(in *ConfigRawInput) { in.Output = "parquet" }, expectError: "requires --output-file"},
		{name: "bad view", mutate: func(in *ConfigRawInput) { in.View = "blame" }, expectError: "invalid view"},
		{name: "bad color", mutate: func(in *ConfigRawInput) { in.Color = "maybe" }, expectError: "invalid --color value"},
		{name: "bad languages", mutate: func(in *ConfigRawInput) { in.Languages = "sometimes" }, expectError: "invalid --languages value"},
		{name: "bad git timeout", mutate: func(in *ConfigRawInput) { in.GitTimeout = "soon" }, expectError: "invalid --git-timeout value"},
		{name: "negative git timeout", mutate: func(in *ConfigRawInput) { in.GitTimeout = "-1s" }, expectError: "must be positive"},
		{name: "bad log format", mutate: func(in *ConfigRawInput) { in.LogFormat = "xml" }, expectError: "invalid log format"},
		{name: "bad cache backend", mutate: func(in *ConfigRawInput) { in.CacheBackend = "redis" }, expectError: "cache: invalid backend"},
		{name: "bad history backend", mutate: func(in *ConfigRawInput) { in.HistoryBackend = "redis" }, expectError: "history: invalid backend"},
		{name: "missing source", mutate: func(in *ConfigRawInput) { in.SourcePathStr = "/definitely/not/here.zip" }, expectError: "cannot read source"},
		{
			name: "same sqlite file for cache and history",
			mutate: func(in *ConfigRawInput) {
				in.CacheBackend = "sqlite"
				in.CacheDBConnect = "/tmp/same.db"
				in.HistoryBackend = "sqlite"
				in.HistoryDBConnect = "/tmp/same.db"
			},
			expectError: "must use different SQLite database files",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput(t)
			tt.mutate(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestProcessAndValidate_Defaults(t *testing.T) {
	input := validInput(t)
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, schema.ProfileView, cfg.View, "empty view defaults to profile")
	assert.Equal(t, DefaultGitTimeout, cfg.GitTimeout)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, schema.TextLogFormat, cfg.LogFormat)
	assert.Equal(t, schema.NoneBackend, cfg.CacheBackend)
	assert.Empty(t, cfg.HistoryBackend, "history tracking is opt-in")
	assert.True(t, filepath.IsAbs(cfg.SourcePath))
	assert.True(t, cfg.UseColors)
	assert.True(t, cfg.Languages)
}

func TestProcessAndValidate_ParsesOverrides(t *testing.T) {
	input := validInput(t)
	input.View = "LINES"
	input.Output = "JSON"
	input.GitTimeout = "30s"
	input.Author = "ali"
	input.LogFormat = "json"
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, schema.LinesView, cfg.View)
	assert.Equal(t, schema.JSONOut, cfg.Output)
	assert.Equal(t, 30*time.Second, cfg.GitTimeout)
	assert.Equal(t, "ali", cfg.AuthorFilter)
	assert.Equal(t, schema.JSONLogFormat, cfg.LogFormat)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{"sqlite empty ok", schema.SQLiteBackend, "", false},
		{"none ok", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "root:pw@tcp(localhost:3306)/gitfolio", false},
		{"mysql empty", schema.MySQLBackend, "", true},
		{"mysql no tcp", schema.MySQLBackend, "root:pw@localhost/gitfolio", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost port=5432 dbname=gitfolio", false},
		{"postgres no host", schema.PostgreSQLBackend, "dbname=gitfolio", true},
		{"postgres no dbname", schema.PostgreSQLBackend, "host=localhost", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{SourcePath: "/a", ResultLimit: 5}
	clone := cfg.Clone()
	clone.SourcePath = "/b"
	assert.Equal(t, "/a", cfg.SourcePath, "clone must not alias the original")
	assert.Equal(t, 5, clone.ResultLimit)
}
