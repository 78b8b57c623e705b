package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/gitfolio/internal/contract"
	"github.com/huangsam/gitfolio/internal/iocache"
	"github.com/huangsam/gitfolio/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadHistoryBackend reads and validates the history backend settings.
// An empty backend is treated as NoneBackend.
func loadHistoryBackend() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.NoneBackend
	if raw := viper.GetString("history-backend"); raw != "" {
		parsed, err := contract.ParseBackend(raw)
		if err != nil {
			return fmt.Errorf("history: %w", err)
		}
		backend = parsed
	}
	connStr := viper.GetString("history-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// historySetup loads minimal configuration needed for history operations.
func historySetup() error {
	if err := loadHistoryBackend(); err != nil {
		return err
	}

	// No profile caching for history commands
	if err := iocache.InitStores("", "", cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}
	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetupWrapper loads the backend without opening the stores,
// so migrations can run on a fresh database.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return loadHistoryBackend()
}

// historyCmd focused on run history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the history of profiling runs and exports",
	Long: `Manage the history of profiling runs.

When enabled, every profiling run is recorded with:
- Run metadata (identifier, timestamp, source, view, duration)
- One row per author with the full contribution profile
- The number of log lines that matched no author record

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, the default)

Subcommands:
  status  - Show history statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all history data
  migrate - Run database schema migrations

Examples:
  # Track runs in SQLite
  gitfolio profile --history-backend sqlite

  # Export for analysis in pandas/DuckDB
  gitfolio history export --history-backend sqlite --output-file history`,
}

// historyClearCmd clears the run history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded profiling runs",
	Long: `Delete all stored profiling runs and author profiles.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  gitfolio history export --output-file backup
  gitfolio history clear`,
	PreRunE: historySetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		iocache.CloseStores()
		if err := iocache.ClearHistory(cfg.HistoryBackend, iocache.GetHistoryDBFilePath(), cfg.HistoryDBConnect); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		fmt.Println("History cleared successfully.")
		return nil
	},
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history statistics and connection details",
	Long: `Show the backend, run count, run timestamps and table sizes of the history store.

Examples:
  gitfolio history status --history-backend sqlite`,
	PreRunE: historySetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		store := iocache.Manager.GetHistoryStore()
		if store == nil {
			fmt.Println("History tracking is disabled. Set --history-backend to enable it.")
			return nil
		}
		status, err := store.GetStatus()
		if err != nil {
			return fmt.Errorf("failed to get history status: %w", err)
		}
		iocache.PrintHistoryStatus(os.Stdout, status)
		return nil
	},
}

// historyExportCmd exports the run history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet for BI tools and analytics",
	Long: `Export all stored runs and author profiles to Parquet.

Writes two files next to --output-file:
- <output-file>.profile_runs.parquet
- <output-file>.author_profiles.parquet

Examples:
  gitfolio history export --output-file history
  duckdb -c "SELECT author, commits FROM read_parquet('history.author_profiles.parquet')"`,
	PreRunE: historySetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := iocache.ExecuteHistoryExport(iocache.Manager.GetHistoryStore(), cfg.OutputFile, os.Stdout); err != nil {
			return fmt.Errorf("failed to export history: %w", err)
		}
		return nil
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage schema versions of the history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  gitfolio history migrate --history-backend sqlite

  # Rollback to the initial state
  gitfolio history migrate --history-backend sqlite --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion, os.Stdout); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		return nil
	},
}
