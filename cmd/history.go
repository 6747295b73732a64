package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/migcheck/migcheck/internal/contract"
	"github.com/migcheck/migcheck/internal/iohistory"
	"github.com/migcheck/migcheck/internal/parquet"
	"github.com/migcheck/migcheck/schema"
)

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need history access without full shared
// setup, which would otherwise require a valid project root.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	store, err := iohistory.NewHistoryStore(backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to initialize run history: %w", err)
	}
	historyStore = store

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate
// operations. It does NOT open the store or create tables, allowing
// migrations to run on a fresh database.
func historyMigrateSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyCmd focused on run-history management.
//
// Note: History subcommands use minimal initialization (historySetup)
// instead of the full sharedSetup used by check/fix. This avoids project
// root validation for operations that never touch the project tree.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage recorded diagnostic runs",
	Long: `Manage the run-history store that tracks readiness across attempts.

When a history backend is configured, every check records:
- Run metadata (project, timestamp, worst status)
- Summary counters (checks passed/failed, issues by severity)
- Every detected issue with its location

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  list    - Show recent runs, newest first
  status  - Show store statistics
  export  - Export runs to Parquet for analytics
  clear   - Remove all recorded runs
  migrate - Run database schema migrations

Examples:
  # Show the last runs
  migcheck history list

  # Export for analysis in pandas/DuckDB
  migcheck history export --output-file runs.parquet`,
}

// historyListCmd lists recent runs.
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent diagnostic runs, newest first",
	Long: `List recorded runs with their worst status and issue counters.

Examples:
  # Show the last 20 runs
  migcheck history list

  # Show the last 5 runs
  migcheck history list --limit 5`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runs, err := historyStore.ListRuns(viper.GetInt("limit"))
		if err != nil {
			contract.LogFatal("Failed to list runs", err)
		}
		iohistory.PrintRunRecords(runs)
	},
}

// historyStatusCmd shows history store statistics.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run-history statistics and connection details",
	Long: `Show backend type, connection state, run counts and timestamps for the
run-history store.

Examples:
  # Check history tracking status
  migcheck history status`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := historyStore.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iohistory.PrintHistoryStatus(status)
	},
}

// historyExportCmd exports run history to a Parquet file.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs to Parquet for BI tools and analytics",
	Long: `Export every recorded run to Parquet format for use with analytics tools
such as DuckDB, pandas or Spark.

Requires: --output-file parameter

Examples:
  # Export all runs
  migcheck history export --output-file runs.parquet

  # Query with DuckDB
  duckdb -c "SELECT * FROM read_parquet('runs.parquet') ORDER BY test_date"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.OutputFile == "" {
			contract.LogFatal("Failed to export run history", fmt.Errorf("--output-file is required"))
		}
		runs, err := historyStore.ListRuns(0)
		if err != nil {
			contract.LogFatal("Failed to export run history", err)
		}
		if err := parquet.WriteRunHistory(runs, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run history", err)
		}
		fmt.Printf("Exported %d run(s) to %s\n", len(runs), cfg.OutputFile)
	},
}

// historyClearCmd clears all recorded runs.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded diagnostic runs",
	Long: `Delete every stored run and its issues.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  migcheck history export --output-file backup.parquet
  migcheck history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := historyStore.Clear(); err != nil {
			contract.LogFatal("Failed to clear run history", err)
		}
		fmt.Println("Run history cleared successfully.")
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run-history store.

By default, migrates to the latest version. Use --target-version for
specific versions.

Examples:
  # Migrate to latest version (default)
  migcheck history migrate

  # Migrate to specific version
  migcheck history migrate --target-version 1

  # Rollback to initial state
  migcheck history migrate --target-version 0`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iohistory.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
