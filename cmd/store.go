package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sprintchart/burndown/internal/contract"
	"github.com/sprintchart/burndown/internal/snapstore"
)

// storeCmd focused on snapshot store management.
//
// Note: clear and migrate validate config without opening the store, so they
// can run against a locked, missing or fresh database.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the daily sprint snapshot store",
	Long: `Manage the store that keeps one sprint snapshot per day.

The burndown series is rebuilt from these snapshots on every run, so a
missing day shows up as a gap in the chart.

Supported backends: file (default), SQLite, MySQL, PostgreSQL, or memory

Subcommands:
  status  - Show snapshot counts and connection info
  clear   - Remove all stored snapshots
  export  - Write every snapshot to a Parquet file
  migrate - Apply or roll back SQL schema migrations

Examples:
  # Check store status
  burndown store status

  # Use PostgreSQL (set connection string via env variable)
  BURNDOWN_STORE_BACKEND=postgresql BURNDOWN_STORE_DB_CONNECT="host=... dbname=..." burndown store status`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display snapshot store statistics and connection details",
	Long: `Show the backend, location, number of stored snapshots, the first and last
capture dates and the store size.

Examples:
  burndown store status`,
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		status, err := snapstore.Manager.GetSnapshotStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		snapstore.PrintStoreStatus(cmd.OutOrStdout(), status)
	},
}

// storeClearCmd clears the store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored sprint snapshots",
	Long: `Delete every stored snapshot from the configured backend.

WARNING: This action cannot be undone and the next report will have no history
for the current sprint. Consider exporting data first.

For file: Deletes the snapshot files in --store-dir
For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the snapshot table

Examples:
  burndown store export --output-file snapshots.parquet && burndown store clear`,
	PreRunE: configOnlySetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		if err := snapstore.ClearStore(cfg.StoreBackend, cfg.StoreDBConnect, cfg.StoreDir); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		cmd.Println("Snapshot store cleared successfully.")
	},
}

// storeExportCmd exports snapshots to Parquet.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored snapshots to Parquet for BI tools and analytics",
	Long: `Write every stored snapshot to a Parquet file, one row per capture date.

Requires: --output-file parameter

Examples:
  burndown store export --output-file snapshots.parquet`,
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		store := snapstore.Manager.GetSnapshotStore()
		if err := snapstore.ExecuteSnapshotExport(rootCtx, store, cfg.OutputFile, cmd.OutOrStdout()); err != nil {
			contract.LogFatal("Failed to export snapshots", err)
		}
	},
}

// storeMigrateCmd runs schema migrations.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back SQL schema migrations for the snapshot store",
	Long: `Run the embedded schema migrations against the SQL snapshot backend.

Only sqlite, mysql and postgresql backends have a schema.

Examples:
  # Migrate to latest
  burndown store migrate --store-backend sqlite

  # Roll back everything
  burndown store migrate --store-backend sqlite --target-version 0`,
	PreRunE: configOnlySetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := snapstore.MigrateStore(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion, cmd.OutOrStdout()); err != nil {
			contract.LogFatal("Failed to migrate store", err)
		}
	},
}
