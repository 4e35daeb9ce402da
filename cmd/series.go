package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/sprintchart/burndown/core"
	"github.com/sprintchart/burndown/internal/contract"
	"github.com/sprintchart/burndown/internal/outwriter"
	"github.com/sprintchart/burndown/internal/snapstore"
)

// seriesCmd prints the stored series without contacting Jira or Slack.
var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Print the burndown series and guideline from stored snapshots",
	Long: `Rebuild the series for the sprint of the latest snapshot on or before --date
and print it next to the guideline. Nothing is fetched or written.

Each day is marked on track when the remaining points are at or below the guideline.

Examples:
  # Table for today
  burndown series

  # CSV for a past day
  burndown series --date 20240105 --output csv

  # Parquet for BI tools
  burndown series --output-file series.parquet`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		opts := core.AssembleOptions{Lenient: cfg.Lenient, Workers: cfg.Workers, Logger: logger}
		report, err := core.BuildSeriesReport(rootCtx, snapstore.Manager.GetSnapshotStore(), cfg.Today(time.Now()), opts)
		if err != nil {
			contract.LogFatal("Failed to build series", err)
		}
		if err := outwriter.NewOutWriter().WriteSeries(report, cfg); err != nil {
			contract.LogFatal("Failed to write series", err)
		}
	},
}
