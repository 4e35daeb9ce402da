package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/sprintchart/burndown/core"
	"github.com/sprintchart/burndown/internal/chart"
	"github.com/sprintchart/burndown/internal/contract"
	"github.com/sprintchart/burndown/internal/jira"
	"github.com/sprintchart/burndown/internal/outwriter"
	"github.com/sprintchart/burndown/internal/slack"
	"github.com/sprintchart/burndown/internal/snapstore"
)

// reportCmd is the daily job.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Capture today's sprint snapshot, render the burndown chart and post it",
	Long: `Run the daily burndown job once.

Steps:
- Fetch the sprint report from Jira and store it as today's snapshot
- Rebuild the remaining-points series from the sprint start to today
- Project the ideal guideline from the sprint goal
- Render a PNG chart into --output-dir and upload it to Slack

Re-running on the same day overwrites today's snapshot and chart.
Only today can be captured: --date must be empty or the current date in
--timezone. Use "series" or "resend" for past days.
A missing day fails the run unless --lenient is set.

Schedule it with cron, e.g. weekdays at 18:00:
  0 18 * * 1-5 burndown report

Examples:
  # Render without posting
  burndown report --dry-run

  # Chart gaps instead of failing
  burndown report --lenient`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runReport(rootCtx); err != nil {
			contract.LogFatal("Report failed", err)
		}
	},
}

func runReport(ctx context.Context) error {
	if err := cfg.ValidateJira(); err != nil {
		return err
	}
	if err := cfg.ValidateSlack(); err != nil {
		return err
	}

	fetcher, err := jira.NewFetcher(cfg.JiraHost, cfg.JiraUsername, cfg.JiraToken,
		jira.WithLocation(cfg.Location), jira.WithLogger(logger))
	if err != nil {
		return err
	}
	var deliverer contract.Deliverer
	if !cfg.DryRun {
		deliverer = slack.NewDeliverer(cfg.SlackToken, cfg.SlackChannel, cfg.SlackAPIURL, logger)
	}

	d := core.NewDispatcher(cfg, fetcher, snapstore.Manager.GetSnapshotStore(), chart.PNGRenderer{}, deliverer, logger)
	start := time.Now()
	result, err := d.RunOnce(ctx, cfg.Today(start))
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteReport(result, cfg, time.Since(start))
}
