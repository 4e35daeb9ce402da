package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/sprintchart/burndown/core"
	"github.com/sprintchart/burndown/internal/contract"
	"github.com/sprintchart/burndown/internal/slack"
	"github.com/sprintchart/burndown/internal/snapstore"
)

// resendCmd re-delivers a chart that was already rendered.
var resendCmd = &cobra.Command{
	Use:   "resend",
	Short: "Post an existing chart artifact to Slack again",
	Long: `Upload the chart written for --date from --output-dir without fetching or re-rendering.

Examples:
  burndown resend --date 20240105`,
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		if cfg.Date.IsZero() {
			contract.LogFatal("Resend failed", errors.New("--date is required"))
		}
		if cfg.DryRun {
			contract.LogFatal("Resend failed", errors.New("--dry-run cannot be combined with resend"))
		}
		if err := cfg.ValidateSlack(); err != nil {
			contract.LogFatal("Resend failed", err)
		}

		deliverer := slack.NewDeliverer(cfg.SlackToken, cfg.SlackChannel, cfg.SlackAPIURL, logger)
		d := core.NewDispatcher(cfg, nil, snapstore.Manager.GetSnapshotStore(), nil, deliverer, logger)
		artifact, err := d.Resend(rootCtx, cfg.Date)
		if err != nil {
			contract.LogFatal("Resend failed", err)
		}
		cmd.Printf("Resent %s to %s\n", artifact.Filename, cfg.SlackChannel)
	},
}
