package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sprintchart/burndown/internal/contract"
	"github.com/sprintchart/burndown/internal/jira"
	"github.com/sprintchart/burndown/internal/slack"
)

// checkCmd verifies credentials before the job is scheduled.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify Jira and Slack credentials",
	Long: `Authenticate against Jira and Slack with the configured credentials.

With --message the text is posted to the configured channel, which confirms
the bot was invited. Slack is skipped when --dry-run is set.

Examples:
  burndown check
  burndown check --message "burndown is set up"`,
	PreRunE: configOnlySetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		if err := runCheck(rootCtx, cmd.OutOrStdout(), viper.GetString("message")); err != nil {
			contract.LogFatal("Check failed", err)
		}
	},
}

func runCheck(ctx context.Context, w io.Writer, message string) error {
	if err := cfg.ValidateJira(); err != nil {
		return err
	}
	fetcher, err := jira.NewFetcher(cfg.JiraHost, cfg.JiraUsername, cfg.JiraToken, jira.WithLogger(logger))
	if err != nil {
		return err
	}
	user, err := fetcher.CheckAuth(ctx)
	if err != nil {
		return fmt.Errorf("jira: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Jira: authenticated as %s on %s\n", user, cfg.JiraHost)

	if cfg.DryRun {
		_, _ = fmt.Fprintln(w, "Slack: skipped (dry run)")
		return nil
	}
	if err := cfg.ValidateSlack(); err != nil {
		return err
	}
	deliverer := slack.NewDeliverer(cfg.SlackToken, cfg.SlackChannel, cfg.SlackAPIURL, logger)
	identity, err := deliverer.CheckAuth(ctx)
	if err != nil {
		return fmt.Errorf("slack: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Slack: authenticated as %s\n", identity)

	if message != "" {
		if err := deliverer.PostMessage(ctx, message); err != nil {
			return fmt.Errorf("slack: %w", err)
		}
		_, _ = fmt.Fprintf(w, "Slack: posted test message to %s\n", cfg.SlackChannel)
	}
	return nil
}
