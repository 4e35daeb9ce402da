// Package slack delivers rendered charts to a Slack channel.
package slack

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/slack-go/slack"

	"github.com/sprintchart/burndown/internal/contract"
	"github.com/sprintchart/burndown/schema"
)

// Deliverer uploads artifacts with the files.uploadV2 flow.
type Deliverer struct {
	client  *slack.Client
	channel string
	logger  *slog.Logger
}

var _ contract.Deliverer = &Deliverer{} // Compile-time check

// NewDeliverer builds a Deliverer for a bot token and channel ID.
// apiURL overrides the Slack API endpoint and may be empty.
func NewDeliverer(token, channel, apiURL string, logger *slog.Logger) *Deliverer {
	if logger == nil {
		logger = slog.Default()
	}
	var opts []slack.Option
	if apiURL != "" {
		if !strings.HasSuffix(apiURL, "/") {
			apiURL += "/"
		}
		opts = append(opts, slack.OptionAPIURL(apiURL))
	}
	return &Deliverer{
		client:  slack.New(token, opts...),
		channel: channel,
		logger:  logger,
	}
}

// Deliver uploads the artifact bytes under its filename and title.
func (d *Deliverer) Deliver(ctx context.Context, artifact schema.Artifact) error {
	if len(artifact.Data) == 0 {
		return &contract.DeliveryError{Filename: artifact.Filename, Err: errors.New("artifact is empty")}
	}
	file, err := d.client.UploadFileV2Context(ctx, slack.UploadFileV2Parameters{
		Reader:   bytes.NewReader(artifact.Data),
		FileSize: len(artifact.Data),
		Filename: artifact.Filename,
		Title:    artifact.Title,
		Channel:  d.channel,
	})
	if err != nil {
		return &contract.DeliveryError{Filename: artifact.Filename, Err: err}
	}
	d.logger.Info("slack: artifact uploaded", "file_id", file.ID, "filename", artifact.Filename, "channel", d.channel)
	return nil
}

// CheckAuth verifies the token and returns "user@team".
func (d *Deliverer) CheckAuth(ctx context.Context) (string, error) {
	resp, err := d.client.AuthTestContext(ctx)
	if err != nil {
		return "", fmt.Errorf("slack authentication failed: %w", err)
	}
	return resp.User + "@" + resp.Team, nil
}

// PostMessage sends a plain text message to the configured channel.
func (d *Deliverer) PostMessage(ctx context.Context, text string) error {
	_, ts, err := d.client.PostMessageContext(ctx, d.channel, slack.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("failed to post message to %s: %w", d.channel, err)
	}
	d.logger.Debug("slack: message posted", "channel", d.channel, "ts", ts)
	return nil
}
