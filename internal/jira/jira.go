// Package jira reads sprint metrics from the Jira Agile sprint report.
package jira

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	jira "github.com/andygrunwald/go-jira"

	"github.com/sprintchart/burndown/internal/contract"
	"github.com/sprintchart/burndown/schema"
)

// sprintReportPath is the GreenHopper endpoint behind the board's sprint report.
const sprintReportPath = "rest/greenhopper/1.0/rapid/charts/sprintreport"

// Fetcher reads the sprint report through go-jira.
type Fetcher struct {
	client   *jira.Client
	location *time.Location
	now      func() time.Time
	logger   *slog.Logger
}

var _ contract.SprintFetcher = &Fetcher{} // Compile-time check

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithLocation sets the zone used to derive calendar dates. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(f *Fetcher) { f.location = loc }
}

// WithClock overrides the capture clock.
func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) { f.now = now }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(f *Fetcher) { f.logger = l }
}

// NewFetcher builds a Fetcher that authenticates with basic auth (user + API token).
func NewFetcher(baseURL, username, token string, opts ...Option) (*Fetcher, error) {
	tp := jira.BasicAuthTransport{Username: username, Password: token}
	client, err := jira.NewClient(tp.Client(), baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client for %q: %w", baseURL, err)
	}
	f := &Fetcher{
		client:   client,
		location: time.Local,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// FetchToday reads the sprint report and normalizes it into today's snapshot.
func (f *Fetcher) FetchToday(ctx context.Context, rapidViewID, sprintID int64) (schema.SprintSnapshot, error) {
	wrap := func(err error) error {
		return &contract.UpstreamFetchError{RapidViewID: rapidViewID, SprintID: sprintID, Err: err}
	}

	report, err := f.fetchReport(ctx, rapidViewID, sprintID)
	if err != nil {
		return schema.SprintSnapshot{}, wrap(err)
	}
	snapshot, err := Normalize(report, f.now(), f.location)
	if err != nil {
		return schema.SprintSnapshot{}, wrap(err)
	}
	f.logger.Debug("jira: sprint report fetched",
		"sprint_id", snapshot.SprintID,
		"remaining", snapshot.RemainingPointsSum,
		"completed", snapshot.CompletedPointsSum)
	return snapshot, nil
}

func (f *Fetcher) fetchReport(ctx context.Context, rapidViewID, sprintID int64) (*SprintReport, error) {
	q := url.Values{}
	q.Set("rapidViewId", fmt.Sprint(rapidViewID))
	q.Set("sprintId", fmt.Sprint(sprintID))

	req, err := f.client.NewRequestWithContext(ctx, http.MethodGet, sprintReportPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	report := new(SprintReport)
	resp, err := f.client.Do(req, report)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("sprint report request failed: %w", err)
	}
	return report, nil
}

// CheckAuth verifies the credentials and returns the display name of the authenticated user.
func (f *Fetcher) CheckAuth(ctx context.Context) (string, error) {
	user, resp, err := f.client.User.GetSelfWithContext(ctx)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return "", fmt.Errorf("jira authentication failed: %w", err)
	}
	if user.DisplayName != "" {
		return user.DisplayName, nil
	}
	return user.Name, nil
}
