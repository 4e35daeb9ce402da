//go:build basic

// Package integration contains integration tests for burndown.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
// Database backends need Docker: go test -tags database ./integration
package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprintchart/burndown/internal/snapstore"
	"github.com/sprintchart/burndown/schema"
)

// sprintWindow is a ten-day sprint that started two days before today (UTC).
func sprintWindow() (start, end, today schema.Date) {
	today = schema.DateOf(time.Now().UTC())
	return today.AddDays(-2), today.AddDays(7), today
}

// fakeJira serves a sprint report for the current sprint window with a fixed remaining value.
func fakeJira(t *testing.T, remaining float64) *httptest.Server {
	t.Helper()
	start, end, _ := sprintWindow()
	const isoLayout = "2006-01-02T15:04:05-0700"
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/greenhopper/1.0/rapid/charts/sprintreport", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{
  "contents": {
    "completedIssuesEstimateSum": {"value": %g},
    "issuesNotCompletedEstimateSum": {"value": %g}
  },
  "sprint": {
    "id": 9, "name": "Sprint 9", "goal": "20",
    "isoStartDate": %q,
    "isoEndDate": %q
  }
}`, 20-remaining, remaining,
			start.Time(time.UTC).Add(9*time.Hour).Format(isoLayout),
			end.Time(time.UTC).Add(18*time.Hour).Format(isoLayout))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// seedHistory stores earlier captures of the sprint; a negative value leaves that day empty.
func seedHistory(t *testing.T, storeDir string, remaining ...float64) {
	t.Helper()
	start, end, _ := sprintWindow()
	store, err := snapstore.NewFileStore(storeDir)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	for i, r := range remaining {
		if r < 0 {
			continue
		}
		d := start.AddDays(i)
		require.NoError(t, store.Put(context.Background(), schema.SprintSnapshot{
			SprintID:           9,
			Name:               "Sprint 9",
			GoalPoints:         20,
			StartDate:          start,
			EndDate:            end,
			CompletedPointsSum: 20 - r,
			RemainingPointsSum: r,
			TotalPointsSum:     20,
			CapturedAt:         d.Time(time.UTC).Add(18 * time.Hour),
			CaptureDate:        d,
		}))
	}
}

func reportEnv(srv *httptest.Server, dir string) map[string]string {
	return map[string]string{
		"BURNDOWN_JIRA_HOST":     srv.URL,
		"BURNDOWN_JIRA_USERNAME": "bot",
		"BURNDOWN_JIRA_TOKEN":    "token",
		"BURNDOWN_RAPID_VIEW_ID": "12",
		"BURNDOWN_SPRINT_ID":     "9",
		"BURNDOWN_STORE_DIR":     filepath.Join(dir, "store"),
		"BURNDOWN_OUTPUT_DIR":    filepath.Join(dir, "charts"),
		"BURNDOWN_TIMEZONE":      "UTC",
		"BURNDOWN_COLOR":         "no",
	}
}

// TestReportAndSeriesEndToEnd captures today on top of two stored days and
// reads the series back from the file store.
func TestReportAndSeriesEndToEnd(t *testing.T) {
	srv := fakeJira(t, 15)
	dir := t.TempDir()
	env := reportEnv(srv, dir)
	seedHistory(t, env["BURNDOWN_STORE_DIR"], 20, 17)
	_, _, today := sprintWindow()

	// A same-day rerun overwrites today's capture and chart.
	for range 2 {
		_, err := runBurndown(t, dir, env, "report", "--dry-run")
		require.NoError(t, err)

		image, err := os.ReadFile(filepath.Join(dir, "charts", schema.ArtifactFilename(today)))
		require.NoError(t, err)
		assert.Equal(t, []byte("\x89PNG"), image[:4])
	}

	out, err := runBurndown(t, dir, env, "series", "--output", "json")
	require.NoError(t, err)

	var report schema.SeriesReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "Sprint 9", report.Sprint.Name)
	require.Len(t, report.Rows, 10)
	for i, want := range []float64{20, 17, 15} {
		require.NotNil(t, report.Rows[i].Remaining)
		assert.InDelta(t, want, *report.Rows[i].Remaining, 0.001)
	}
	assert.Equal(t, schema.FutureStatus, report.Rows[3].Status)

	exportPath := filepath.Join(dir, "snapshots.parquet")
	_, err = runBurndown(t, dir, env, "store", "export", "--output-file", exportPath)
	require.NoError(t, err)
	assert.FileExists(t, exportPath)
}

// TestReportRefusesPastDate keeps stored history intact when asked to recapture an earlier day.
func TestReportRefusesPastDate(t *testing.T) {
	srv := fakeJira(t, 3)
	dir := t.TempDir()
	env := reportEnv(srv, dir)
	seedHistory(t, env["BURNDOWN_STORE_DIR"], 20, 17)
	start, _, _ := sprintWindow()
	yesterday := start.AddDays(1)

	_, err := runBurndown(t, dir, env, "report", "--dry-run", "--date", yesterday.Key())
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "charts", schema.ArtifactFilename(yesterday)))

	store, err := snapstore.NewFileStore(env["BURNDOWN_STORE_DIR"])
	require.NoError(t, err)
	snap, err := store.Get(context.Background(), yesterday)
	require.NoError(t, err)
	assert.Equal(t, 17.0, snap.RemainingPointsSum)
}

// TestReportFailsOnGap leaves yesterday empty and expects the strict run to fail without writing a chart.
func TestReportFailsOnGap(t *testing.T) {
	srv := fakeJira(t, 15)
	dir := t.TempDir()
	env := reportEnv(srv, dir)
	seedHistory(t, env["BURNDOWN_STORE_DIR"], 20, -1)
	_, _, today := sprintWindow()
	chartPath := filepath.Join(dir, "charts", schema.ArtifactFilename(today))

	_, err := runBurndown(t, dir, env, "report", "--dry-run")
	require.Error(t, err)
	assert.NoFileExists(t, chartPath)

	_, err = runBurndown(t, dir, env, "report", "--dry-run", "--lenient")
	require.NoError(t, err)
	assert.FileExists(t, chartPath)
}
