package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprintchart/burndown/internal/contract"
)

func TestRunCheckDryRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/api/2/myself" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"name": "bot", "displayName": "Burndown Bot"})
	}))
	defer srv.Close()

	saved := *cfg
	t.Cleanup(func() { *cfg = saved })
	*cfg = contract.Config{
		JiraHost:     srv.URL,
		JiraUsername: "bot",
		JiraToken:    "token",
		RapidViewID:  12,
		SprintID:     345,
		DryRun:       true,
	}

	var out bytes.Buffer
	require.NoError(t, runCheck(context.Background(), &out, ""))
	assert.Contains(t, out.String(), "Jira: authenticated as Burndown Bot")
	assert.Contains(t, out.String(), "Slack: skipped (dry run)")
}

func TestRunCheckRequiresJira(t *testing.T) {
	saved := *cfg
	t.Cleanup(func() { *cfg = saved })
	*cfg = contract.Config{}

	err := runCheck(context.Background(), &bytes.Buffer{}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jira-host is required")
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"report"}, {"series"}, {"resend"}, {"check"}, {"mcp"}, {"version"},
		{"store", "status"}, {"store", "clear"}, {"store", "export"}, {"store", "migrate"},
	} {
		found, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], found.Name())
	}
}
