package contract

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprintchart/burndown/schema"
)

func validRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		JiraHost:     "https://jira.example.com/",
		JiraUsername: "bot",
		JiraToken:    "secret",
		RapidViewID:  12,
		SprintID:     345,
		StoreBackend: "file",
		Workers:      4,
		Output:       "text",
		Color:        "no",
		LogLevel:     "info",
		LogFormat:    "text",
		Timezone:     "UTC",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{name: "valid minimal config", mutate: func(*ConfigRawInput) {}},
		{name: "invalid backend", mutate: func(in *ConfigRawInput) { in.StoreBackend = "redis" }, expectError: true},
		{name: "zero workers", mutate: func(in *ConfigRawInput) { in.Workers = 0 }, expectError: true},
		{name: "too many workers", mutate: func(in *ConfigRawInput) { in.Workers = MaxWorkers + 1 }, expectError: true},
		{name: "invalid output", mutate: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: true},
		{name: "invalid color", mutate: func(in *ConfigRawInput) { in.Color = "maybe" }, expectError: true},
		{name: "invalid log level", mutate: func(in *ConfigRawInput) { in.LogLevel = "loud" }, expectError: true},
		{name: "invalid log format", mutate: func(in *ConfigRawInput) { in.LogFormat = "yaml" }, expectError: true},
		{name: "invalid timezone", mutate: func(in *ConfigRawInput) { in.Timezone = "Mars/Olympus" }, expectError: true},
		{name: "invalid date", mutate: func(in *ConfigRawInput) { in.Date = "2024-13-40" }, expectError: true},
		{name: "mysql without dsn", mutate: func(in *ConfigRawInput) { in.StoreBackend = "mysql" }, expectError: true},
		{
			name: "postgres with dsn",
			mutate: func(in *ConfigRawInput) {
				in.StoreBackend = "postgresql"
				in.StoreDBConnect = "host=localhost user=u password=p dbname=burndown"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validRawInput()
			tt.mutate(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	input := validRawInput()
	input.Date = "20240105"
	input.LogLevel = "debug"
	input.LogFormat = "JSON"
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, "https://jira.example.com", cfg.JiraHost)
	assert.Equal(t, schema.FileBackend, cfg.StoreBackend)
	assert.Equal(t, DefaultStoreDir, cfg.StoreDir)
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, schema.NewDate(2024, time.January, 5), cfg.Date)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.UseColors)
}

func TestNormalizeJiraHost(t *testing.T) {
	assert.Equal(t, "https://jira.example.com", normalizeJiraHost("jira.example.com"))
	assert.Equal(t, "http://localhost:8080", normalizeJiraHost(" http://localhost:8080/ "))
	assert.Equal(t, "", normalizeJiraHost(""))
}

func TestConfigToday(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)

	// 2024-01-04 20:00 UTC is already 2024-01-05 in Tokyo.
	now := time.Date(2024, time.January, 4, 20, 0, 0, 0, time.UTC)

	cfg := &Config{Location: tokyo}
	assert.Equal(t, schema.NewDate(2024, time.January, 5), cfg.Today(now))

	cfg = &Config{Location: time.UTC}
	assert.Equal(t, schema.NewDate(2024, time.January, 4), cfg.Today(now))

	cfg.Date = schema.NewDate(2023, time.December, 1)
	assert.Equal(t, schema.NewDate(2023, time.December, 1), cfg.Today(now))
}

func TestValidateJira(t *testing.T) {
	base := Config{JiraHost: "https://jira.example.com", JiraUsername: "u", JiraToken: "t", RapidViewID: 1, SprintID: 2}
	assert.NoError(t, base.ValidateJira())

	noHost := base
	noHost.JiraHost = ""
	assert.Error(t, noHost.ValidateJira())

	badScheme := base
	badScheme.JiraHost = "ftp://jira.example.com"
	assert.Error(t, badScheme.ValidateJira())

	noToken := base
	noToken.JiraToken = ""
	assert.Error(t, noToken.ValidateJira())

	noSprint := base
	noSprint.SprintID = 0
	assert.Error(t, noSprint.ValidateJira())
}

func TestValidateSlack(t *testing.T) {
	assert.Error(t, (&Config{}).ValidateSlack())
	assert.Error(t, (&Config{SlackToken: "xoxb"}).ValidateSlack())
	assert.NoError(t, (&Config{SlackToken: "xoxb", SlackChannel: "#team"}).ValidateSlack())
	assert.NoError(t, (&Config{DryRun: true}).ValidateSlack())
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{schema.FileBackend, "", false},
		{schema.SQLiteBackend, "", false},
		{schema.MemoryBackend, "", false},
		{schema.MySQLBackend, "user:pass@tcp(localhost:3306)/burndown", false},
		{schema.MySQLBackend, "user:pass@localhost/burndown", true},
		{schema.MySQLBackend, "", true},
		{schema.PostgreSQLBackend, "host=localhost dbname=burndown", false},
		{schema.PostgreSQLBackend, "dbname=burndown", true},
		{schema.PostgreSQLBackend, "host=localhost", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.backend)+"/"+tt.connStr, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
