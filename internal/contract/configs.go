package contract

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/sprintchart/burndown/schema"
)

// Default values for configuration.
const (
	DefaultStoreDir  = "output"
	DefaultOutputDir = "output"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	MaxWorkers       = 64
)

// DefaultWorkers is the default number of concurrent snapshot lookups.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Config holds the runtime configuration for a burndown run.
// This struct is the "final, validated" config.
type Config struct {
	JiraHost     string
	JiraUsername string
	JiraToken    string // Please use env var as this is plaintext
	RapidViewID  int64
	SprintID     int64

	SlackToken   string // Please use env var as this is plaintext
	SlackChannel string
	SlackAPIURL  string

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext
	StoreDir       string
	OutputDir      string

	Workers  int
	Lenient  bool
	DryRun   bool
	Location *time.Location

	// Date overrides "today" for report/series and selects the artifact for resend.
	Date schema.Date

	Output     schema.OutputMode
	OutputFile string
	UseColors  bool

	LogLevel  slog.Level
	LogFormat string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file, .env).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	JiraHost     string `mapstructure:"jira-host"`
	JiraUsername string `mapstructure:"jira-username"`
	JiraToken    string `mapstructure:"jira-token"`
	RapidViewID  int64  `mapstructure:"rapid-view-id"`
	SprintID     int64  `mapstructure:"sprint-id"`

	SlackToken   string `mapstructure:"slack-token"`
	SlackChannel string `mapstructure:"slack-channel"`
	SlackAPIURL  string `mapstructure:"slack-api-url"`

	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	StoreDir       string `mapstructure:"store-dir"`
	OutputDir      string `mapstructure:"output-dir"`

	Workers  int    `mapstructure:"workers"`
	Lenient  bool   `mapstructure:"lenient"`
	DryRun   bool   `mapstructure:"dry-run"`
	Timezone string `mapstructure:"timezone"`
	Date     string `mapstructure:"date"`

	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Color      string `mapstructure:"color"`

	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`
}

// Today returns the configured date override, or the current date in the configured zone.
func (c *Config) Today(now time.Time) schema.Date {
	if !c.Date.IsZero() {
		return c.Date
	}
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return schema.DateOf(now.In(loc))
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct. Credentials are checked per command
// through ValidateJira and ValidateSlack.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateStoreConfig(cfg, input); err != nil {
		return err
	}
	return processTimeInputs(cfg, input)
}

// ValidateJira checks the settings needed to talk to the tracker.
func (c *Config) ValidateJira() error {
	if c.JiraHost == "" {
		return fmt.Errorf("jira-host is required")
	}
	if !strings.HasPrefix(c.JiraHost, "http://") && !strings.HasPrefix(c.JiraHost, "https://") {
		return fmt.Errorf("jira-host must start with http:// or https:// (received %q)", c.JiraHost)
	}
	if c.JiraUsername == "" || c.JiraToken == "" {
		return fmt.Errorf("jira-username and jira-token are required")
	}
	if c.RapidViewID <= 0 {
		return fmt.Errorf("rapid-view-id must be greater than 0 (received %d)", c.RapidViewID)
	}
	if c.SprintID <= 0 {
		return fmt.Errorf("sprint-id must be greater than 0 (received %d)", c.SprintID)
	}
	return nil
}

// ValidateSlack checks the settings needed to deliver artifacts.
// A dry run never delivers, so nothing is required.
func (c *Config) ValidateSlack() error {
	if c.DryRun {
		return nil
	}
	if c.SlackToken == "" {
		return fmt.Errorf("slack-token is required unless --dry-run is set")
	}
	if c.SlackChannel == "" {
		return fmt.Errorf("slack-channel is required unless --dry-run is set")
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.FileBackend, schema.SQLiteBackend, schema.MemoryBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates fields that need no lookups.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.JiraHost = normalizeJiraHost(input.JiraHost)
	cfg.JiraUsername = input.JiraUsername
	cfg.JiraToken = input.JiraToken
	cfg.RapidViewID = input.RapidViewID
	cfg.SprintID = input.SprintID
	cfg.SlackToken = input.SlackToken
	cfg.SlackChannel = input.SlackChannel
	cfg.SlackAPIURL = input.SlackAPIURL
	cfg.Lenient = input.Lenient
	cfg.DryRun = input.DryRun
	cfg.OutputFile = input.OutputFile

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Workers Validation ---
	if input.Workers <= 0 || input.Workers > MaxWorkers {
		return fmt.Errorf("workers must be greater than 0 and cannot exceed %d (received %d)", MaxWorkers, input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 2. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", input.Output)
	}

	// --- 3. Logging Validation ---
	level, err := ParseLogLevel(input.LogLevel)
	if err != nil {
		return err
	}
	cfg.LogLevel = level

	cfg.LogFormat = strings.ToLower(input.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return fmt.Errorf("invalid log format '%s'. must be text, json", input.LogFormat)
	}
	return nil
}

// normalizeJiraHost accepts a bare host name and assumes https.
func normalizeJiraHost(host string) string {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if host == "" || strings.Contains(host, "://") {
		return host
	}
	return "https://" + host
}

// validateStoreConfig validates the snapshot store configuration.
func validateStoreConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be file, sqlite, mysql, postgresql, memory", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	if err := ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return err
	}

	cfg.StoreDir = input.StoreDir
	if cfg.StoreDir == "" {
		cfg.StoreDir = DefaultStoreDir
	}
	cfg.OutputDir = input.OutputDir
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	return nil
}

// processTimeInputs resolves the timezone and the optional date override.
func processTimeInputs(cfg *Config, input *ConfigRawInput) error {
	switch tz := strings.TrimSpace(input.Timezone); tz {
	case "", "Local", "local":
		cfg.Location = time.Local
	default:
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return fmt.Errorf("invalid timezone '%s': %w", tz, err)
		}
		cfg.Location = loc
	}

	cfg.Date = schema.Date{}
	if input.Date != "" {
		d, err := schema.ParseDate(input.Date)
		if err != nil {
			return fmt.Errorf("invalid --date value: %w", err)
		}
		cfg.Date = d
	}
	return nil
}
