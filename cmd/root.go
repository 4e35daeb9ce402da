package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sprintchart/burndown/internal/contract"
	"github.com/sprintchart/burndown/internal/snapstore"
	"github.com/sprintchart/burndown/schema"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations. Execute replaces it with
// one that is cancelled on SIGINT or SIGTERM.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// logger is configured from --log-level and --log-format during setup.
var logger = slog.Default()

// envFallbacks lists the plain environment names honoured after the BURNDOWN_ ones.
var envFallbacks = map[string][]string{
	"jira-host":     {"JIRA_HOST"},
	"jira-username": {"JIRA_USERNAME"},
	"jira-token":    {"JIRA_TOKEN", "JIRA_PASSWORD"},
	"rapid-view-id": {"RAPID_VIEW_ID"},
	"sprint-id":     {"SPRINT_ID"},
	"slack-token":   {"SLACK_TOKEN"},
	"slack-channel": {"SLACK_CHANNEL"},
}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "burndown",
	Short:              "Build and deliver the daily sprint burndown chart.",
	Long:               `Burndown captures one sprint snapshot per day, rebuilds the remaining-points series against an ideal guideline and posts the chart to Slack.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in .env, the config file settings and ENV variables if set.
func initConfig() {
	// A missing .env file is the normal case outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		contract.LogWarn("Could not load .env file", err)
	}

	setConfigFile()

	// Set environment variable prefix
	viper.SetEnvPrefix("BURNDOWN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	for key, names := range envFallbacks {
		prefixed := "BURNDOWN_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
		if err := viper.BindEnv(append([]string{key, prefixed}, names...)...); err != nil {
			contract.LogFatal("Error binding environment fallbacks", err)
		}
	}

	// Set defaults in Viper
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("store-backend", schema.FileBackend)
	viper.SetDefault("store-dir", contract.DefaultStoreDir)
	viper.SetDefault("output-dir", contract.DefaultOutputDir)
	viper.SetDefault("color", "auto")
	viper.SetDefault("log-level", contract.DefaultLogLevel)
	viper.SetDefault("log-format", contract.DefaultLogFormat)
}

// setConfigFile points viper at --config or the default .burndown.yaml locations.
func setConfigFile() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(".burndown") // Name of config file (without extension)
	viper.SetConfigType("yaml")      // We'll use YAML format
	viper.AddConfigPath(".")         // Look in the current directory
	viper.AddConfigPath("$HOME")     // Look in the home directory
}

// loadAndValidate merges defaults, file, env and flags into cfg and sets up logging.
func loadAndValidate() error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// 4. Diagnostics go to stderr so stdout stays clean for table/CSV/JSON and MCP.
	logger = contract.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	return nil
}

// sharedSetup validates config and opens the snapshot store.
func sharedSetup(_ context.Context, _ *cobra.Command, _ []string) error {
	if err := loadAndValidate(); err != nil {
		return err
	}
	if err := snapstore.InitStore(cfg.StoreBackend, cfg.StoreDBConnect, cfg.StoreDir); err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// configOnlySetupWrapper validates config without touching the store.
func configOnlySetupWrapper(_ *cobra.Command, _ []string) error {
	return loadAndValidate()
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	rootCtx = ctx
	return rootCmd.ExecuteContext(ctx)
}
