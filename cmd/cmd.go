// Package cmd defines the command-line interface for burndown.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sprintchart/burndown/internal/contract"
	"github.com/sprintchart/burndown/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(resendCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("jira-host", "", "Jira host, e.g. jira.example.com (https is assumed)")
	rootCmd.PersistentFlags().String("jira-username", "", "Jira user for basic auth")
	rootCmd.PersistentFlags().String("jira-token", "", "Jira password or API token (prefer JIRA_TOKEN)")
	rootCmd.PersistentFlags().Int64("rapid-view-id", 0, "Jira board (rapid view) id")
	rootCmd.PersistentFlags().Int64("sprint-id", 0, "Jira sprint id")
	rootCmd.PersistentFlags().String("slack-token", "", "Slack bot token (prefer SLACK_TOKEN)")
	rootCmd.PersistentFlags().String("slack-channel", "", "Slack channel id to post charts to")
	rootCmd.PersistentFlags().String("slack-api-url", "", "Override the Slack API base URL")
	rootCmd.PersistentFlags().String("store-backend", string(schema.FileBackend), "Snapshot store: file or sqlite or mysql or postgresql or memory")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for sqlite/mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("store-dir", contract.DefaultStoreDir, "Directory for the file snapshot store")
	rootCmd.PersistentFlags().String("output-dir", contract.DefaultOutputDir, "Directory for rendered chart artifacts")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent snapshot lookups")
	rootCmd.PersistentFlags().Bool("lenient", false, "Chart missing days as gaps instead of failing")
	rootCmd.PersistentFlags().Bool("dry-run", false, "Write the chart but do not post it")
	rootCmd.PersistentFlags().String("timezone", "", "IANA zone used to decide today's date (default: local)")
	rootCmd.PersistentFlags().String("date", "", "Date to show or resend (YYYYMMDD or YYYY-MM-DD); report only accepts today")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("color", "auto", "Enable colored labels in output (auto/yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("log-format", contract.DefaultLogFormat, "Log format: text or json")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of checkCmd to Viper
	checkCmd.Flags().String("message", "", "Post this test message to the Slack channel")
	if err := viper.BindPFlags(checkCmd.Flags()); err != nil {
		contract.LogFatal("Error binding check flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
