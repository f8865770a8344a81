// Package commands implements the CLI commands for econbrief.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/econbrief/econbrief/internal/app"
	"github.com/econbrief/econbrief/internal/config"
	"github.com/econbrief/econbrief/internal/logging"
)

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "econbrief",
		Short: "Country economic summaries from live indicator data",
		Long: `Econbrief fetches country indicators, renders them into analysis
prompts and asks an LLM for a narrative summary.

Configuration comes from the environment (and a .env file if present),
the same variables the HTTP server reads.

Examples:
  # Show the trade prompt that would be sent for Canada
  econbrief prompt Canada --parameter trade

  # Generate the comprehensive summary
  econbrief summarize "South Africa"

  # Create or update the database schema
  econbrief migrate`,
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("env-file", ".env", "dotenv file to load before reading the environment")
	root.PersistentFlags().Bool("debug", false, "enable debug logging")

	root.AddCommand(
		newPromptCommand(),
		newSummarizeCommand(),
		newMigrateCommand(),
		newTemplatesCommand(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	err := NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

// setup loads configuration and a stderr logger, keeping stdout for command output.
func setup(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		return config.Config{}, nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Logging.Level = slog.LevelDebug
	}
	cfg.Logging.Format = "text"

	logger, err := logging.NewWithWriter(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}
