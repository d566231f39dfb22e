// Package main provides the entry point for the reportgen CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/reportgen/internal/log"
)

// NewRootCmd creates the root command for reportgen.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reportgen",
		Short: "Role-aware CSV, HTML and Markdown report generator",
		Long: `reportgen formats a list of line items into a textual report.

Before rendering, items are filtered and enriched according to the viewing
user's role: administrators see every item and high-value items are marked
as priority, standard users only see items valued at 500 or less.

Items are read from YAML or JSON files or from datasets imported into the
local database. Generated reports are recorded in the database history.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")

	// Add subcommands
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewImportCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// getLogJSONFlag retrieves the log-json flag from the command or its parent.
func getLogJSONFlag(cmd *cobra.Command) bool {
	logJSON, err := cmd.Flags().GetBool("log-json")
	if err != nil {
		logJSON, err = cmd.Root().PersistentFlags().GetBool("log-json")
		if err != nil {
			return false
		}
	}
	return logJSON
}

// setupLogger creates the masking logger for a command and installs it
// as the default logger.
func setupLogger(cmd *cobra.Command) *slog.Logger {
	var logger *slog.Logger
	if getLogJSONFlag(cmd) {
		logger = log.NewSecureJSONLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
	} else {
		logger = log.NewSecureLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
	}
	slog.SetDefault(logger)
	return logger
}
