package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ShahwaizZahid/Job-Listing/cmd/joblist/commands"
	"github.com/ShahwaizZahid/Job-Listing/logger"
)

var rootCmd = &cobra.Command{
	Use:   "joblist",
	Short: "Job Listing - job postings API and tooling",
	Long: `Job Listing - HTTP API and operator tooling for job postings.

Serves a JSON API for listing, creating, fetching, and updating job
postings backed by SQLite, with filtering, sorting, and pagination.

Available commands:
  serve   - Start the job postings HTTP API server
  db      - Manage the job postings database
  config  - Manage joblist configuration
  version - Show version information

Examples:
  joblist serve                   # Start the API server
  joblist serve --port 8080       # Start on a specific port
  joblist db stats                # Show database statistics
  joblist config show             # Show current configuration`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize global logger before any command runs
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.InitializeWithLevel(false, logger.VerbosityToLevel(verbosity)); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")

	// Add commands
	rootCmd.AddCommand(commands.ServeCmd)
	rootCmd.AddCommand(commands.DbCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
