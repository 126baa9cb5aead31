// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "repostats",
	Short: "An HTTP backend for GitHub repository analytics.",
	Long: `repostats proxies a small set of repository-analytics queries to the
GitHub API and reshapes the payloads into UI-friendly structures:
per-week code churn, commit counts bucketed by day/week/month, and
pull-request open/closed/merged counts.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}
