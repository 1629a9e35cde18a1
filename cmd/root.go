// Package cmd defines the CLI commands for the harvester executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hcp-harvester",
		Short: "Harvests healthcare provider profiles from directory sites.",
		Long: `hcp-harvester walks a MongoDB collection of candidate profile URLs,
dispatches each URL to its site-specific extraction adapter over either a
plain HTTP fetch or a headless browser, and persists the extracted records
to the master and target stores. URLs already captured in either store are
never fetched again, so interrupted runs resume where they left off.`,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: built-in defaults + HARVESTER_* env)")

	cmd.AddCommand(newHarvestCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
