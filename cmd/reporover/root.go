package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for RepoRover.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reporover",
		Short: "Batch crawler that collects normalized repository READMEs",
		Long: `RepoRover crawls a repository listing page, downloads each repository's
README, normalizes the text (lowercasing, markup stripping, tokenization,
stopword removal, and stemming or lemmatization), and appends new
repositories to an append-only CSV dataset.

Each run is a one-shot batch: repositories already present in the dataset
are skipped, so consecutive runs keep accumulating into one file.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
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
