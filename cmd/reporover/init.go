package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/reporover/reporover/internal/config"
	"github.com/spf13/cobra"
)

//go:embed templates/reporover.yaml
var configTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new RepoRover configuration file",
		Long: `Initialize creates a new .reporover configuration file in the current directory.

The generated file includes:
- Default settings for the listing URL, output file, and worker pool
- Commented examples for retry and timeout tuning
- Documentation for all available options

Examples:
  # Create .reporover in current directory
  reporover init

  # Create config file at a specific path
  reporover init -o myconfig.yaml

  # Force overwrite existing file
  reporover init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile("templates/reporover.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(cmd.OutOrStdout(), "\nEdit this file to configure crawl settings such as:")
	fmt.Fprintln(cmd.OutOrStdout(), "  - The listing page to crawl and the CSV output path")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Worker pool size, retry budget, and timeouts")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Stemming versus lemmatization for README text")

	return nil
}
