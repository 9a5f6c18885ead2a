package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/reporover/reporover/internal/config"
	"github.com/reporover/reporover/internal/crawler"
	"github.com/reporover/reporover/internal/log"
	"github.com/reporover/reporover/internal/pipeline"
	"github.com/reporover/reporover/internal/report"
	"github.com/reporover/reporover/internal/store"
	"github.com/reporover/reporover/internal/textproc"
	"github.com/spf13/cobra"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Crawl the listing page and collect normalized READMEs",
		Long: `Crawl fetches the repository listing page, discovers repository URLs,
and processes each repository through a bounded worker pool:

1. Fetch the repository page (with a retry budget) and follow its
   README permalink
2. Extract the repository display name
3. Normalize the README text: lowercase, strip markup, tokenize,
   remove stopwords, then stem or lemmatize each token
4. Append one CSV row per new repository; names already present in
   the output file are skipped

Examples:
  # Crawl with defaults, appending to readmeMD.csv
  reporover crawl

  # Crawl a different listing into a custom file
  reporover crawl --listing https://github.com/trending -o trending.csv

  # Use stemming instead of lemmatization
  reporover crawl --stem

  # Write a Markdown crawl report alongside the dataset
  reporover crawl --report crawl-report.md

Configuration file (.reporover) example:
  listingUrl: https://github.com/explore
  output: readmeMD.csv
  workers: 4
  retries: 3
  stem: false`,
		Args: cobra.NoArgs,
		RunE: runCrawlCmd,
	}

	// Crawl target flags
	cmd.Flags().StringP("listing", "l", config.DefaultBaseURL+config.DefaultListingPath,
		"Listing page URL enumerating candidate repositories")
	cmd.Flags().String("base-url", config.DefaultBaseURL,
		"Origin that relative repository links are resolved against")

	// Output flags
	cmd.Flags().StringP("output", "o", config.DefaultOutputPath,
		"Append-only CSV file for processed repositories")
	cmd.Flags().StringP("report", "m", "",
		"Write a Markdown crawl report to the given path (\"-\" for stdout)")

	// Crawl behavior flags
	cmd.Flags().IntP("workers", "w", config.DefaultWorkers,
		"Number of concurrent repository workers")
	cmd.Flags().IntP("retries", "r", config.DefaultRetryBudget,
		"Attempts for the initial repository page fetch")
	cmd.Flags().Duration("retry-delay", config.DefaultRetryDelay,
		"Pause between retry attempts")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Per-request HTTP timeout")
	cmd.Flags().BoolP("stem", "s", false,
		"Reduce tokens with a stemmer instead of the lemmatizer")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .reporover in current, XDG config, or home directory)")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewCrawlLogger(cmd.ErrOrStderr(), cfg.Verbose)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runCrawl(ctx, cmd.OutOrStdout(), cfg, logger)
}

// buildConfig creates a Config from defaults, the optional config file,
// and command flags, in that order of precedence.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	configFilePath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg.ConfigFilePath = configFilePath

	// If the user explicitly specified a config file path, error if it is
	// not found. Otherwise silently run on defaults.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.ApplyTo(cfg)
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	// Flags override the config file only when actually set, so a file
	// value is not clobbered by a flag default.
	if cmd.Flags().Changed("listing") {
		if cfg.ListingURL, err = cmd.Flags().GetString("listing"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("base-url") {
		if cfg.BaseURL, err = cmd.Flags().GetString("base-url"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("output") {
		if cfg.OutputPath, err = cmd.Flags().GetString("output"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("workers") {
		if cfg.Workers, err = cmd.Flags().GetInt("workers"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("retries") {
		if cfg.RetryBudget, err = cmd.Flags().GetInt("retries"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("retry-delay") {
		if cfg.RetryDelay, err = cmd.Flags().GetDuration("retry-delay"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("timeout") {
		if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("stem") {
		stem, err := cmd.Flags().GetBool("stem")
		if err != nil {
			return nil, err
		}
		cfg.Lemmatize = !stem
	}

	if cfg.ReportFile, err = cmd.Flags().GetString("report"); err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
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

// runCrawl executes one crawl batch end to end.
func runCrawl(ctx context.Context, stdout io.Writer, cfg *config.Config, logger *slog.Logger) error {
	st := store.New(cfg.OutputPath)
	if err := st.Ensure(); err != nil {
		return fmt.Errorf("failed to prepare output file: %w", err)
	}

	prior, err := st.Load()
	if err != nil {
		return fmt.Errorf("failed to load existing records from %s: %w", st.Path(), err)
	}

	logger.Info("starting crawl",
		"listing", cfg.ListingURL,
		"output", st.Path(),
		"workers", cfg.Workers,
		"existingRecords", len(prior),
	)

	client := &http.Client{Timeout: cfg.Timeout}

	extractor := crawler.NewListingExtractor(cfg.BaseURL,
		crawler.WithListingClient(client),
		crawler.WithListingUserAgent(cfg.UserAgent),
		crawler.WithListingMaxBodySize(cfg.MaxBodySize),
		crawler.WithListingLogger(logger),
	)

	urls := extractor.RepositoryURLs(ctx, cfg.ListingURL)
	if len(urls) == 0 {
		logger.Warn("no repositories discovered on listing page", "listing", cfg.ListingURL)
		return nil
	}
	logger.Info("repositories discovered", "count", len(urls))

	fetcher := crawler.NewReadmeFetcher(cfg.BaseURL,
		crawler.WithFetcherClient(client),
		crawler.WithRetryBudget(cfg.RetryBudget),
		crawler.WithRetryDelay(cfg.RetryDelay),
		crawler.WithFetcherUserAgent(cfg.UserAgent),
		crawler.WithFetcherMaxBodySize(cfg.MaxBodySize),
		crawler.WithFetcherLogger(logger),
	)

	mode := textproc.ModeLemmatize
	if !cfg.Lemmatize {
		mode = textproc.ModeStem
	}
	normalizer, err := textproc.NewNormalizer(mode)
	if err != nil {
		return fmt.Errorf("failed to create normalizer: %w", err)
	}

	runner := pipeline.NewRunner(fetcher, normalizer, st,
		pipeline.WithConcurrency(cfg.Workers),
		pipeline.WithLogger(logger),
	)

	summary, err := runner.Run(ctx, urls, prior)
	if err != nil {
		return fmt.Errorf("crawl aborted: %w", err)
	}

	logger.Info("crawl finished",
		"discovered", summary.Discovered,
		"processed", summary.Processed,
		"duplicates", summary.Duplicates,
		"noReadme", summary.NoReadme,
		"failed", summary.Failed,
		"elapsed", summary.Elapsed.Round(time.Millisecond),
	)

	if cfg.ReportFile != "" {
		if err := writeReport(stdout, cfg.ReportFile, summary); err != nil {
			return fmt.Errorf("failed to write crawl report: %w", err)
		}
	}

	return nil
}

// writeReport renders the Markdown crawl report to the given path,
// or to stdout when path is "-".
func writeReport(stdout io.Writer, path string, summary *pipeline.Summary) error {
	if path == "-" {
		_, err := report.NewMarkdownWriter(stdout).Write(summary)
		return err
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return err
		}
	}

	f, err := os.Create(path) //nolint:gosec // User-provided report path is intentional
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = report.NewMarkdownWriter(f).Write(summary)
	return err
}
