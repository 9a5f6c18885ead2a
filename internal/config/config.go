package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These mirror the defaults of earlier RepoRover datasets where applicable
// so that output files produced by old and new runs stay compatible.
const (
	// DefaultBaseURL is the fixed origin that relative repository links
	// on the listing page are resolved against.
	DefaultBaseURL = "https://github.com"

	// DefaultListingPath is the path of the listing page enumerating
	// candidate repositories, relative to the base origin.
	DefaultListingPath = "/explore"

	// DefaultOutputPath is the CSV file rows are appended to.
	// The file lives in the working directory so consecutive runs on the
	// same machine keep accumulating into one dataset.
	DefaultOutputPath = "readmeMD.csv"

	// DefaultWorkers is the fixed size of the worker pool. Four workers
	// keep the crawl gentle on the remote host while still overlapping
	// network latency.
	DefaultWorkers = 4

	// DefaultRetryBudget is the number of attempts for the initial
	// repository page fetch. A fetch succeeds only if a 200 response
	// arrives within this many attempts.
	DefaultRetryBudget = 3

	// DefaultRetryDelay is the fixed pause between retry attempts.
	// There is deliberately no backoff; the job is a small one-shot batch.
	DefaultRetryDelay = 1 * time.Second

	// DefaultTimeout is the per-request HTTP timeout. 30 seconds is
	// generous for public pages and bounds how long a stuck fetch can
	// hold a worker.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies RepoRover in HTTP requests.
	DefaultUserAgent = "RepoRover/1.0 (+https://github.com/reporover/reporover)"

	// DefaultMaxBodySize limits the response body size to read.
	// 5MB covers any realistic README page while preventing memory
	// exhaustion from unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// AppName is the application name used for XDG directory paths.
	AppName = "reporover"
)

// Config holds all configuration options for a crawl run.
// It is built once at startup from defaults, an optional config file,
// and CLI flags, then passed through the application via dependency
// injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., FetchConfig, StoreConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without benefit.
type Config struct {
	// BaseURL is the origin that relative repository links are resolved
	// against. Only links on this origin are followed.
	BaseURL string

	// ListingURL is the page enumerating candidate repositories.
	ListingURL string

	// OutputPath is the append-only CSV file for processed records.
	// The file is created with a header row if missing and is never
	// truncated by a normal run.
	OutputPath string

	// Workers is the size of the worker pool processing repository URLs.
	Workers int

	// RetryBudget is the number of attempts for the initial repository
	// page fetch before the repository is treated as unavailable.
	RetryBudget int

	// RetryDelay is the fixed pause between retry attempts.
	RetryDelay time.Duration

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Responses larger than this are truncated.
	MaxBodySize int64

	// Lemmatize selects the token reduction strategy: true maps tokens
	// to dictionary base forms, false truncates them with a stemmer.
	Lemmatize bool

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ReportFile is an optional path for a Markdown crawl report.
	// "-" writes the report to stdout; empty disables the report.
	ReportFile string

	// ConfigFilePath is the path to the configuration file. If empty,
	// the tool searches for .reporover in the current directory, the
	// XDG config directory, and the user's home directory.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (timeouts, worker count,
// retry budget). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		BaseURL:     DefaultBaseURL,
		ListingURL:  DefaultBaseURL + DefaultListingPath,
		OutputPath:  DefaultOutputPath,
		Workers:     DefaultWorkers,
		RetryBudget: DefaultRetryBudget,
		RetryDelay:  DefaultRetryDelay,
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		Lemmatize:   true,
	}
}

// XDGConfigDir returns the XDG config directory for RepoRover.
// On Linux: ~/.config/reporover
// On macOS: ~/Library/Application Support/reporover
// On Windows: %APPDATA%\reporover
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGDataDir returns the XDG data directory for RepoRover.
// On Linux: ~/.local/share/reporover
// On macOS: ~/Library/Application Support/reporover
// On Windows: %LOCALAPPDATA%\reporover
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any crawling begins.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrNoBaseURL
	}

	if c.ListingURL == "" {
		return ErrNoListingURL
	}

	if c.OutputPath == "" {
		return ErrNoOutputPath
	}

	// Workers must be positive; zero would mean no processing at all
	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}

	// The retry budget counts attempts, so at least one is required
	if c.RetryBudget <= 0 {
		return ErrInvalidRetryBudget
	}

	// A negative delay is invalid; use 0 for no pause between attempts
	if c.RetryDelay < 0 {
		return ErrInvalidRetryDelay
	}

	// Timeout must be positive; zero would cause immediate failures
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.MaxBodySize <= 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}
