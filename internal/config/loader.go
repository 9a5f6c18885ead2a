package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".reporover"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .reporover configuration file.
// All fields are optional; zero values leave the corresponding Config
// field untouched so the file only needs to name what it overrides.
type File struct {
	// BaseURL overrides the origin repository links are resolved against.
	BaseURL string `yaml:"baseUrl,omitempty"`

	// ListingURL overrides the listing page enumerating repositories.
	ListingURL string `yaml:"listingUrl,omitempty"`

	// Output overrides the CSV output file path.
	Output string `yaml:"output,omitempty"`

	// Workers overrides the worker pool size.
	Workers int `yaml:"workers,omitempty"`

	// Retries overrides the retry budget for repository page fetches.
	Retries int `yaml:"retries,omitempty"`

	// RetryDelaySeconds overrides the pause between retry attempts.
	RetryDelaySeconds int `yaml:"retryDelaySeconds,omitempty"`

	// TimeoutSeconds overrides the per-request HTTP timeout.
	TimeoutSeconds int `yaml:"timeoutSeconds,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Stem switches token reduction from lemmatization to stemming.
	Stem bool `yaml:"stem,omitempty"`
}

// ApplyTo overlays the file's non-zero values onto cfg.
// CLI flags are applied after this, so precedence is
// defaults < config file < flags.
func (f *File) ApplyTo(cfg *Config) {
	if f.BaseURL != "" {
		cfg.BaseURL = f.BaseURL
	}
	if f.ListingURL != "" {
		cfg.ListingURL = f.ListingURL
	}
	if f.Output != "" {
		cfg.OutputPath = f.Output
	}
	if f.Workers != 0 {
		cfg.Workers = f.Workers
	}
	if f.Retries != 0 {
		cfg.RetryBudget = f.Retries
	}
	if f.RetryDelaySeconds != 0 {
		cfg.RetryDelay = time.Duration(f.RetryDelaySeconds) * time.Second
	}
	if f.TimeoutSeconds != 0 {
		cfg.Timeout = time.Duration(f.TimeoutSeconds) * time.Second
	}
	if f.UserAgent != "" {
		cfg.UserAgent = f.UserAgent
	}
	if f.Stem {
		cfg.Lemmatize = false
	}
}

// LoadConfigFile loads crawl configuration from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .reporover in the current directory
// 3. Look for .reporover in the XDG config directory
// 4. Look for .reporover in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	// Check XDG config directory
	xdgConfig := filepath.Join(XDGConfigDir(), DefaultConfigFile)
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
