package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoBaseURL is returned when the base origin is empty.
	// Relative repository links cannot be resolved without it.
	ErrNoBaseURL = errors.New("no base URL: provide the origin repository links are resolved against")

	// ErrNoListingURL is returned when no listing page is configured.
	// The crawl has no entry point without one.
	ErrNoListingURL = errors.New("no listing URL: provide the page enumerating candidate repositories")

	// ErrNoOutputPath is returned when the output CSV path is empty.
	ErrNoOutputPath = errors.New("no output path: provide the CSV file to append records to")

	// ErrInvalidWorkers is returned when the worker count is not positive.
	// A pool of zero workers would process nothing.
	ErrInvalidWorkers = errors.New("invalid workers: must be positive")

	// ErrInvalidRetryBudget is returned when the retry budget is not positive.
	// The budget counts fetch attempts, so at least one attempt is required.
	ErrInvalidRetryBudget = errors.New("invalid retry budget: must be positive")

	// ErrInvalidRetryDelay is returned when the retry delay is negative.
	// Use 0 for no pause between attempts.
	ErrInvalidRetryDelay = errors.New("invalid retry delay: must be non-negative")

	// ErrInvalidTimeout is returned when the HTTP timeout is not positive.
	// A zero timeout would cause immediate request failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is not positive.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be positive")
)
