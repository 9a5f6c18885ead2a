// Package log provides crawl-oriented logging built on top of the
// standard slog package.
//
// This package extends slog to provide:
//   - Length caps on string attribute values, so page bodies and
//     normalized README text cannot flood the log
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Usage
//
//	logger := log.NewCrawlLogger(os.Stderr, true) // verbose=true
//
//	logger.Debug("readme fetched",
//	    "url", "https://github.com/acme/alpha",
//	    "body", body, // capped at DefaultMaxValueLen bytes
//	)
package log
