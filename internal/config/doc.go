// Package config provides configuration structures and utilities for RepoRover.
// It defines the crawl options (listing page, output file, worker pool size,
// retry behavior, normalization mode) and the optional .reporover YAML file
// that overlays them.
package config
