// Package main provides the entry point for the RepoRover CLI.
//
// RepoRover is a one-shot batch crawler. It fetches a listing page,
// discovers repository URLs, downloads each repository's README,
// normalizes the text, and appends new repositories to an append-only
// CSV dataset.
//
// Usage:
//
//	reporover crawl
//	reporover crawl --output data/readmeMD.csv --workers 8
//
// See --help for all available options.
package main

// main is the entry point for RepoRover.
func main() {
	Execute()
}
