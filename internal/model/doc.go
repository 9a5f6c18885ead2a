// Package model defines the core data structures used throughout RepoRover.
//
// This package contains the following main types:
//   - Record: One processed repository row in the output CSV
//   - Records: The loaded prior-record sequence with duplicate lookup
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (store, pipeline, report) need to use these
// types, so centralizing them prevents import cycles.
package model
