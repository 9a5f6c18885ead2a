// Package store persists repository records in the append-only CSV dataset.
//
// The file format is fixed: a header row
// (Processed At, Repository Name, Homepage URL, Processed Readme.MD Content)
// followed by one row per processed repository. Rows accumulate across
// runs; the file is created if missing and never truncated.
package store
