package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/reporover/reporover/internal/model"
)

// Store persists repository records in an append-only CSV file.
//
// The file is created once with a header row and only ever appended to;
// a normal run never truncates or rewrites existing rows. Each append
// opens the file, writes exactly one row, and closes it again, relying
// on the file system's append semantics for ordering between concurrent
// writers. No locking is performed.
//
// Design decision: We keep CSV rather than a database because the
// dataset is a flat, append-only log consumed by external tooling, and
// rows must stay directly greppable and diffable across runs.
type Store struct {
	// path is the CSV file location.
	path string
}

// New creates a Store for the CSV file at path.
// The file is not touched until Ensure or Append is called.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the CSV file location.
func (s *Store) Path() string {
	return s.path
}

// Ensure creates the CSV file with its header row if it does not exist.
// An existing file is left untouched regardless of its content.
func (s *Store) Ensure() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check output file: %w", err)
	}

	// Create parent directories so a configured path like
	// data/readmeMD.csv works out of the box.
	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600) //nolint:gosec // Configured output path is intentional
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	// Marshaling an empty record slice emits only the header row.
	if err := gocsv.MarshalFile(&model.Records{}, f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write header row: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	return nil
}

// Load reads all existing rows into memory as the prior-record sequence.
// A file holding only the header row yields an empty, non-nil sequence.
func (s *Store) Load() (model.Records, error) {
	f, err := os.Open(s.path) //nolint:gosec // Configured output path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open output file: %w", err)
	}
	defer f.Close() //nolint:errcheck // Read-only handle

	records := model.Records{}
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		// A completely empty file carries no rows and no header; treat it
		// like a fresh dataset rather than failing the run.
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return model.Records{}, nil
		}
		return nil, fmt.Errorf("failed to read existing records: %w", err)
	}

	return records, nil
}

// Append writes one record to the end of the file.
// The header is assumed to exist already; Ensure ran before any worker.
func (s *Store) Append(rec model.Record) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0600) //nolint:gosec // Configured output path is intentional
	if err != nil {
		return fmt.Errorf("failed to open output file for append: %w", err)
	}

	if err := gocsv.MarshalWithoutHeaders(&model.Records{rec}, f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to append record: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	return nil
}
