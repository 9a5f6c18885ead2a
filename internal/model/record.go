package model

import "time"

// ProcessedAtLayout is the timestamp layout used in the Processed At column.
// It matches the layout used by earlier datasets so that files produced by
// older runs remain comparable.
const ProcessedAtLayout = "2006-01-02 15:04:05"

// Record is one processed repository as persisted in the output CSV.
// A record is created once per successfully processed, non-duplicate
// repository and is never mutated or deleted after being written.
//
// The csv struct tags bind each field to its column header. Column order
// and header wording are part of the file format and must not change.
type Record struct {
	// ProcessedAt is the local time the repository was processed,
	// formatted with ProcessedAtLayout.
	ProcessedAt string `csv:"Processed At"`

	// Name is the repository display name. It is the unique key of the
	// dataset: duplicate detection compares against this field.
	Name string `csv:"Repository Name"`

	// HomepageURL is the repository page the README was discovered from.
	HomepageURL string `csv:"Homepage URL"`

	// Readme is the normalized README text (lowercased, markup stripped,
	// tokenized, stopwords removed, tokens reduced, space-joined).
	Readme string `csv:"Processed Readme.MD Content"`
}

// NewRecord builds a Record for a repository processed at the given time.
func NewRecord(processedAt time.Time, name, homepageURL, readme string) Record {
	return Record{
		ProcessedAt: processedAt.Format(ProcessedAtLayout),
		Name:        name,
		HomepageURL: homepageURL,
		Readme:      readme,
	}
}

// Records is the ordered sequence of records loaded from the output file
// at startup. It is shared read-only across workers during a run.
type Records []Record

// ContainsName reports whether a record with the given repository name
// already exists. It is a linear scan returning on first match; the
// dataset is small enough that an index structure is not warranted.
func (rs Records) ContainsName(name string) bool {
	for _, r := range rs {
		if r.Name == name {
			return true
		}
	}
	return false
}

// Names returns the repository names in record order.
func (rs Records) Names() []string {
	names := make([]string, 0, len(rs))
	for _, r := range rs {
		names = append(names, r.Name)
	}
	return names
}
