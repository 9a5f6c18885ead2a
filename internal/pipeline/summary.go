package pipeline

import "time"

// Status is the outcome of one repository's pipeline.
type Status int

const (
	// StatusProcessed means a new record was appended.
	StatusProcessed Status = iota

	// StatusDuplicate means the repository name was already recorded.
	StatusDuplicate

	// StatusNoReadme means the repository has no retrievable README.
	StatusNoReadme

	// StatusFailed means the pipeline faulted on this repository.
	StatusFailed
)

// String returns the status name for logs and reports.
func (s Status) String() string {
	switch s {
	case StatusProcessed:
		return "processed"
	case StatusDuplicate:
		return "duplicate"
	case StatusNoReadme:
		return "no readme"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of processing one repository URL.
type Result struct {
	// URL is the repository page that was processed.
	URL string

	// Name is the extracted display name. Empty when the pipeline did
	// not get far enough to extract one.
	Name string

	// Status is the outcome.
	Status Status
}

// Summary describes a completed crawl run.
type Summary struct {
	// StartedAt is when the batch began.
	StartedAt time.Time

	// Elapsed is the total batch duration.
	Elapsed time.Duration

	// Discovered is the number of repository URLs taken from the listing.
	Discovered int

	// Processed counts newly appended records.
	Processed int

	// Duplicates counts repositories skipped as already recorded.
	Duplicates int

	// NoReadme counts repositories without a retrievable README.
	NoReadme int

	// Failed counts repositories whose pipeline faulted.
	Failed int

	// Results holds the per-repository outcomes in completion order.
	// Completion order is nondeterministic across workers.
	Results []Result
}

// newSummary tallies results into a Summary.
func newSummary(startedAt time.Time, elapsed time.Duration, urls []string, results []Result) *Summary {
	s := &Summary{
		StartedAt:  startedAt,
		Elapsed:    elapsed,
		Discovered: len(urls),
		Results:    results,
	}

	for _, res := range results {
		switch res.Status {
		case StatusProcessed:
			s.Processed++
		case StatusDuplicate:
			s.Duplicates++
		case StatusNoReadme:
			s.NoReadme++
		case StatusFailed:
			s.Failed++
		}
	}

	return s
}
