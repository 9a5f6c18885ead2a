package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/reporover/reporover/internal/crawler"
	"github.com/reporover/reporover/internal/model"
	"github.com/reporover/reporover/internal/store"
	"github.com/reporover/reporover/internal/textproc"
)

// Runner fans repository URLs out across a bounded worker pool and runs
// the per-repository pipeline (fetch README, extract name, duplicate
// check, normalize, append) on each.
//
// Workers share the prior-record snapshot read-only; it is taken once at
// startup and deliberately not updated as new rows are written. Two
// workers racing on URLs that resolve to the same display name can both
// pass the duplicate check and both append a row. That race is accepted:
// duplicate suppression is a cross-run guarantee, not an intra-run one.
type Runner struct {
	// fetcher downloads README documents.
	fetcher *crawler.ReadmeFetcher

	// normalizer produces the stored text form.
	normalizer *textproc.Normalizer

	// store appends processed records.
	store *store.Store

	// concurrency is the worker pool size.
	concurrency int

	// logger for structured logging.
	logger *slog.Logger

	// now supplies record timestamps. Injectable for tests.
	now func() time.Time

	// results collects per-repository outcomes.
	// Access is synchronized via mu.
	results []Result
	mu      sync.Mutex
}

// Option configures a Runner.
type Option func(*Runner)

// WithConcurrency sets the worker pool size. Default is 4.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithLogger sets a custom logger for the runner.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithNow sets the clock used for record timestamps.
func WithNow(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRunner creates a Runner over the given collaborators.
func NewRunner(fetcher *crawler.ReadmeFetcher, normalizer *textproc.Normalizer, st *store.Store, opts ...Option) *Runner {
	r := &Runner{
		fetcher:     fetcher,
		normalizer:  normalizer,
		store:       st,
		concurrency: 4,
		now:         time.Now,
		results:     make([]Result, 0),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}

	return r
}

// Run processes all URLs and returns the run summary.
//
// Worker faults are isolated: a panic or error in one repository's
// pipeline is recorded as a failed result and never aborts siblings or
// the run. The returned error is non-nil only when the context was
// cancelled before all URLs were processed.
func (r *Runner) Run(ctx context.Context, urls []string, prior model.Records) (*Summary, error) {
	startedAt := r.now()

	r.logger.Info("starting crawl batch",
		"repositories", len(urls),
		"concurrency", r.concurrency,
		"priorRecords", len(prior),
		"mode", r.normalizer.Mode().String(),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, url := range urls {
		i, url := i, url
		g.Go(func() error {
			// Check for cancellation before starting
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			r.logger.Debug("processing repository",
				"url", url,
				"index", i+1,
				"total", len(urls),
			)

			result := r.processRepository(ctx, url, prior)

			r.mu.Lock()
			r.results = append(r.results, result)
			r.mu.Unlock()

			// Per-task faults stay in the result; returning an error here
			// would cancel the sibling workers.
			return nil
		})
	}

	err := g.Wait()

	summary := newSummary(startedAt, r.now().Sub(startedAt), urls, r.results)

	r.logger.Info("crawl batch complete",
		"discovered", summary.Discovered,
		"processed", summary.Processed,
		"duplicates", summary.Duplicates,
		"noReadme", summary.NoReadme,
		"failed", summary.Failed,
		"elapsed", summary.Elapsed,
	)

	return summary, err
}

// processRepository runs the per-repository pipeline for one URL.
// A panic anywhere in the pipeline is converted into a failed result so
// one bad page cannot abort the batch.
func (r *Runner) processRepository(ctx context.Context, url string, prior model.Records) (result Result) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("recovered from panic while processing repository",
				"url", url,
				"panic", rec,
			)
			result = Result{URL: url, Status: StatusFailed}
		}
	}()

	content, err := r.fetcher.Fetch(ctx, url)
	if err != nil {
		if errors.Is(err, crawler.ErrReadmeNotFound) {
			// Already logged by the fetcher; skip silently.
			return Result{URL: url, Status: StatusNoReadme}
		}
		r.logger.Error("failed to fetch README", "url", url, "error", err)
		return Result{URL: url, Status: StatusFailed}
	}

	name, err := crawler.ExtractRepositoryName(content)
	if err != nil {
		r.logger.Error("failed to extract repository name", "url", url, "error", err)
		return Result{URL: url, Status: StatusFailed}
	}

	if prior.ContainsName(name) {
		r.logger.Info("skipping duplicate repository", "name", name, "url", url)
		return Result{URL: url, Name: name, Status: StatusDuplicate}
	}

	record := model.NewRecord(r.now(), name, url, r.normalizer.Normalize(content))

	if err := r.store.Append(record); err != nil {
		r.logger.Error("failed to write record", "name", name, "error", err)
		return Result{URL: url, Name: name, Status: StatusFailed}
	}

	r.logger.Info("processed repository", "name", name, "url", url)
	return Result{URL: url, Name: name, Status: StatusProcessed}
}
