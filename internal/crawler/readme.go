package crawler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/reporover/reporover/internal/config"
)

// readmePermalinkSelector matches the stable anchor a repository page
// places on its README rendering.
const readmePermalinkSelector = `a#readme-permalink`

// ErrReadmeNotFound marks a repository whose README could not be
// retrieved. It covers the expected case (the repository simply has no
// README) as well as exhausted retries and transport failures: the
// caller skips the repository either way, so the distinction lives only
// in the logs.
var ErrReadmeNotFound = errors.New("readme not found")

// ReadmeFetcher locates and downloads a repository's README document.
//
// The initial repository page fetch is retried on non-200 status up to
// a fixed budget with a fixed pause between attempts. Transport errors
// are not retried; a host that refuses connections once will not start
// accepting them within the budget window, and the batch should move on.
type ReadmeFetcher struct {
	// client performs the HTTP requests.
	client *http.Client

	// baseURL is the fixed origin the README permalink is resolved against.
	baseURL string

	// retryBudget is the number of attempts for the repository page fetch.
	retryBudget int

	// retryDelay is the fixed pause between attempts.
	retryDelay time.Duration

	// userAgent is the User-Agent header to send.
	userAgent string

	// maxBodySize limits the size of response bodies to read.
	maxBodySize int64

	// logger for structured logging.
	logger *slog.Logger
}

// FetcherOption configures a ReadmeFetcher.
type FetcherOption func(*ReadmeFetcher)

// WithFetcherClient sets the HTTP client used for fetches.
func WithFetcherClient(client *http.Client) FetcherOption {
	return func(f *ReadmeFetcher) {
		f.client = client
	}
}

// WithRetryBudget sets the number of attempts for the repository page fetch.
func WithRetryBudget(budget int) FetcherOption {
	return func(f *ReadmeFetcher) {
		if budget > 0 {
			f.retryBudget = budget
		}
	}
}

// WithRetryDelay sets the pause between retry attempts.
func WithRetryDelay(delay time.Duration) FetcherOption {
	return func(f *ReadmeFetcher) {
		f.retryDelay = delay
	}
}

// WithFetcherUserAgent sets a custom User-Agent header.
func WithFetcherUserAgent(ua string) FetcherOption {
	return func(f *ReadmeFetcher) {
		f.userAgent = ua
	}
}

// WithFetcherMaxBodySize sets the maximum response body size.
func WithFetcherMaxBodySize(size int64) FetcherOption {
	return func(f *ReadmeFetcher) {
		f.maxBodySize = size
	}
}

// WithFetcherLogger sets a custom logger for the fetcher.
func WithFetcherLogger(logger *slog.Logger) FetcherOption {
	return func(f *ReadmeFetcher) {
		f.logger = logger
	}
}

// NewReadmeFetcher creates a ReadmeFetcher resolving README permalinks
// against the given base origin.
func NewReadmeFetcher(baseURL string, opts ...FetcherOption) *ReadmeFetcher {
	f := &ReadmeFetcher{
		client:      &http.Client{Timeout: config.DefaultTimeout},
		baseURL:     strings.TrimRight(baseURL, "/"),
		retryBudget: config.DefaultRetryBudget,
		retryDelay:  config.DefaultRetryDelay,
		userAgent:   config.DefaultUserAgent,
		maxBodySize: config.DefaultMaxBodySize,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch downloads the README document for the given repository URL.
//
// It GETs the repository page (with bounded retries on non-200), looks
// for the README permalink anchor, and GETs the permalink target once.
// The returned error is always ErrReadmeNotFound when the README is
// unavailable for any reason; no other error escapes.
func (f *ReadmeFetcher) Fetch(ctx context.Context, repoURL string) (string, error) {
	page, ok := f.fetchRepoPage(ctx, repoURL)
	if !ok {
		return "", ErrReadmeNotFound
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		f.logger.Error("failed to parse repository page", "url", repoURL, "error", err)
		return "", ErrReadmeNotFound
	}

	href, ok := doc.Find(readmePermalinkSelector).First().Attr("href")
	if !ok {
		// Expected outcome: the repository simply has no README.
		f.logger.Info("no README found", "url", repoURL)
		return "", ErrReadmeNotFound
	}

	content, ok := f.fetchPermalink(ctx, repoURL, f.resolvePermalink(href))
	if !ok {
		return "", ErrReadmeNotFound
	}

	return content, nil
}

// fetchRepoPage GETs the repository page with the bounded retry loop.
// The budget counts attempts: a page whose first k responses are non-200
// is fetched successfully iff k is strictly below the budget.
func (f *ReadmeFetcher) fetchRepoPage(ctx context.Context, repoURL string) (string, bool) {
	for attempt := 1; attempt <= f.retryBudget; attempt++ {
		body, status, err := f.get(ctx, repoURL)
		if err != nil {
			f.logger.Error("request error fetching repository page",
				"url", repoURL,
				"error", err,
			)
			return "", false
		}

		if status == http.StatusOK {
			return body, true
		}

		if attempt == f.retryBudget {
			break
		}

		f.logger.Debug("repository page returned non-200, retrying",
			"url", repoURL,
			"status", status,
			"attempt", attempt,
		)

		// The pause suspends only this task; wake early on cancellation.
		select {
		case <-ctx.Done():
			f.logger.Warn("fetch cancelled", "url", repoURL, "reason", ctx.Err())
			return "", false
		case <-time.After(f.retryDelay):
		}
	}

	f.logger.Warn("error accessing repository",
		"url", repoURL,
		"attempts", f.retryBudget,
	)
	return "", false
}

// fetchPermalink GETs the README permalink target. No retries: the
// permalink came from a page fetched moments ago, so a failure here is
// not transient unavailability worth waiting on.
func (f *ReadmeFetcher) fetchPermalink(ctx context.Context, repoURL, readmeURL string) (string, bool) {
	body, status, err := f.get(ctx, readmeURL)
	if err != nil {
		f.logger.Error("request error fetching README",
			"url", readmeURL,
			"error", err,
		)
		return "", false
	}

	if status != http.StatusOK {
		f.logger.Warn("error retrieving README",
			"repository", repoURL,
			"url", readmeURL,
			"status", status,
		)
		return "", false
	}

	return body, true
}

// resolvePermalink turns the permalink href into an absolute URL.
// Repository pages emit relative permalinks; absolute ones pass through.
func (f *ReadmeFetcher) resolvePermalink(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return f.baseURL + href
}

// get performs one GET and returns the body and status code.
func (f *ReadmeFetcher) get(ctx context.Context, url string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close() //nolint:errcheck // Read-only body

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return "", 0, err
	}

	return string(body), resp.StatusCode, nil
}
