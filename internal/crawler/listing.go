package crawler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/reporover/reporover/internal/config"
)

// repoHeadingSelector matches the listing page headings that wrap each
// repository link. The class pair identifies repository entries on the
// explore page markup.
const repoHeadingSelector = `h1.h3.lh-condensed a[href]`

// ListingExtractor discovers repository URLs on a listing page.
// It performs a single GET and extracts anchors from repository headings.
//
// The extractor fails soft: any transport error or non-200 status is
// logged and yields an empty list, never an error to the caller. A run
// against an unreachable listing page terminates cleanly with no work.
type ListingExtractor struct {
	// client performs the HTTP request.
	client *http.Client

	// baseURL is the fixed origin prefixed to relative repository paths.
	baseURL string

	// userAgent is the User-Agent header to send.
	userAgent string

	// maxBodySize limits the size of the listing page body to read.
	maxBodySize int64

	// logger for structured logging.
	logger *slog.Logger
}

// ListingOption configures a ListingExtractor.
type ListingOption func(*ListingExtractor)

// WithListingClient sets the HTTP client used for the listing fetch.
func WithListingClient(client *http.Client) ListingOption {
	return func(e *ListingExtractor) {
		e.client = client
	}
}

// WithListingUserAgent sets a custom User-Agent header.
func WithListingUserAgent(ua string) ListingOption {
	return func(e *ListingExtractor) {
		e.userAgent = ua
	}
}

// WithListingMaxBodySize sets the maximum response body size.
func WithListingMaxBodySize(size int64) ListingOption {
	return func(e *ListingExtractor) {
		e.maxBodySize = size
	}
}

// WithListingLogger sets a custom logger for the extractor.
func WithListingLogger(logger *slog.Logger) ListingOption {
	return func(e *ListingExtractor) {
		e.logger = logger
	}
}

// NewListingExtractor creates a ListingExtractor resolving repository
// links against the given base origin.
func NewListingExtractor(baseURL string, opts ...ListingOption) *ListingExtractor {
	e := &ListingExtractor{
		client:      &http.Client{Timeout: config.DefaultTimeout},
		baseURL:     strings.TrimRight(baseURL, "/"),
		userAgent:   config.DefaultUserAgent,
		maxBodySize: config.DefaultMaxBodySize,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// RepositoryURLs fetches the listing page and returns the absolute URLs
// of the repositories it links to, in document order. The result may be
// empty; it is never nil on the success path.
//
// Every returned URL shares the configured base origin: only relative
// paths inside repository headings are accepted, and each is prefixed
// with the base origin. Anchors pointing at other origins are ignored.
func (e *ListingExtractor) RepositoryURLs(ctx context.Context, listingURL string) []string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listingURL, nil)
	if err != nil {
		e.logger.Error("invalid listing URL", "url", listingURL, "error", err)
		return nil
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		e.logger.Error("failed to fetch listing page", "url", listingURL, "error", err)
		return nil
	}
	defer resp.Body.Close() //nolint:errcheck // Read-only body

	if resp.StatusCode != http.StatusOK {
		e.logger.Warn("listing page returned non-200 status",
			"url", listingURL,
			"status", resp.StatusCode,
		)
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, e.maxBodySize))
	if err != nil {
		e.logger.Error("failed to parse listing page", "url", listingURL, "error", err)
		return nil
	}

	urls := make([]string, 0)
	doc.Find(repoHeadingSelector).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		// Only relative paths are repository links; absolute hrefs point
		// off-origin and are not candidates.
		if !strings.HasPrefix(href, "/") {
			return
		}
		urls = append(urls, e.baseURL+href)
	})

	e.logger.Debug("extracted repository URLs",
		"listing", listingURL,
		"count", len(urls),
	)

	return urls
}
