package crawler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// quietLogger returns a logger that discards output so tests stay silent.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestListingExtractorRepositoryURLs tests repository link extraction.
func TestListingExtractorRepositoryURLs(t *testing.T) {
	t.Parallel()

	t.Run("extracts absolute URLs on the configured origin", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `<html><body>
				<h1 class="h3 lh-condensed"><a href="/acme/alpha">alpha</a></h1>
				<h1 class="h3 lh-condensed"><a href="/acme/beta">beta</a></h1>
				<h1 class="other"><a href="/acme/ignored">ignored</a></h1>
				<a href="/acme/bare">bare link outside heading</a>
			</body></html>`)
		}))
		defer srv.Close()

		e := NewListingExtractor("https://example.com", WithListingLogger(quietLogger()))
		urls := e.RepositoryURLs(context.Background(), srv.URL)

		if len(urls) != 2 {
			t.Fatalf("expected 2 URLs, got %d: %v", len(urls), urls)
		}
		if urls[0] != "https://example.com/acme/alpha" {
			t.Errorf("unexpected first URL %q", urls[0])
		}
		if urls[1] != "https://example.com/acme/beta" {
			t.Errorf("unexpected second URL %q", urls[1])
		}
		for _, u := range urls {
			if !strings.HasPrefix(u, "https://example.com/") {
				t.Errorf("expected URL on configured origin, got %q", u)
			}
		}
	})

	t.Run("ignores absolute hrefs to other origins", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `<html><body>
				<h1 class="h3 lh-condensed"><a href="https://elsewhere.test/x">x</a></h1>
				<h1 class="h3 lh-condensed"><a href="/acme/kept">kept</a></h1>
			</body></html>`)
		}))
		defer srv.Close()

		e := NewListingExtractor("https://example.com", WithListingLogger(quietLogger()))
		urls := e.RepositoryURLs(context.Background(), srv.URL)

		if len(urls) != 1 {
			t.Fatalf("expected 1 URL, got %d: %v", len(urls), urls)
		}
		if urls[0] != "https://example.com/acme/kept" {
			t.Errorf("unexpected URL %q", urls[0])
		}
	})

	t.Run("empty on non-200 status", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		e := NewListingExtractor("https://example.com", WithListingLogger(quietLogger()))
		if urls := e.RepositoryURLs(context.Background(), srv.URL); len(urls) != 0 {
			t.Errorf("expected no URLs, got %v", urls)
		}
	})

	t.Run("empty on transport error", func(t *testing.T) {
		t.Parallel()

		// A server that is already closed refuses connections.
		srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
		srv.Close()

		e := NewListingExtractor("https://example.com", WithListingLogger(quietLogger()))
		if urls := e.RepositoryURLs(context.Background(), srv.URL); len(urls) != 0 {
			t.Errorf("expected no URLs, got %v", urls)
		}
	})

	t.Run("empty on page without repository headings", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `<html><body><p>nothing here</p></body></html>`)
		}))
		defer srv.Close()

		e := NewListingExtractor("https://example.com", WithListingLogger(quietLogger()))
		if urls := e.RepositoryURLs(context.Background(), srv.URL); len(urls) != 0 {
			t.Errorf("expected no URLs, got %v", urls)
		}
	})

	t.Run("sends configured user agent", func(t *testing.T) {
		t.Parallel()

		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			_, _ = io.WriteString(w, `<html></html>`)
		}))
		defer srv.Close()

		e := NewListingExtractor("https://example.com",
			WithListingLogger(quietLogger()),
			WithListingUserAgent("test-agent/1.0"),
		)
		e.RepositoryURLs(context.Background(), srv.URL)

		if gotUA != "test-agent/1.0" {
			t.Errorf("expected user agent 'test-agent/1.0', got %q", gotUA)
		}
	})
}
