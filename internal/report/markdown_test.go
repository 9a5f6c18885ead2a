package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/reporover/reporover/internal/pipeline"
)

// createTestSummary creates a summary with sample data for testing.
func createTestSummary() *pipeline.Summary {
	return &pipeline.Summary{
		StartedAt:  time.Date(2026, 8, 30, 10, 30, 0, 0, time.UTC),
		Elapsed:    1500 * time.Millisecond,
		Discovered: 4,
		Processed:  2,
		Duplicates: 1,
		NoReadme:   1,
		Results: []pipeline.Result{
			{URL: "https://github.com/acme/alpha", Name: "alpha", Status: pipeline.StatusProcessed},
			{URL: "https://github.com/acme/beta", Name: "beta", Status: pipeline.StatusProcessed},
			{URL: "https://github.com/acme/gamma", Name: "gamma", Status: pipeline.StatusDuplicate},
			{URL: "https://github.com/acme/delta", Status: pipeline.StatusNoReadme},
		},
	}
}

// TestMarkdownWriter tests the markdown crawl report writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes report header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		n, err := w.Write(createTestSummary())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n == 0 {
			t.Error("expected non-zero bytes rendered")
		}

		output := buf.String()
		if !strings.Contains(output, "# RepoRover Crawl Report") {
			t.Error("expected output to contain the report title")
		}
		if !strings.Contains(output, "2026-08-30 10:30:00") {
			t.Error("expected output to contain the start time")
		}
	})

	t.Run("writes outcome summary with counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestSummary()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "## Outcome Summary") {
			t.Error("expected output to contain the outcome summary section")
		}
		if !strings.Contains(output, "Processed") {
			t.Error("expected output to contain the processed outcome")
		}
		if !strings.Contains(output, "mermaid") {
			t.Error("expected output to contain a mermaid pie chart")
		}
	})

	t.Run("writes per-repository table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestSummary()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "https://github.com/acme/alpha") {
			t.Error("expected output to contain the repository URL")
		}
		if !strings.Contains(output, "duplicate") {
			t.Error("expected output to contain the duplicate outcome")
		}
	})

	t.Run("empty run reports no repositories", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		summary := &pipeline.Summary{
			StartedAt: time.Date(2026, 8, 30, 10, 30, 0, 0, time.UTC),
		}
		if _, err := w.Write(summary); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "No repositories were processed in this run.") {
			t.Error("expected output to state that no repositories were processed")
		}
		if strings.Contains(output, "mermaid") {
			t.Error("expected no pie chart for an empty run")
		}
	})
}
