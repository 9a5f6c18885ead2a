package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/reporover/reporover/internal/pipeline"
)

// MarkdownWriter outputs crawl summaries in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

// Write outputs the full crawl summary in Markdown format.
// Returns the number of bytes rendered and any error encountered.
func (w *MarkdownWriter) Write(summary *pipeline.Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeOutcomes(md, summary)
	w.writeRepositories(md, summary)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, summary *pipeline.Summary) {
	md.H1("RepoRover Crawl Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Started At", summary.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Elapsed", summary.Elapsed.Round(time.Millisecond).String()},
			{"Repositories Discovered", strconv.Itoa(summary.Discovered)},
		},
	})
	md.PlainText("")
}

// writeOutcomes writes the per-outcome summary section.
func (w *MarkdownWriter) writeOutcomes(md *markdown.Markdown, summary *pipeline.Summary) {
	md.H2("Outcome Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Outcome", "Count"},
		Rows: [][]string{
			{"✅ Processed", strconv.Itoa(summary.Processed)},
			{"♻️ Duplicate", strconv.Itoa(summary.Duplicates)},
			{"📭 No README", strconv.Itoa(summary.NoReadme)},
			{"❌ Failed", strconv.Itoa(summary.Failed)},
			{"**Total**", "**" + strconv.Itoa(summary.Discovered) + "**"},
		},
	})
	md.PlainText("")

	if summary.Discovered > 0 {
		w.writePieChart(md, summary)
	}
	w.writeAlert(md, summary)
}

// writePieChart writes a mermaid pie chart of outcome distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary *pipeline.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Repository Outcome Distribution"),
		piechart.WithShowData(true),
	)

	if summary.Processed > 0 {
		chart.LabelAndIntValue("Processed", uint64(summary.Processed))
	}
	if summary.Duplicates > 0 {
		chart.LabelAndIntValue("Duplicate", uint64(summary.Duplicates))
	}
	if summary.NoReadme > 0 {
		chart.LabelAndIntValue("No README", uint64(summary.NoReadme))
	}
	if summary.Failed > 0 {
		chart.LabelAndIntValue("Failed", uint64(summary.Failed))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on the run outcome.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summary *pipeline.Summary) {
	switch {
	case summary.Failed > 0:
		md.Warningf(
			"%d repository(ies) failed during processing. Check the log for details.",
			summary.Failed,
		)
	case summary.Discovered == 0:
		md.Note("No repositories were discovered on the listing page.")
	case summary.Processed == 0:
		md.Note("No new repositories were added; the dataset is already up to date.")
	default:
		md.Tipf("%d new repository(ies) added to the dataset.", summary.Processed)
	}
	md.PlainText("")
}

// writeRepositories writes the per-repository result table.
func (w *MarkdownWriter) writeRepositories(md *markdown.Markdown, summary *pipeline.Summary) {
	md.H2("Repositories")
	md.PlainText("")

	if len(summary.Results) == 0 {
		md.PlainText("No repositories were processed in this run.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(summary.Results))
	for _, r := range summary.Results {
		name := r.Name
		if name == "" {
			name = "-"
		}
		rows = append(rows, []string{name, r.URL, r.Status.String()})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Repository", "URL", "Outcome"},
		Rows:   rows,
	})
	md.PlainText("")
}
