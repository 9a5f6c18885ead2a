// Package report renders crawl summaries for humans.
//
// The only supported format is Markdown, written with the
// github.com/nao1215/markdown builder so the output renders cleanly on
// GitHub, including a mermaid pie chart of per-repository outcomes.
package report
