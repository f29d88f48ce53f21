// Package report renders human-readable projections of the corpus: a
// narrative Markdown document and a filterable HTML browsing view.
//
// Rendering is a pure function of the records. The same corpus content
// always produces byte-identical artifacts, so reports can be
// regenerated at any time without churn.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/gaceta-watch/internal/core/domain"
	"github.com/custodia-labs/gaceta-watch/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.ReportWriter = (*Writer)(nil)

// DefaultTitle heads both artifacts unless overridden.
const DefaultTitle = "Decretos publicados"

// Config holds output locations for the rendered artifacts.
type Config struct {
	// Title heads both views (default: DefaultTitle).
	Title string

	// MarkdownPath is where the narrative view is written.
	MarkdownPath string

	// HTMLPaths are where the browsing view is written. The same
	// rendered content goes to every path (e.g. a working copy plus a
	// published docs/ copy).
	HTMLPaths []string
}

// Writer renders both report artifacts from the full corpus.
type Writer struct {
	cfg Config
}

// NewWriter creates a report writer.
func NewWriter(cfg Config) *Writer {
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}
	return &Writer{cfg: cfg}
}

// Write renders the Markdown and HTML views of records. Records are
// sorted by (partition, name) regardless of input order.
func (w *Writer) Write(_ context.Context, records []domain.Record) error {
	sorted := make([]domain.Record, len(records))
	copy(sorted, records)
	domain.SortRecords(sorted)

	if w.cfg.MarkdownPath != "" {
		md := renderMarkdown(w.cfg.Title, sorted)
		if err := writeArtifact(w.cfg.MarkdownPath, []byte(md)); err != nil {
			return fmt.Errorf("markdown report: %w", err)
		}
	}

	if len(w.cfg.HTMLPaths) > 0 {
		html, err := renderHTML(w.cfg.Title, sorted)
		if err != nil {
			return fmt.Errorf("html report: %w", err)
		}
		for _, path := range w.cfg.HTMLPaths {
			if err := writeArtifact(path, html); err != nil {
				return fmt.Errorf("html report: %w", err)
			}
		}
	}
	return nil
}

func writeArtifact(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
