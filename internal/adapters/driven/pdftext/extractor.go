// Package pdftext implements the driven.TextExtractor port by shelling
// out to pdftotext (poppler). Keeping extraction behind a small command
// runner seam makes the adapter testable without a PDF toolchain.
package pdftext

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/custodia-labs/gaceta-watch/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// CommandRunner executes an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Extractor extracts text from PDF files via pdftotext.
type Extractor struct {
	runner CommandRunner
}

// New creates an extractor using the system pdftotext binary.
func New() *Extractor {
	return &Extractor{runner: execRunner{}}
}

// NewWithRunner creates an extractor with a custom command runner.
// Used in tests.
func NewWithRunner(r CommandRunner) *Extractor {
	return &Extractor{runner: r}
}

// Extract returns the PDF's text, all pages concatenated. An empty
// string with a nil error means the PDF has no text layer.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}

	out, err := e.runner.Run(ctx, "pdftotext", "-layout", "-enc", "UTF-8", path, "-")
	if err != nil {
		if execErr, ok := err.(*exec.Error); ok && execErr.Err == exec.ErrNotFound {
			return "", fmt.Errorf("pdftotext not found: %w\n%s", err, InstallInstructions())
		}
		return "", fmt.Errorf("pdftotext %s: %w", path, err)
	}

	return strings.TrimSpace(string(out)), nil
}

// InstallInstructions returns help text for installing pdftotext.
func InstallInstructions() string {
	return `pdftotext is required for PDF text extraction.
  macOS:  brew install poppler
  Debian: apt install poppler-utils`
}
