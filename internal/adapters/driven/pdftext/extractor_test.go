package pdftext

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gaceta-watch/internal/core/ports/driven"
)

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output []byte
	err    error
}

func (m *mockRunner) Run(_ context.Context, _ string, _ ...string) ([]byte, error) {
	return m.output, m.err
}

func writeStubPDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 stub"), 0600))
	return path
}

func TestNew(t *testing.T) {
	e := New()
	require.NotNil(t, e)
	assert.IsType(t, &Extractor{}, e)
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.TextExtractor = (*Extractor)(nil)
}

func TestExtract_Success(t *testing.T) {
	path := writeStubPDF(t)
	e := NewWithRunner(&mockRunner{output: []byte("  Decreto 0001 de 2025\ntexto del decreto\n")})

	text, err := e.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Decreto 0001 de 2025\ntexto del decreto", text)
}

func TestExtract_EmptyTextLayer(t *testing.T) {
	path := writeStubPDF(t)
	e := NewWithRunner(&mockRunner{output: []byte("\n\n")})

	text, err := e.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, text, "scanned PDFs yield empty text, not an error")
}

func TestExtract_RunnerError(t *testing.T) {
	path := writeStubPDF(t)
	e := NewWithRunner(&mockRunner{err: errors.New("exit status 1")})

	_, err := e.Extract(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftotext")
}

func TestExtract_MissingFile(t *testing.T) {
	e := NewWithRunner(&mockRunner{output: []byte("never reached")})

	_, err := e.Extract(context.Background(), filepath.Join(t.TempDir(), "absent.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stat")
}

func TestInstallInstructions(t *testing.T) {
	instructions := InstallInstructions()
	assert.Contains(t, instructions, "pdftotext")
	assert.Contains(t, instructions, "brew install poppler")
	assert.Contains(t, instructions, "apt install poppler-utils")
}
