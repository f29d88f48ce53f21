package report

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gaceta-watch/internal/core/domain"
	"github.com/custodia-labs/gaceta-watch/internal/core/ports/driven"
)

func sampleRecords() []domain.Record {
	return []domain.Record{
		{
			URL:       "https://x/getattachment/b/Decreto-2.aspx",
			Name:      "Decreto-2.aspx",
			LocalPath: "downloads/Decreto-2.pdf",
			Summary:   "Segundo decreto.",
			Themes:    []string{"aduanas"},
			Source:    "MinCIT",
			Partition: "2025",
		},
		{
			URL:       "https://x/getattachment/a/Decreto-1.aspx",
			Name:      "Decreto-1.aspx",
			LocalPath: "downloads/Decreto-1.pdf",
			Summary:   "Primer decreto.",
			Themes:    []string{"comercio", "aranceles"},
			Source:    "MinCIT",
			Partition: "2025",
		},
		{
			URL:     "https://x/getattachment/c/Circular-9.aspx",
			Name:    "Circular-9.aspx",
			Summary: "Sin año.",
			Themes:  []string{},
			Source:  "Otra entidad",
		},
	}
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.ReportWriter = (*Writer)(nil)
}

func TestWrite_ProducesBothArtifacts(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(Config{
		MarkdownPath: filepath.Join(dir, "report.md"),
		HTMLPaths:    []string{filepath.Join(dir, "report.html"), filepath.Join(dir, "docs", "index.html")},
	})

	require.NoError(t, w.Write(context.Background(), sampleRecords()))

	for _, path := range []string{"report.md", "report.html", filepath.Join("docs", "index.html")} {
		_, err := os.Stat(filepath.Join(dir, path))
		assert.NoError(t, err, path)
	}

	// Both HTML copies are identical.
	a, err := os.ReadFile(filepath.Join(dir, "report.html"))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(dir, "docs", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestWrite_Deterministic(t *testing.T) {
	dir := t.TempDir()
	mdPath := filepath.Join(dir, "report.md")
	htmlPath := filepath.Join(dir, "report.html")
	w := NewWriter(Config{MarkdownPath: mdPath, HTMLPaths: []string{htmlPath}})
	ctx := context.Background()

	require.NoError(t, w.Write(ctx, sampleRecords()))
	md1, _ := os.ReadFile(mdPath)
	html1, _ := os.ReadFile(htmlPath)

	// Second render of the same records, different input order.
	records := sampleRecords()
	records[0], records[2] = records[2], records[0]
	require.NoError(t, w.Write(ctx, records))
	md2, _ := os.ReadFile(mdPath)
	html2, _ := os.ReadFile(htmlPath)

	assert.Equal(t, md1, md2)
	assert.Equal(t, html1, html2)
}

func TestRenderMarkdown_SortedSections(t *testing.T) {
	records := sampleRecords()
	domain.SortRecords(records)
	md := renderMarkdown("Decretos", records)

	first := strings.Index(md, "## Decreto-1.aspx")
	second := strings.Index(md, "## Decreto-2.aspx")
	third := strings.Index(md, "## Circular-9.aspx")

	require.Positive(t, first)
	assert.Less(t, first, second)
	assert.Less(t, second, third, "record without partition comes last")

	assert.Contains(t, md, "_Total de documentos: 3_")
	assert.Contains(t, md, "- Temas: comercio, aranceles")
	assert.Contains(t, md, "- Archivo local: `downloads/Decreto-1.pdf`")
}

func TestRenderHTML_FilterAttributes(t *testing.T) {
	records := sampleRecords()
	domain.SortRecords(records)
	out, err := renderHTML("Decretos", records)
	require.NoError(t, err)
	html := string(out)

	// Free-text haystack contains title, summary, themes and partition.
	assert.Contains(t, html, `data-search="decreto-1.aspx primer decreto. 2025 comercio aranceles"`)
	// Exact source filter attribute and dropdown options.
	assert.Contains(t, html, `data-source="MinCIT"`)
	assert.Contains(t, html, `<option value="MinCIT">MinCIT</option>`)
	assert.Contains(t, html, `<option value="Otra entidad">Otra entidad</option>`)
	assert.Contains(t, html, "No se encontraron documentos")
	assert.Contains(t, html, "Total de documentos: <strong>3</strong>")
}

func TestRenderHTML_EscapesContent(t *testing.T) {
	records := []domain.Record{{
		URL:     "https://x/a.aspx",
		Name:    `<script>alert("x")</script>`,
		Summary: "s",
		Themes:  []string{},
		Source:  "S",
	}}
	out, err := renderHTML("t", records)
	require.NoError(t, err)
	assert.NotContains(t, string(out), `<script>alert`)
}

func TestNewWriter_DefaultTitle(t *testing.T) {
	w := NewWriter(Config{})
	assert.Equal(t, DefaultTitle, w.cfg.Title)
}
