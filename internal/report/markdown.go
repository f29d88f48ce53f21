package report

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/gaceta-watch/internal/core/domain"
)

// renderMarkdown builds the narrative view: one section per record in
// sorted order.
func renderMarkdown(title string, records []domain.Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "_Total de documentos: %d_\n\n", len(records))
	b.WriteString("---\n\n")

	for _, rec := range records {
		fmt.Fprintf(&b, "## %s\n\n", rec.Name)
		if rec.Partition != "" {
			fmt.Fprintf(&b, "- Año: %s\n", rec.Partition)
		}
		fmt.Fprintf(&b, "- Fuente: %s\n", rec.Source)
		fmt.Fprintf(&b, "- URL original: %s\n", rec.URL)
		if rec.LocalPath != "" {
			fmt.Fprintf(&b, "- Archivo local: `%s`\n", rec.LocalPath)
		}
		if len(rec.Themes) > 0 {
			fmt.Fprintf(&b, "- Temas: %s\n", strings.Join(rec.Themes, ", "))
		}
		b.WriteString("\n**Resumen:**\n\n")
		b.WriteString(strings.TrimSpace(rec.Summary))
		b.WriteString("\n\n---\n\n")
	}

	return b.String()
}
