package report

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"strings"

	"github.com/custodia-labs/gaceta-watch/internal/core/domain"
)

// htmlTemplate is the browsing view: one card per record, a free-text
// filter over title+summary+themes+partition via the data-search
// attribute, and an exact source filter via data-source.
const htmlTemplate = `<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <style>
    body {
      font-family: system-ui, -apple-system, BlinkMacSystemFont, sans-serif;
      max-width: 1024px;
      margin: 2rem auto;
      padding: 0 1.5rem;
      line-height: 1.6;
      background-color: #f7f7f9;
    }
    h1 { border-bottom: 2px solid #333; padding-bottom: 0.5rem; margin-bottom: 0.5rem; }
    .subtitle { color: #555; margin-bottom: 1.5rem; }
    .filters { display: flex; gap: 0.8rem; margin-bottom: 1.5rem; }
    .search-input {
      flex: 1;
      padding: 0.6rem 0.8rem;
      font-size: 1rem;
      border-radius: 0.5rem;
      border: 1px solid #ccc;
    }
    .source-select {
      padding: 0.6rem 0.8rem;
      font-size: 1rem;
      border-radius: 0.5rem;
      border: 1px solid #ccc;
      background-color: #fff;
    }
    .card {
      margin-bottom: 1.5rem;
      padding: 1rem 1.2rem;
      border-radius: 0.7rem;
      background-color: #ffffff;
      box-shadow: 0 1px 3px rgba(0,0,0,0.08);
    }
    .card h2 { margin: 0 0 0.3rem 0; font-size: 1.05rem; }
    .meta { font-size: 0.85rem; color: #666; margin-bottom: 0.4rem; }
    .theme {
      display: inline-block;
      font-size: 0.78rem;
      background-color: #eef2f7;
      border-radius: 0.9rem;
      padding: 0.1rem 0.6rem;
      margin-right: 0.3rem;
    }
    .summary { margin-top: 0.5rem; white-space: pre-wrap; font-size: 0.95rem; }
    a { color: #0645ad; text-decoration: none; }
    a:hover { text-decoration: underline; }
    .no-results { margin-top: 1rem; color: #777; font-style: italic; }
  </style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="subtitle">Total de documentos: <strong>{{.Total}}</strong>.
Use el buscador para filtrar por título, resumen, tema o año.</p>
<div class="filters">
  <input id="searchInput" class="search-input" type="text" placeholder="Buscar por texto...">
  <select id="sourceFilter" class="source-select">
    <option value="">Todas las fuentes</option>
{{- range .Sources}}
    <option value="{{.}}">{{.}}</option>
{{- end}}
  </select>
</div>
<div id="noResults" class="no-results" style="display:none;">No se encontraron documentos con ese criterio.</div>
<div id="cardsContainer">
{{- range .Cards}}
<div class="card" data-search="{{.SearchBlob}}" data-source="{{.Source}}">
  <h2>{{.Name}}</h2>
  <div class="meta">
    {{- if .Partition}}Año: {{.Partition}} · {{end}}Fuente: {{.Source}}<br>
    URL original: <a href="{{.URL}}" target="_blank">{{.URL}}</a>
    {{- if .LocalPath}}<br>Archivo local: <code>{{.LocalPath}}</code>{{end}}
  </div>
  {{- if .Themes}}
  <div>{{range .Themes}}<span class="theme">{{.}}</span>{{end}}</div>
  {{- end}}
  <div class="summary">{{.Summary}}</div>
</div>
{{- end}}
</div>
<script>
  const input = document.getElementById('searchInput');
  const sourceFilter = document.getElementById('sourceFilter');
  const cardsContainer = document.getElementById('cardsContainer');
  const noResults = document.getElementById('noResults');

  function applyFilters() {
    const query = input.value.toLowerCase().trim();
    const source = sourceFilter.value;
    const cards = cardsContainer.getElementsByClassName('card');
    let visibleCount = 0;

    for (const card of cards) {
      const haystack = card.getAttribute('data-search') || '';
      const cardSource = card.getAttribute('data-source') || '';
      const matchesText = !query || haystack.indexOf(query) !== -1;
      const matchesSource = !source || cardSource === source;
      if (matchesText && matchesSource) {
        card.style.display = '';
        visibleCount++;
      } else {
        card.style.display = 'none';
      }
    }

    noResults.style.display = visibleCount === 0 && (query || source) ? 'block' : 'none';
  }

  input.addEventListener('input', applyFilters);
  sourceFilter.addEventListener('change', applyFilters);
</script>
</body>
</html>
`

var htmlTmpl = template.Must(template.New("report").Parse(htmlTemplate))

type htmlCard struct {
	Name       string
	URL        string
	LocalPath  string
	Partition  string
	Source     string
	Summary    string
	Themes     []string
	SearchBlob string
}

type htmlData struct {
	Title   string
	Total   int
	Sources []string
	Cards   []htmlCard
}

// renderHTML builds the browsing view from sorted records.
func renderHTML(title string, records []domain.Record) ([]byte, error) {
	data := htmlData{
		Title:   title,
		Total:   len(records),
		Sources: distinctSources(records),
	}

	for _, rec := range records {
		data.Cards = append(data.Cards, htmlCard{
			Name:       rec.Name,
			URL:        rec.URL,
			LocalPath:  rec.LocalPath,
			Partition:  rec.Partition,
			Source:     rec.Source,
			Summary:    rec.Summary,
			Themes:     rec.Themes,
			SearchBlob: searchBlob(rec),
		})
	}

	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// searchBlob is the lowercase haystack for the free-text filter.
func searchBlob(rec domain.Record) string {
	parts := []string{rec.Name, rec.Summary, rec.Partition}
	parts = append(parts, rec.Themes...)
	return strings.ToLower(strings.Join(parts, " "))
}

// distinctSources returns the sorted set of source labels for the
// exact-match filter.
func distinctSources(records []domain.Record) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, rec := range records {
		if rec.Source == "" {
			continue
		}
		if _, ok := seen[rec.Source]; ok {
			continue
		}
		seen[rec.Source] = struct{}{}
		out = append(out, rec.Source)
	}
	sort.Strings(out)
	return out
}
