// Package links implements the driven.LinkExtractor port for the
// government publication index. Documents on the index are served as
// /getattachment/.../<name>.aspx attachment links.
package links

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/gaceta-watch/internal/core/domain"
	"github.com/custodia-labs/gaceta-watch/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.LinkExtractor = (*Extractor)(nil)

// Extractor finds attachment links in index page markup.
type Extractor struct{}

// New creates a link extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract returns one Reference per matching anchor, resolving relative
// hrefs against baseURL. It neither deduplicates nor stamps partitions;
// discovery owns both.
func (e *Extractor) Extract(markup, baseURL string) ([]domain.Reference, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	var refs []domain.Reference
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		if !isAttachment(href) {
			return
		}

		resolved := resolveURL(href, base)
		if resolved == "" {
			return
		}

		refs = append(refs, domain.Reference{
			URL:  resolved,
			Name: nameFromURL(resolved),
		})
	})

	return refs, nil
}

// isAttachment reports whether href points at a served document. The
// suffix check ignores any query or fragment the anchor carries.
func isAttachment(href string) bool {
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href = href[:i]
	}
	return strings.Contains(href, "/getattachment/") &&
		strings.HasSuffix(strings.ToLower(href), ".aspx")
}

// resolveURL resolves a potentially relative URL against a base,
// dropping any query and fragment so the document URL is canonical.
func resolveURL(href string, base *url.URL) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(parsed)
	resolved.RawQuery = ""
	resolved.Fragment = ""
	return resolved.String()
}

// nameFromURL derives the display name from the last path segment.
func nameFromURL(u string) string {
	if i := strings.LastIndex(u, "/"); i >= 0 {
		return u[i+1:]
	}
	return u
}
