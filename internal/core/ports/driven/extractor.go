package driven

import (
	"context"

	"github.com/custodia-labs/gaceta-watch/internal/core/domain"
)

// LinkExtractor locates candidate document references in raw index page
// markup. Relative hrefs are resolved against baseURL. The extractor does
// not deduplicate and does not stamp partitions; both are discovery
// concerns.
type LinkExtractor interface {
	Extract(markup, baseURL string) ([]domain.Reference, error)
}

// TextExtractor turns a local document artifact into plain text.
//
// Implementations may include:
//   - pdftotext (poppler) via a command runner
//   - a plain-text passthrough for testing
type TextExtractor interface {
	// Extract returns the document's text. An empty string with a nil
	// error means the document has no text layer (e.g. a scanned image).
	Extract(ctx context.Context, path string) (string, error)
}
