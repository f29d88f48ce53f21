package driven

import "context"

// Fetcher retrieves remote content over HTTP. Implementations carry
// per-call timeouts; an expired timeout surfaces as an ordinary error for
// that call, never as a process-wide cancellation.
type Fetcher interface {
	// FetchPage retrieves the markup of an index page.
	FetchPage(ctx context.Context, url string) (string, error)

	// Download fetches a document's bytes and writes them to dest,
	// creating parent directories as needed. A failed download must not
	// leave a truncated file at dest.
	Download(ctx context.Context, url, dest string) error
}
