package driven

import (
	"context"

	"github.com/custodia-labs/gaceta-watch/internal/core/domain"
)

// CorpusStore persists the corpus across runs.
//
// Load fails open: missing storage yields an empty corpus, and unparsable
// storage logs the corruption and yields an empty corpus rather than
// aborting the run. Save must replace previous content atomically so a
// crash mid-write leaves the prior valid state intact.
type CorpusStore interface {
	Load(ctx context.Context) (*domain.Corpus, error)
	Save(ctx context.Context, c *domain.Corpus) error
}
