package driven

import (
	"context"

	"github.com/custodia-labs/gaceta-watch/internal/core/domain"
)

// ReportWriter renders human-readable projections of the full corpus.
// Rendering is a pure function of the records: the same input must
// produce structurally identical artifacts, so reports can be
// regenerated at any time.
type ReportWriter interface {
	Write(ctx context.Context, records []domain.Record) error
}
