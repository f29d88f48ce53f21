package driven

import (
	"context"

	"github.com/custodia-labs/gaceta-watch/internal/core/domain"
)

// Notifier dispatches one digest naming the records produced in the
// current run. Implementations return domain.ErrMailNotConfigured when
// transport settings are incomplete; the orchestrator treats that as a
// logged skip, not a fault.
type Notifier interface {
	Notify(ctx context.Context, records []domain.Record) error
}
