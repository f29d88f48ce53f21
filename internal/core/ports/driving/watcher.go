package driving

import (
	"context"

	"github.com/custodia-labs/gaceta-watch/internal/core/domain"
)

// Watcher runs one full pipeline pass: discovery, diff against the
// corpus, per-item acquisition and enrichment, persistence, report
// projection and digest notification.
//
// A per-item failure never aborts the run; results merged before a
// later failure are retained.
type Watcher interface {
	Run(ctx context.Context) (*RunResult, error)
}

// RunResult summarises one pipeline run.
type RunResult struct {
	// RunID uniquely identifies the run in log output.
	RunID string

	// Discovered is the number of distinct references found on the index.
	Discovered int

	// New is the number of references not yet enriched before this run.
	New int

	// Processed is the number of new references merged this run.
	Processed int

	// Failed is the number of new references skipped on acquisition
	// failure. They stay eligible for the next run.
	Failed int

	// Records lists the records produced in this run only, in
	// processing order. This is the digest's input, not the corpus.
	Records []domain.Record

	// Notified reports whether a digest was dispatched.
	Notified bool
}
