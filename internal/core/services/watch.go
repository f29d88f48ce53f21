package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/gaceta-watch/internal/core/domain"
	"github.com/custodia-labs/gaceta-watch/internal/core/ports/driven"
	"github.com/custodia-labs/gaceta-watch/internal/core/ports/driving"
	"github.com/custodia-labs/gaceta-watch/internal/logger"
)

// Ensure Watch implements the interface.
var _ driving.Watcher = (*Watch)(nil)

// Watch orchestrates one pipeline run. The per-item loop isolates
// failures: a reference that cannot be acquired is logged and skipped,
// and everything merged before a later failure is persisted.
type Watch struct {
	discoverer *Discoverer
	enricher   *Enricher
	fetcher    driven.Fetcher
	store      driven.CorpusStore
	reports    driven.ReportWriter
	notifier   driven.Notifier

	partitions  []string
	downloadDir string
}

// NewWatch creates the run orchestrator. reports and notifier are
// optional; when nil the corresponding stage is skipped.
func NewWatch(
	discoverer *Discoverer,
	enricher *Enricher,
	fetcher driven.Fetcher,
	store driven.CorpusStore,
	reports driven.ReportWriter,
	notifier driven.Notifier,
	partitions []string,
	downloadDir string,
) *Watch {
	return &Watch{
		discoverer:  discoverer,
		enricher:    enricher,
		fetcher:     fetcher,
		store:       store,
		reports:     reports,
		notifier:    notifier,
		partitions:  partitions,
		downloadDir: downloadDir,
	}
}

// Run executes one full pass.
//
//nolint:gocyclo // Orchestration function with necessary sequential steps
func (w *Watch) Run(ctx context.Context) (*driving.RunResult, error) {
	result := &driving.RunResult{RunID: uuid.New().String()}

	logger.Section("discovery")
	refs := w.discoverer.Discover(ctx, w.partitions)
	result.Discovered = len(refs)

	corpus, err := w.store.Load(ctx)
	if err != nil {
		// Load fails open on corruption; an error here is environmental
		// (permissions, IO) and the run cannot proceed safely.
		logger.Error("run %s: load corpus: %v", result.RunID, err)
		return result, fmt.Errorf("load corpus: %w", err)
	}

	newRefs := corpus.SelectNew(refs)
	result.New = len(newRefs)
	logger.Info("run %s: %d discovered, %d new", result.RunID, result.Discovered, result.New)

	logger.Section("acquisition and enrichment")
	for _, ref := range newRefs {
		dest := filepath.Join(w.downloadDir, localName(ref.Name))

		if err := w.fetcher.Download(ctx, ref.URL, dest); err != nil {
			logger.Warn("run %s: download failed for %s: %v", result.RunID, ref.URL, err)
			result.Failed++
			continue
		}

		enr := w.enricher.Enrich(ctx, dest, ref.Name, ref.Partition)
		rec := corpus.Merge(ref, dest, enr)
		result.Records = append(result.Records, rec)
		result.Processed++
	}

	if err := w.store.Save(ctx, corpus); err != nil {
		logger.Error("run %s: persist corpus: %v", result.RunID, err)
		return result, fmt.Errorf("persist corpus: %w", err)
	}

	logger.Section("reports")
	if w.reports != nil && len(corpus.Records) > 0 {
		if err := w.reports.Write(ctx, corpus.SortedRecords()); err != nil {
			// The corpus is already persisted; a rendering failure must
			// not undo the run. Reports regenerate on the next pass.
			logger.Warn("run %s: report projection failed: %v", result.RunID, err)
		}
	}

	logger.Section("notification")
	if w.notifier != nil && len(result.Records) > 0 {
		switch err := w.notifier.Notify(ctx, result.Records); {
		case err == nil:
			result.Notified = true
		case errors.Is(err, domain.ErrMailNotConfigured):
			logger.Info("run %s: digest skipped, mail transport not configured", result.RunID)
		default:
			logger.Warn("run %s: digest send failed: %v", result.RunID, err)
		}
	}

	logger.Info("run %s: done (%d processed, %d failed)", result.RunID, result.Processed, result.Failed)
	return result, nil
}

// localName derives the on-disk file name for a reference. The index
// serves PDFs behind .aspx container names; rewrite to the true type.
func localName(name string) string {
	if ext := filepath.Ext(name); strings.EqualFold(ext, ".aspx") {
		return name[:len(name)-len(ext)] + ".pdf"
	}
	return name
}
