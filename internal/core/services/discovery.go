package services

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/gaceta-watch/internal/core/domain"
	"github.com/custodia-labs/gaceta-watch/internal/core/ports/driven"
	"github.com/custodia-labs/gaceta-watch/internal/logger"
)

// Discoverer turns the configured partitions into a deduplicated,
// ordered set of candidate document references.
//
// A partition whose index page cannot be fetched or parsed contributes
// zero references and a logged warning; it never aborts discovery for
// the other partitions.
type Discoverer struct {
	fetcher      driven.Fetcher
	links        driven.LinkExtractor
	urlTemplate  string
	debugCapture string
}

// NewDiscoverer creates a discoverer. urlTemplate must contain one %s
// placeholder for the partition key. debugCapture, when non-empty, is a
// path where the most recently fetched index markup is written for
// inspection.
func NewDiscoverer(fetcher driven.Fetcher, links driven.LinkExtractor, urlTemplate, debugCapture string) *Discoverer {
	return &Discoverer{
		fetcher:      fetcher,
		links:        links,
		urlTemplate:  urlTemplate,
		debugCapture: debugCapture,
	}
}

// Discover fetches each partition's index page, extracts references,
// stamps them with the partition key and deduplicates by URL keeping
// the first occurrence. Output order follows partition order, then
// first-seen order within a partition.
func (d *Discoverer) Discover(ctx context.Context, partitions []string) []domain.Reference {
	var all []domain.Reference

	for _, partition := range partitions {
		indexURL := fmt.Sprintf(d.urlTemplate, partition)
		logger.Debug("fetching index page for partition %s: %s", partition, indexURL)

		markup, err := d.fetcher.FetchPage(ctx, indexURL)
		if err != nil {
			logger.Warn("discovery: partition %s index fetch failed (%s): %v", partition, indexURL, err)
			continue
		}
		d.capture(markup)

		refs, err := d.links.Extract(markup, indexURL)
		if err != nil {
			logger.Warn("discovery: partition %s link extraction failed: %v", partition, err)
			continue
		}

		for _, ref := range refs {
			ref.Partition = partition
			all = append(all, ref)
		}
		logger.Info("partition %s: %d candidate references", partition, len(refs))
	}

	return domain.DedupeReferences(all)
}

// capture writes the fetched markup for offline inspection. Best effort.
func (d *Discoverer) capture(markup string) {
	if d.debugCapture == "" {
		return
	}
	if err := os.WriteFile(d.debugCapture, []byte(markup), 0600); err != nil {
		logger.Debug("debug capture failed: %v", err)
	}
}
