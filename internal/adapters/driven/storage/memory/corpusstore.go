// Package memory provides in-memory implementations of driven ports,
// used in tests and as a null store when persistence is disabled.
package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/gaceta-watch/internal/core/domain"
	"github.com/custodia-labs/gaceta-watch/internal/core/ports/driven"
)

// Ensure CorpusStore implements the interface.
var _ driven.CorpusStore = (*CorpusStore)(nil)

// CorpusStore is an in-memory implementation of driven.CorpusStore.
type CorpusStore struct {
	mu      sync.RWMutex
	known   map[string]domain.Reference
	records map[string]domain.Record
}

// NewCorpusStore creates a new in-memory corpus store.
func NewCorpusStore() *CorpusStore {
	return &CorpusStore{
		known:   make(map[string]domain.Reference),
		records: make(map[string]domain.Record),
	}
}

// Load returns a copy of the stored corpus. Callers own the result and
// may mutate it freely before saving.
func (s *CorpusStore) Load(_ context.Context) (*domain.Corpus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := domain.NewCorpus()
	for url, ref := range s.known {
		c.Known[url] = ref
	}
	for url, rec := range s.records {
		c.Records[url] = rec
	}
	return c, nil
}

// Save replaces the stored corpus with a copy of c.
func (s *CorpusStore) Save(_ context.Context, c *domain.Corpus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.known = make(map[string]domain.Reference, len(c.Known))
	for url, ref := range c.Known {
		s.known[url] = ref
	}
	s.records = make(map[string]domain.Record, len(c.Records))
	for url, rec := range c.Records {
		s.records[url] = rec
	}
	return nil
}
