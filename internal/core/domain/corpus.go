package domain

import (
	"sort"
	"strings"
)

// Corpus holds the two durable url-keyed mappings that survive across runs:
// every reference ever discovered, and every reference that has completed
// enrichment. A URL present in Known but absent from Records is a
// recoverable gap left by an interrupted run, not an error.
type Corpus struct {
	Known   map[string]Reference
	Records map[string]Record
}

// NewCorpus creates an empty corpus.
func NewCorpus() *Corpus {
	return &Corpus{
		Known:   make(map[string]Reference),
		Records: make(map[string]Record),
	}
}

// SelectNew returns the subset of refs whose URL has no Record yet,
// preserving input order. This is the idempotency boundary: a reference
// that failed enrichment in a prior run is retried, a reference that
// succeeded is never retried.
func (c *Corpus) SelectNew(refs []Reference) []Reference {
	var out []Reference
	for _, ref := range refs {
		if _, ok := c.Records[ref.URL]; !ok {
			out = append(out, ref)
		}
	}
	return out
}

// Merge upserts the enrichment outcome for one reference into both
// mappings and returns the resulting record. Safe to call again for the
// same URL, though in normal operation reruns only happen for URLs that
// have no record yet.
func (c *Corpus) Merge(ref Reference, localPath string, enr Enrichment) Record {
	themes := enr.Themes
	if themes == nil {
		themes = []string{}
	}
	rec := Record{
		URL:       ref.URL,
		Name:      ref.Name,
		LocalPath: localPath,
		Summary:   enr.Summary,
		Themes:    themes,
		Source:    enr.Source,
		Partition: ref.Partition,
	}
	c.Known[ref.URL] = ref
	c.Records[ref.URL] = rec
	return rec
}

// SortedRecords returns all records ordered by (partition, name)
// ascending. Records without a partition sort last. The order is stable
// for identical corpus content, which keeps report output deterministic.
func (c *Corpus) SortedRecords() []Record {
	out := make([]Record, 0, len(c.Records))
	for _, rec := range c.Records {
		out = append(out, rec)
	}
	SortRecords(out)
	return out
}

// SortRecords orders records in place by (partition, name) ascending,
// absent partitions last.
func SortRecords(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		return lessRecord(records[i], records[j])
	})
}

func lessRecord(a, b Record) bool {
	if a.Partition != b.Partition {
		// Absent partitions sort after every present one.
		if a.Partition == "" {
			return false
		}
		if b.Partition == "" {
			return true
		}
		return a.Partition < b.Partition
	}
	if a.Name != b.Name {
		return strings.Compare(a.Name, b.Name) < 0
	}
	return a.URL < b.URL
}
