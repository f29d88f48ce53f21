// Package jsonfile implements the driven.CorpusStore port over two
// url-keyed JSON files: one for every reference ever discovered, one for
// every enriched record. Both are UTF-8 and human-diffable.
//
// Loading fails open: a missing file is an empty mapping, and an
// unparsable file logs the corruption and yields an empty mapping
// rather than blocking the run. Saving replaces each file atomically
// via write-to-temp-then-rename, so a crash mid-write leaves the
// previous valid content intact.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/gaceta-watch/internal/core/domain"
	"github.com/custodia-labs/gaceta-watch/internal/core/ports/driven"
	"github.com/custodia-labs/gaceta-watch/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.CorpusStore = (*Store)(nil)

// File names within the state directory.
const (
	referencesFile = "references.json"
	recordsFile    = "records.json"
)

// referenceDTO is the on-disk shape of a domain.Reference.
type referenceDTO struct {
	URL       string `json:"url"`
	Name      string `json:"name"`
	Partition string `json:"partition,omitempty"`
}

// recordDTO is the on-disk shape of a domain.Record.
type recordDTO struct {
	URL       string   `json:"url"`
	Name      string   `json:"name"`
	LocalPath string   `json:"local_path,omitempty"`
	Summary   string   `json:"summary"`
	Themes    []string `json:"themes"`
	Source    string   `json:"source"`
	Partition string   `json:"partition,omitempty"`
}

// Store persists the corpus under a state directory.
type Store struct {
	refsPath    string
	recordsPath string
}

// New creates a corpus store rooted at dir, creating dir if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &Store{
		refsPath:    filepath.Join(dir, referencesFile),
		recordsPath: filepath.Join(dir, recordsFile),
	}, nil
}

// Load reads both mappings. Never raises on corruption: the damaged
// file is logged and treated as empty so the pipeline re-collects.
func (s *Store) Load(_ context.Context) (*domain.Corpus, error) {
	c := domain.NewCorpus()

	var refs map[string]referenceDTO
	if readMapping(s.refsPath, &refs) {
		for url, dto := range refs {
			ref := dto.toDomain(url)
			if ref.Validate() != nil {
				logger.Warn("state: dropping malformed reference entry for key %q in %s", url, s.refsPath)
				continue
			}
			c.Known[ref.URL] = ref
		}
	}

	var recs map[string]recordDTO
	if readMapping(s.recordsPath, &recs) {
		for url, dto := range recs {
			rec := dto.toDomain(url)
			if rec.URL == "" {
				logger.Warn("state: dropping malformed record entry for key %q in %s", url, s.recordsPath)
				continue
			}
			c.Records[rec.URL] = rec
		}
	}

	return c, nil
}

// Save persists both mappings. Each file is written independently but
// atomically relative to its previous content.
func (s *Store) Save(_ context.Context, c *domain.Corpus) error {
	refs := make(map[string]referenceDTO, len(c.Known))
	for url, ref := range c.Known {
		refs[url] = referenceDTO{URL: ref.URL, Name: ref.Name, Partition: ref.Partition}
	}
	if err := writeMapping(s.refsPath, refs); err != nil {
		return fmt.Errorf("save references: %w", err)
	}

	recs := make(map[string]recordDTO, len(c.Records))
	for url, rec := range c.Records {
		themes := rec.Themes
		if themes == nil {
			themes = []string{}
		}
		recs[url] = recordDTO{
			URL:       rec.URL,
			Name:      rec.Name,
			LocalPath: rec.LocalPath,
			Summary:   rec.Summary,
			Themes:    themes,
			Source:    rec.Source,
			Partition: rec.Partition,
		}
	}
	if err := writeMapping(s.recordsPath, recs); err != nil {
		return fmt.Errorf("save records: %w", err)
	}
	return nil
}

func (d referenceDTO) toDomain(key string) domain.Reference {
	url := d.URL
	if url == "" {
		url = key
	}
	return domain.Reference{URL: url, Name: d.Name, Partition: d.Partition}
}

func (d recordDTO) toDomain(key string) domain.Record {
	url := d.URL
	if url == "" {
		url = key
	}
	themes := d.Themes
	if themes == nil {
		themes = []string{}
	}
	return domain.Record{
		URL:       url,
		Name:      d.Name,
		LocalPath: d.LocalPath,
		Summary:   d.Summary,
		Themes:    themes,
		Source:    d.Source,
		Partition: d.Partition,
	}
}

// readMapping loads path into out. Returns false when the file is
// absent or unreadable; corruption is logged, never propagated.
func readMapping(path string, out any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("state: cannot read %s: %v", path, err)
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		logger.Warn("state: %s is corrupt, starting from empty: %v (%v)", path, err, domain.ErrStateCorrupt)
		return false
	}
	return true
}

// writeMapping marshals m and atomically replaces path.
func writeMapping(path string, m any) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), ".state-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
