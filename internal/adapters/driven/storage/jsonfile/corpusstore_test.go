package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gaceta-watch/internal/core/domain"
	"github.com/custodia-labs/gaceta-watch/internal/core/ports/driven"
)

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.CorpusStore = (*Store)(nil)
}

func TestLoad_MissingFilesYieldEmptyCorpus(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	c, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, c.Known)
	assert.Empty(t, c.Records)
}

func TestSaveLoad_Roundtrip(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)
	ctx := context.Background()

	c := domain.NewCorpus()
	ref := domain.Reference{URL: "https://x/getattachment/a/Decreto-1.aspx", Name: "Decreto-1.aspx", Partition: "2025"}
	c.Merge(ref, "downloads/Decreto-1.pdf", domain.Enrichment{
		Summary: "Resumen del decreto.",
		Themes:  []string{"comercio", "aranceles"},
		Source:  "MinCIT",
	})

	require.NoError(t, store.Save(ctx, c))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, c.Known, loaded.Known)
	assert.Equal(t, c.Records, loaded.Records)
}

func TestLoad_CorruptFileFailsOpen(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "records.json"), []byte("{not json"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "references.json"), []byte("also broken"), 0600))

	c, err := store.Load(context.Background())
	require.NoError(t, err, "corruption must never abort the run")
	assert.Empty(t, c.Known)
	assert.Empty(t, c.Records)
}

func TestLoad_DropsEntriesWithoutURL(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	// Key carries the url; an entry with neither key nor fields is dropped.
	refs := map[string]any{
		"https://x/a.aspx": map[string]any{"name": "a.aspx"},
		"":                 map[string]any{"name": "nameless"},
	}
	data, err := json.Marshal(refs)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "references.json"), data, 0600))

	c, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, c.Known, 1)
	assert.Equal(t, "https://x/a.aspx", c.Known["https://x/a.aspx"].URL, "url recovered from the map key")
}

func TestSave_AtomicReplaceKeepsPreviousOnExistingState(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)
	ctx := context.Background()

	c := domain.NewCorpus()
	c.Merge(domain.Reference{URL: "u1", Name: "n1"}, "", domain.Enrichment{Summary: "s", Source: "x"})
	require.NoError(t, store.Save(ctx, c))

	// Saving again must not leave temp files behind.
	c.Merge(domain.Reference{URL: "u2", Name: "n2"}, "", domain.Enrichment{Summary: "s", Source: "x"})
	require.NoError(t, store.Save(ctx, c))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"references.json", "records.json"}, names)
}

func TestSave_HumanDiffableOutput(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	c := domain.NewCorpus()
	c.Merge(domain.Reference{URL: "https://x/a.aspx", Name: "a.aspx", Partition: "2025"}, "downloads/a.pdf",
		domain.Enrichment{Summary: "s", Themes: []string{"t"}, Source: "MinCIT"})
	require.NoError(t, store.Save(context.Background(), c))

	data, err := os.ReadFile(filepath.Join(dir, "records.json"))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "\n  ", "indented for diffing")
	assert.Contains(t, content, `"summary": "s"`)
	assert.Contains(t, content, `"local_path": "downloads/a.pdf"`)
}

func TestLoad_SecondStoreSeesFirstStoresState(t *testing.T) {
	// Simulates a process restart.
	dir := t.TempDir()
	ctx := context.Background()

	first, err := New(dir)
	require.NoError(t, err)
	c := domain.NewCorpus()
	c.Merge(domain.Reference{URL: "u", Name: "n"}, "", domain.Enrichment{Summary: "s", Source: "x"})
	require.NoError(t, first.Save(ctx, c))

	second, err := New(dir)
	require.NoError(t, err)
	loaded, err := second.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded.Records, 1)
}
