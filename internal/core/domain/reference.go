package domain

// Reference identifies one discoverable document on the publication index.
// The URL is the sole identity: two references with the same URL are the
// same document, even when discovered under different partitions.
type Reference struct {
	// URL is the absolute document location and the unique key.
	URL string

	// Name is the display name derived from the URL's last path segment.
	// Used for local file naming and report headings.
	Name string

	// Partition is the index slice the reference was discovered under
	// (typically a year, e.g. "2025"). May be empty.
	Partition string
}

// Validate checks the reference has the fields identity depends on.
func (r Reference) Validate() error {
	if r.URL == "" {
		return ErrInvalidInput
	}
	if r.Name == "" {
		return ErrInvalidInput
	}
	return nil
}

// DedupeReferences removes duplicate references by URL, keeping the first
// occurrence. Input order is preserved, so when the same document appears
// under two partitions, the first-seen partition wins.
func DedupeReferences(refs []Reference) []Reference {
	seen := make(map[string]struct{}, len(refs))
	out := make([]Reference, 0, len(refs))
	for _, ref := range refs {
		if _, ok := seen[ref.URL]; ok {
			continue
		}
		seen[ref.URL] = struct{}{}
		out = append(out, ref)
	}
	return out
}
