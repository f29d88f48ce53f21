package domain

// Record is the durable, merged result for one Reference. Exactly one
// Record exists per URL; once created it is never recreated by a later run.
type Record struct {
	// URL is the document location, same uniqueness rule as Reference.URL.
	URL string

	// Name is the display name carried over from the Reference.
	Name string

	// LocalPath is where the downloaded bytes were stored. Advisory.
	LocalPath string

	// Summary is the enriched synopsis. Non-empty even for degraded
	// results, which carry a placeholder explanation instead.
	Summary string

	// Themes are short thematic labels. May be empty, never nil.
	Themes []string

	// Source is the attributed issuing entity, falling back to the
	// configured label when attribution was unavailable.
	Source string

	// Partition is the index slice the document was discovered under.
	Partition string
}

// Enrichment is the structured output of the enrichment ladder for one
// document. Every ladder failure produces a degraded but structurally
// valid Enrichment rather than an error.
type Enrichment struct {
	Summary string
	Themes  []string
	Source  string

	// Degraded is true when a ladder step could not complete normally
	// and Summary carries a placeholder instead of a real synopsis.
	Degraded bool

	// Reason names the ladder step that degraded, empty when clean.
	Reason string
}
