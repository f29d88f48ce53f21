// Package domain defines the core business entities for gaceta-watch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Reference: The identity and location of one discoverable document
//   - Record: The durable, enriched result for one Reference
//   - Enrichment: The structured output of the enrichment ladder
//   - Corpus: The accumulated url-keyed state across all runs
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
