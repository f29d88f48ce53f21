package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLLMUnavailable indicates the understanding service is not
	// configured. Enrichment degrades to placeholder summaries.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrNoText indicates a document yielded no extractable text,
	// typically a scanned image without a text layer.
	ErrNoText = errors.New("no extractable text")

	// ErrStateCorrupt indicates a durable state file was present but
	// unparsable. State loading fails open: the corruption is logged and
	// an empty corpus is returned, never an aborted run.
	ErrStateCorrupt = errors.New("state file corrupt")

	// ErrMailNotConfigured indicates the digest transport is not fully
	// configured. Skipping the digest is a configuration choice, not a
	// fault.
	ErrMailNotConfigured = errors.New("mail transport not configured")
)
