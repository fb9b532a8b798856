package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidSession indicates an unknown session id. The request is
	// rejected without mutating any session state.
	ErrInvalidSession = errors.New("invalid session id")

	// ErrEmptyCorpus indicates the script produced no chunks.
	// Index builds must fail rather than write an empty index.
	ErrEmptyCorpus = errors.New("empty corpus")

	// ErrIndexMissing indicates no index artifact exists at the
	// configured location. The process must refuse to serve.
	ErrIndexMissing = errors.New("index missing")

	// ErrIndexCorrupt indicates the stored chunk sequence and vector
	// set do not form a matched pair (count mismatch or partial load).
	ErrIndexCorrupt = errors.New("index corrupt")

	// ErrDimensionMismatch indicates the stored vectors have a different
	// dimensionality than the configured embedding model produces.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmptyQuery indicates a blank user message or search query.
	ErrEmptyQuery = errors.New("empty query")

	// ErrAPIKeyMissing indicates a required API key is not set in the
	// environment. Fatal at startup for the affected backend.
	ErrAPIKeyMissing = errors.New("API key not set")
)
