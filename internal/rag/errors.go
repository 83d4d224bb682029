package rag

import "fmt"

// ValidationError reports malformed caller input or configuration: empty
// document text, empty document name, empty query, or chunking parameters
// that violate overlap < size. It maps to a client error at the HTTP
// boundary and is never retried.
type ValidationError struct {
	// Reason is the human-readable description of what was invalid.
	Reason string
}

func (e *ValidationError) Error() string { return "validation: " + e.Reason }

// Validationf constructs a *ValidationError with a formatted reason.
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// EmbeddingError wraps a failure from the embedding backend, labelled with
// the pipeline operation that needed the embedding. It maps to a server
// error at the HTTP boundary; retry policy, if any, belongs to the
// embedding client, not the pipeline.
type EmbeddingError struct {
	// Op is the pipeline operation: "ingest" or "query".
	Op string
	// Err is the underlying backend error.
	Err error
}

func (e *EmbeddingError) Error() string { return fmt.Sprintf("embedding (%s): %v", e.Op, e.Err) }
func (e *EmbeddingError) Unwrap() error { return e.Err }

// IndexError wraps a vector index failure, labelled with the store operation
// that failed. It maps to a server error at the HTTP boundary. A failed
// "clear" is only surfaced as an IndexError under the strict clear policy —
// the lenient policy logs and continues.
type IndexError struct {
	// Op is the store operation: "clear", "upsert", or "search".
	Op string
	// Err is the underlying store error.
	Err error
}

func (e *IndexError) Error() string { return fmt.Sprintf("index (%s): %v", e.Op, e.Err) }
func (e *IndexError) Unwrap() error { return e.Err }
