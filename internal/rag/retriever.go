package rag

import (
	"context"
	"fmt"
)

// DefaultTopK is the number of nearest records fetched per query when the
// caller does not override it.
const DefaultTopK = 5

// Retriever embeds a query, fetches the nearest records from the vector
// store, and assembles them into a generation-ready Context. It is stateless
// per call and safe for concurrent use.
type Retriever struct {
	// embedder converts query text to a dense vector.
	embedder Embedder

	// store performs the vector similarity search.
	store VectorStore

	// topK is the number of records fetched per query.
	topK int
}

// NewRetriever constructs a Retriever from the given Embedder and VectorStore.
// topK <= 0 selects DefaultTopK.
func NewRetriever(embedder Embedder, store VectorStore, topK int) (*Retriever, error) {
	if embedder == nil {
		return nil, fmt.Errorf("rag: embedder must not be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("rag: store must not be nil")
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{embedder: embedder, store: store, topK: topK}, nil
}

// Retrieve returns the assembled context for query. The contract is
// all-or-nothing: an embedding or search failure surfaces as an error and no
// partial context is returned. Zero matching records is not an error — the
// returned Context is simply empty.
func (r *Retriever) Retrieve(ctx context.Context, query string) (Context, error) {
	if query == "" {
		return Context{}, Validationf("query must not be empty")
	}

	embeddings, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return Context{}, &EmbeddingError{Op: "query", Err: err}
	}
	if len(embeddings) != 1 {
		return Context{}, &EmbeddingError{Op: "query", Err: fmt.Errorf("expected 1 embedding, got %d", len(embeddings))}
	}

	records, err := r.store.Search(ctx, embeddings[0], r.topK)
	if err != nil {
		return Context{}, &IndexError{Op: "search", Err: err}
	}

	return Assemble(records), nil
}
