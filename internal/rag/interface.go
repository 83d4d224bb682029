// Package rag defines the retrieval pipeline contracts — vector storage,
// embedding, and context assembly — plus the error taxonomy shared across
// ingestion and retrieval. Concrete backends (Qdrant, Gemini, OpenAI, Ollama)
// satisfy these interfaces so the HTTP and CLI layers never depend on a
// specific vendor.
package rag

import (
	"context"
)

// Record is the unit persisted in the vector index: one document chunk with
// its identifying metadata. The embedding itself is passed alongside records
// at upsert time and is never retained in-process.
type Record struct {
	// ID is the stable chunk identifier (chunker.ChunkID output).
	ID string

	// Text is the raw chunk text.
	Text string

	// DocumentName is the name of the owning document, used as the source
	// label in citations.
	DocumentName string

	// ChunkIndex is the zero-based position of this chunk within its document.
	ChunkIndex int

	// Score is the similarity score assigned during retrieval.
	// Zero value means the score was not computed (e.g. at upsert time).
	Score float32
}

// VectorStore is the interface for persisting and searching chunk embeddings.
// Implementations must be safe to call from multiple goroutines.
type VectorStore interface {
	// Upsert stores or updates a batch of records with their pre-computed
	// embeddings. embeddings must be parallel to records — embeddings[i] is
	// the vector for records[i].
	Upsert(ctx context.Context, records []Record, embeddings [][]float32) error

	// Search returns the topK records most similar to the query embedding,
	// ordered by descending similarity, with metadata included.
	Search(ctx context.Context, queryEmbedding []float32, topK int) ([]Record, error)

	// Clear removes every record in the working namespace. Used to enforce
	// the single-active-document policy before each ingestion.
	Clear(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}

// Embedder is the interface for converting text into dense vector embeddings.
// Implementations must be safe to call from multiple goroutines.
type Embedder interface {
	// Embed converts a batch of texts into their corresponding embeddings.
	// The returned slice is parallel to the input slice.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
