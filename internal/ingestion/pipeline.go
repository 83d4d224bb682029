// Package ingestion implements the document indexing pipeline: it chunks a
// document's extracted text, embeds each chunk, and upserts the results into
// the vector store in batches. Each ingestion replaces the previously indexed
// document — the working namespace is cleared before new chunks are written.
// The pipeline is invoked by the HTTP upload handler and the `docuchat
// ingest` CLI command.
package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/docuchat/docuchat-go/internal/chunker"
	"github.com/docuchat/docuchat-go/internal/rag"
)

// ClearPolicy controls how a failed namespace clear is treated.
type ClearPolicy string

const (
	// ClearLenient logs a failed clear and continues — the namespace may end
	// up holding a mix of stale and fresh chunks. Suits single-user sessions
	// where the clear usually fails only because the namespace is already
	// empty.
	ClearLenient ClearPolicy = "lenient"

	// ClearStrict aborts the ingestion when the clear fails, guaranteeing the
	// namespace never mixes documents at the cost of failing on a cold store.
	ClearStrict ClearPolicy = "strict"
)

// DefaultBatchSize is the number of records per upsert batch, sized to
// respect upstream payload limits.
const DefaultBatchSize = 100

// Config holds the configuration for the ingestion pipeline. The zero value
// selects the shipped defaults.
type Config struct {
	// ChunkSize is the maximum number of characters per document chunk.
	// Defaults to chunker.DefaultChunkSize if zero.
	ChunkSize int

	// ChunkOverlap is the number of characters shared between consecutive
	// chunks. Defaults to chunker.DefaultChunkOverlap if ChunkSize is also zero.
	ChunkOverlap int

	// BatchSize is the number of records per upsert batch.
	// Defaults to DefaultBatchSize if zero.
	BatchSize int

	// ClearPolicy selects lenient (default) or strict handling of a failed
	// namespace clear.
	ClearPolicy ClearPolicy

	// Logger receives pipeline progress and the best-effort clear warning.
	// If nil, slog.Default is used.
	Logger *slog.Logger
}

// Result reports the outcome of one ingestion. ChunksWritten can be lower
// than ChunksProduced when a later batch failed after earlier batches were
// already upserted — callers observe partial ingestion through the mismatch.
type Result struct {
	// ChunksProduced is the number of chunks the document was split into.
	ChunksProduced int

	// ChunksWritten is the number of chunks confirmed upserted.
	ChunksWritten int
}

// Pipeline orchestrates the chunk → clear → embed → upsert flow.
type Pipeline struct {
	// embedder converts chunk texts into dense vector embeddings.
	embedder rag.Embedder

	// store persists the embedded chunks.
	store rag.VectorStore

	// cfg holds the resolved pipeline configuration.
	cfg *Config

	// log is the structured logger for pipeline progress.
	log *slog.Logger
}

// NewPipeline constructs a Pipeline from the provided dependencies and config.
// Invalid chunking parameters are rejected here so a misconfigured pipeline
// never reaches the non-terminating chunk loop.
func NewPipeline(embedder rag.Embedder, store rag.VectorStore, cfg *Config) (*Pipeline, error) {
	if embedder == nil {
		return nil, fmt.Errorf("ingestion: embedder must not be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("ingestion: store must not be nil")
	}
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.ChunkSize == 0 && cfg.ChunkOverlap == 0 {
		cfg.ChunkSize = chunker.DefaultChunkSize
		cfg.ChunkOverlap = chunker.DefaultChunkOverlap
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.ClearPolicy == "" {
		cfg.ClearPolicy = ClearLenient
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if err := chunker.ValidateParams(cfg.ChunkSize, cfg.ChunkOverlap); err != nil {
		return nil, rag.Validationf("%v", err)
	}

	return &Pipeline{
		embedder: embedder,
		store:    store,
		cfg:      cfg,
		log:      cfg.Logger,
	}, nil
}

// Ingest chunks rawText, clears the working namespace, then embeds and
// upserts the chunks batch by batch. Batches are processed sequentially; the
// first failing batch aborts the rest, and the returned Result still reports
// how many chunks were confirmed written before the failure.
func (p *Pipeline) Ingest(ctx context.Context, documentName, rawText string) (Result, error) {
	if documentName == "" {
		return Result{}, rag.Validationf("document name must not be empty")
	}
	if strings.TrimSpace(rawText) == "" {
		return Result{}, rag.Validationf("document %q has no text content", documentName)
	}

	chunks := chunker.Split(rawText, p.cfg.ChunkSize, p.cfg.ChunkOverlap)
	res := Result{ChunksProduced: len(chunks)}
	p.log.Info("ingestion: document chunked",
		slog.String("document", documentName),
		slog.Int("chunks", len(chunks)),
	)

	// Single-active-document policy: drop the previous document's chunks
	// before writing new ones. Under the lenient policy a failure here (e.g.
	// the namespace is already empty) is logged and ingestion continues.
	if err := p.store.Clear(ctx); err != nil {
		if p.cfg.ClearPolicy == ClearStrict {
			return res, &rag.IndexError{Op: "clear", Err: err}
		}
		p.log.Warn("ingestion: namespace clear failed, continuing",
			slog.String("document", documentName),
			slog.Any("error", err),
		)
	}

	for start := 0; start < len(chunks); start += p.cfg.BatchSize {
		end := start + p.cfg.BatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		embeddings, err := p.embedder.Embed(ctx, batch)
		if err != nil {
			return res, &rag.EmbeddingError{Op: "ingest", Err: err}
		}
		if len(embeddings) != len(batch) {
			return res, &rag.EmbeddingError{
				Op:  "ingest",
				Err: fmt.Errorf("expected %d embeddings, got %d", len(batch), len(embeddings)),
			}
		}

		records := make([]rag.Record, 0, len(batch))
		for i, text := range batch {
			idx := start + i
			records = append(records, rag.Record{
				ID:           chunker.ChunkID(documentName, idx),
				Text:         text,
				DocumentName: documentName,
				ChunkIndex:   idx,
			})
		}

		if err := p.store.Upsert(ctx, records, embeddings); err != nil {
			return res, &rag.IndexError{Op: "upsert", Err: err}
		}
		res.ChunksWritten += len(batch)
	}

	p.log.Info("ingestion: document indexed",
		slog.String("document", documentName),
		slog.Int("chunks_written", res.ChunksWritten),
	)
	return res, nil
}
