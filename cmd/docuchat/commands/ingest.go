package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/docuchat/docuchat-go/internal/embedder"
	"github.com/docuchat/docuchat-go/internal/extractor"
	"github.com/docuchat/docuchat-go/internal/logging"
	"github.com/docuchat/docuchat-go/internal/store"
)

// NewIngestCmd constructs the `docuchat ingest` command, which indexes a
// document file into the vector store.
func NewIngestCmd() *cobra.Command {
	var name string
	var maxPages int

	cmd := &cobra.Command{
		Use:   "ingest <file>",
		Short: "Index a document file into the vector store",
		Long: `Extract text from a document file, split it into overlapping chunks,
embed the chunks, and write them to the Qdrant vector store.

Indexing replaces the previously indexed document: old vectors are cleared
before the new chunks are written. Supported formats: .pdf, .txt, .md.

Required environment variables:
  QDRANT_HOST          Qdrant server hostname (default: localhost)
  QDRANT_PORT          Qdrant gRPC port (default: 6334)
  QDRANT_COLLECTION    Collection name (default: docuchat)
  EMBEDDING_PROVIDER   Embedding backend: gemini, openai, ollama (default: gemini)
  EMBEDDING_*          Provider-specific overrides (MODEL, API_KEY, ENDPOINT, DIMENSIONS)

Examples:
  docuchat ingest report.pdf
  docuchat ingest notes.md --name "Meeting Notes"
  EMBEDDING_PROVIDER=ollama docuchat ingest handbook.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logging.New()
			path := args[0]

			if err := embedder.Validate(log); err != nil {
				return fmt.Errorf("ingest: %w", err)
			}

			text, err := extractor.New(maxPages).ExtractFile(path)
			if err != nil {
				return fmt.Errorf("ingest: %w", err)
			}

			documentName := name
			if documentName == "" {
				documentName = filepath.Base(path)
			}

			emb, err := embedder.NewFromEnv(ctx)
			if err != nil {
				return fmt.Errorf("ingest: failed to initialise embedder: %w", err)
			}

			vectorStore, err := buildStore(ctx, log)
			if err != nil {
				return fmt.Errorf("ingest: %w", err)
			}
			defer vectorStore.Close()

			pipeline, err := buildPipeline(emb, vectorStore, log)
			if err != nil {
				return fmt.Errorf("ingest: failed to create pipeline: %w", err)
			}

			start := time.Now()
			res, err := pipeline.Ingest(ctx, documentName, text)
			if err != nil {
				return fmt.Errorf("ingest: pipeline failed: %w", err)
			}
			elapsed := time.Since(start)

			if history := openHistory(log); history != nil {
				defer func() { _ = history.Close() }()
				_ = history.RecordIngest(ctx, store.IngestRecord{
					DocumentName:   documentName,
					ChunksProduced: res.ChunksProduced,
					ChunksWritten:  res.ChunksWritten,
					Duration:       elapsed,
				})
			}

			fmt.Printf("Indexed %q: %d chunks produced, %d written in %s\n",
				documentName, res.ChunksProduced, res.ChunksWritten, elapsed.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Document name to index under (default: file basename)")
	cmd.Flags().IntVar(&maxPages, "max-pages", extractor.DefaultMaxPages, "Maximum number of PDF pages to extract")

	return cmd
}
