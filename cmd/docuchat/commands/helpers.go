package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/docuchat/docuchat-go/internal/embedder"
	"github.com/docuchat/docuchat-go/internal/generator"
	"github.com/docuchat/docuchat-go/internal/ingestion"
	"github.com/docuchat/docuchat-go/internal/rag"
	"github.com/docuchat/docuchat-go/internal/store"
)

// getEnvOrDefault returns the value of the named environment variable, or
// fallback if the variable is unset or empty.
func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvInt returns the named environment variable parsed as an int, or
// fallback if the variable is unset or not a valid integer.
func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// resolveListenAddr applies the DOCUCHAT_HOST / DOCUCHAT_PORT environment
// overrides (which the YAML config's server.host / server.port keys map to)
// to the listen address. An explicitly set flag wins over the environment.
func resolveListenAddr(host string, port int, hostFlagSet, portFlagSet bool) (string, int) {
	if !hostFlagSet {
		host = getEnvOrDefault("DOCUCHAT_HOST", host)
	}
	if !portFlagSet {
		port = getEnvInt("DOCUCHAT_PORT", port)
	}
	return host, port
}

// buildStore connects to Qdrant using the environment configuration and
// ensures the collection exists with the embedding backend's vector size.
func buildStore(ctx context.Context, log *slog.Logger) (*rag.QdrantStore, error) {
	host := getEnvOrDefault("QDRANT_HOST", "localhost")
	port := getEnvInt("QDRANT_PORT", 6334)
	collection := getEnvOrDefault("QDRANT_COLLECTION", "docuchat")
	vectorSize := uint64(embedder.DefaultDimensions(embedder.Backend())) //nolint:gosec // dimensions are bounded

	s, err := rag.NewQdrantStore(ctx, &rag.QdrantConfig{
		Host:       host,
		Port:       port,
		Collection: collection,
		VectorSize: vectorSize,
		APIKey:     os.Getenv("QDRANT_API_KEY"),
		UseTLS:     os.Getenv("QDRANT_TLS") == "true",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Qdrant at %s:%d: %w", host, port, err)
	}

	log.Info("qdrant store ready",
		slog.String("host", host),
		slog.Int("port", port),
		slog.String("collection", collection),
	)
	return s, nil
}

// buildPipeline constructs the ingest pipeline from environment configuration.
func buildPipeline(emb rag.Embedder, s rag.VectorStore, log *slog.Logger) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(emb, s, &ingestion.Config{
		ChunkSize:    getEnvInt("CHUNK_SIZE", 0),
		ChunkOverlap: getEnvInt("CHUNK_OVERLAP", 0),
		BatchSize:    getEnvInt("UPSERT_BATCH_SIZE", 0),
		ClearPolicy:  ingestion.ClearPolicy(getEnvOrDefault("CLEAR_POLICY", "")),
		Logger:       log,
	})
}

// buildAnswerer wires the retriever and generation backend into an Answerer.
func buildAnswerer(ctx context.Context, emb rag.Embedder, s rag.VectorStore, log *slog.Logger) (*generator.Answerer, error) {
	retriever, err := rag.NewRetriever(emb, s, getEnvInt("TOP_K", 0))
	if err != nil {
		return nil, fmt.Errorf("failed to create retriever: %w", err)
	}

	gen, err := generator.NewFromEnv(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise generator: %w", err)
	}
	log.Info("generator initialised",
		slog.String("provider", getEnvOrDefault("GENERATION_PROVIDER", "gemini")),
	)

	return generator.NewAnswerer(retriever, gen)
}

// openHistory opens the activity history store. DOCUCHAT_HISTORY_DB overrides
// the default path (~/.docuchat/history.db); set to "disabled" to disable.
// Returns nil when history is unavailable — history is always best-effort.
func openHistory(log *slog.Logger) *store.SQLiteStore {
	dbPath := os.Getenv("DOCUCHAT_HISTORY_DB")
	if dbPath == "disabled" {
		log.Info("history: disabled via DOCUCHAT_HISTORY_DB=disabled")
		return nil
	}
	if dbPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			log.Warn("history: could not resolve default DB path, disabling", slog.Any("error", err))
			return nil
		}
		dbPath = p
	}

	hs, err := store.Open(dbPath)
	if err != nil {
		log.Warn("history: failed to open store, disabling", slog.Any("error", err))
		return nil
	}
	log.Info("history: store opened", slog.String("path", dbPath))
	return hs
}
