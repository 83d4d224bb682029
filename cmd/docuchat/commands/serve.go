package commands

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/docuchat/docuchat-go/internal/embedder"
	"github.com/docuchat/docuchat-go/internal/logging"
	"github.com/docuchat/docuchat-go/internal/server"
)

// NewServeCmd constructs the `docuchat serve` command, which starts the HTTP
// server exposing document upload and chat.
func NewServeCmd() *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the DocuChat HTTP server",
		Long: `Start the DocuChat HTTP server on localhost.

The server exposes:
  POST /api/upload   index a document (replaces the previous one)
  POST /api/chat     ask a question about the indexed document
  GET  /api/health   liveness probe
  GET  /api/ready    readiness probe (checks Qdrant)
  GET  /metrics      Prometheus metrics

Examples:
  docuchat serve
  docuchat serve --port 9090
  EMBEDDING_PROVIDER=ollama docuchat serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log := logging.New()
			ctx = logging.WithLogger(ctx, log)

			host, port = resolveListenAddr(host, port,
				cmd.Flags().Changed("host"), cmd.Flags().Changed("port"))

			log.Info("serve starting",
				slog.String("embedding_provider", embedder.Backend()),
				slog.String("generation_provider", getEnvOrDefault("GENERATION_PROVIDER", "gemini")),
			)

			if err := embedder.Validate(log); err != nil {
				return fmt.Errorf("serve: %w", err)
			}

			emb, err := embedder.NewFromEnv(ctx)
			if err != nil {
				return fmt.Errorf("serve: failed to initialise embedder: %w", err)
			}
			log.Info("embedder initialised", slog.String("provider", embedder.Backend()))

			vectorStore, err := buildStore(ctx, log)
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			defer vectorStore.Close()

			pipeline, err := buildPipeline(emb, vectorStore, log)
			if err != nil {
				return fmt.Errorf("serve: failed to create pipeline: %w", err)
			}

			answerer, err := buildAnswerer(ctx, emb, vectorStore, log)
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}

			history := openHistory(log)
			if history != nil {
				defer func() { _ = history.Close() }()
			}

			pingers := []server.Pinger{server.NewQdrantPinger(vectorStore)}
			// Each embedder probe costs an embed call, so it is opt-in.
			if os.Getenv("DOCUCHAT_PROBE_EMBEDDER") == "true" {
				pingers = append(pingers, server.NewEmbedderPinger(emb, embedder.Backend()))
			}

			cfg := &server.Config{
				Host:    host,
				Port:    port,
				Logger:  logging.WithComponent(log, "http"),
				Pingers: pingers,
				APIKey:  os.Getenv("DOCUCHAT_API_KEY"),
			}
			if history != nil {
				cfg.History = history
			}

			srv, err := server.New(pipeline, answerer, cfg)
			if err != nil {
				return fmt.Errorf("serve: failed to create server: %w", err)
			}

			return srv.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "Host address to bind to")
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "TCP port to listen on")

	return cmd
}
