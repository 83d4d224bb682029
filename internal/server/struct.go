package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/docuchat/docuchat-go/internal/generator"
	"github.com/docuchat/docuchat-go/internal/ingestion"
	"github.com/docuchat/docuchat-go/internal/store"
)

// Config holds the HTTP server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1).
	Host string
	// Port is the TCP port to listen on (default: 8080).
	Port int
	// ReadTimeout is the maximum duration for reading the request.
	ReadTimeout time.Duration
	// WriteTimeout is the maximum duration for writing the response.
	// Must be long enough for an embed-and-upsert ingest of a large document.
	WriteTimeout time.Duration
	// ShutdownTimeout is the maximum duration for a graceful shutdown.
	ShutdownTimeout time.Duration
	// Logger is the structured logger used by the server and its handlers.
	// If nil, [logging.New] is used.
	Logger *slog.Logger
	// Pingers is the ordered list of dependency probes run by GET /api/ready.
	// If empty, /api/ready returns 200 with no checks (liveness-only mode).
	Pingers []Pinger
	// RateLimit is the sustained request rate allowed per IP on rate-limited
	// endpoints (requests/second). Defaults to 10 if zero.
	RateLimit float64
	// RateBurst is the maximum instantaneous burst per IP. Defaults to 20 if zero.
	RateBurst int
	// APIKey is the Bearer token required on POST /api/upload and /api/chat.
	// If empty, authentication is disabled (development mode).
	APIKey string
	// History records ingest and question activity. If nil, history is disabled.
	History store.HistoryStore
	// MetricsRegistry receives the server's Prometheus metrics. Defaults to
	// prometheus.DefaultRegisterer.
	MetricsRegistry prometheus.Registerer
	// MetricsGatherer backs the GET /metrics endpoint. Defaults to
	// prometheus.DefaultGatherer.
	MetricsGatherer prometheus.Gatherer
}

// ingester is the interface handleUpload calls to index a document.
// *ingestion.Pipeline satisfies it; tests inject a fake.
type ingester interface {
	// Ingest chunks, embeds, and indexes rawText under documentName.
	Ingest(ctx context.Context, documentName, rawText string) (ingestion.Result, error)
}

// answerer is the interface handleChat calls to answer a question.
// *generator.Answerer satisfies it; tests inject a fake.
type answerer interface {
	// Ask retrieves context for question and generates a grounded answer.
	Ask(ctx context.Context, question string) (generator.Answer, error)
}

// Server is the HTTP server that exposes document upload and chat.
type Server struct {
	// ingester indexes uploaded documents.
	ingester ingester
	// answerer answers questions against the indexed documents.
	answerer answerer
	// cfg holds the resolved server configuration.
	cfg *Config
	// httpServer is the underlying net/http server.
	httpServer *http.Server
	// log is the structured logger for this server instance.
	log *slog.Logger
	// pingers is the ordered list of dependency probes for GET /api/ready.
	pingers []Pinger
	// history records activity; nil when history is disabled.
	history store.HistoryStore
	// metrics holds the Prometheus instruments owned by this server.
	metrics *serverMetrics
	// stopRL stops the rate limiter's background eviction goroutine on shutdown.
	stopRL func()
}

// uploadRequest is the JSON body for POST /api/upload.
type uploadRequest struct {
	// Text is the raw document text to index.
	Text string `json:"text"`
	// FileName is the logical document name the text is indexed under.
	FileName string `json:"fileName"`
}

// uploadResponse is the JSON response for POST /api/upload.
type uploadResponse struct {
	// Success is true when the document was fully indexed.
	Success bool `json:"success"`
	// Message is a human-readable confirmation.
	Message string `json:"message"`
	// Chunks is how many chunks the document split into.
	Chunks int `json:"chunks"`
	// ChunksWritten is how many chunks were actually written to the index.
	ChunksWritten int `json:"chunksWritten"`
}

// chatRequest is the JSON body for POST /api/chat.
type chatRequest struct {
	// Message is the user's question.
	Message string `json:"message"`
}

// chatResponse is the JSON response for POST /api/chat.
type chatResponse struct {
	// Response is the generated answer text.
	Response string `json:"response"`
	// Sources is the deduplicated list of document names the answer drew on.
	Sources []string `json:"sources"`
}

// errorResponse is the JSON body for all error statuses.
type errorResponse struct {
	// Error is the human-readable failure reason.
	Error string `json:"error"`
}
