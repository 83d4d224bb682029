package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/docuchat/docuchat-go/internal/logging"
	"github.com/docuchat/docuchat-go/internal/rag"
	"github.com/docuchat/docuchat-go/internal/store"
)

// handleUpload handles POST /api/upload. It runs the full ingest pipeline
// (chunk, embed, index) for the submitted document text and reports how many
// chunks were produced and written.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())
	start := time.Now()

	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.ingestRequestsTotal.WithLabelValues(outcomeError).Inc()
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := s.ingester.Ingest(r.Context(), req.FileName, req.Text)
	if err != nil {
		status, outcome := classifyError(err)
		s.metrics.ingestRequestsTotal.WithLabelValues(outcome).Inc()
		s.metrics.ingestDurationSeconds.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
		log.Error("upload failed",
			slog.String("document", req.FileName),
			slog.Any("error", err),
		)
		writeError(w, status, err.Error())
		return
	}

	elapsed := time.Since(start)
	s.metrics.ingestRequestsTotal.WithLabelValues(outcomeOK).Inc()
	s.metrics.ingestDurationSeconds.WithLabelValues(outcomeOK).Observe(elapsed.Seconds())
	s.metrics.ingestChunksWrittenTotal.Add(float64(res.ChunksWritten))

	if s.history != nil {
		if err := s.history.RecordIngest(r.Context(), store.IngestRecord{
			DocumentName:   req.FileName,
			ChunksProduced: res.ChunksProduced,
			ChunksWritten:  res.ChunksWritten,
			Duration:       elapsed,
		}); err != nil {
			// History is best-effort; the ingest itself succeeded.
			log.Warn("history: record ingest failed", slog.Any("error", err))
		}
	}

	log.Info("document ingested",
		slog.String("document", req.FileName),
		slog.Int("chunks", res.ChunksProduced),
		slog.Int("chunks_written", res.ChunksWritten),
		slog.Duration("duration", elapsed),
	)

	writeJSON(w, http.StatusOK, uploadResponse{
		Success:       true,
		Message:       fmt.Sprintf("Successfully processed %q", req.FileName),
		Chunks:        res.ChunksProduced,
		ChunksWritten: res.ChunksWritten,
	})
}

// classifyError maps pipeline errors to an HTTP status and metric outcome.
// Validation failures are the caller's fault (400); embedding and index
// failures are upstream dependency faults (502).
func classifyError(err error) (status int, outcome string) {
	var verr *rag.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, outcomeInvalid
	}
	var eerr *rag.EmbeddingError
	if errors.As(err, &eerr) {
		return http.StatusBadGateway, outcomeUpstream
	}
	var ierr *rag.IndexError
	if errors.As(err, &ierr) {
		return http.StatusBadGateway, outcomeUpstream
	}
	return http.StatusInternalServerError, outcomeError
}
