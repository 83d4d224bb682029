package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/docuchat/docuchat-go/internal/logging"
	"github.com/docuchat/docuchat-go/internal/store"
)

// handleChat handles POST /api/chat. It retrieves context for the question,
// generates a grounded answer, and returns it with the source document names.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())
	start := time.Now()

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.chatRequestsTotal.WithLabelValues(outcomeError).Inc()
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ans, err := s.answerer.Ask(r.Context(), req.Message)
	if err != nil {
		status, outcome := classifyError(err)
		s.metrics.chatRequestsTotal.WithLabelValues(outcome).Inc()
		s.metrics.chatDurationSeconds.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
		log.Error("chat failed", slog.Any("error", err))
		writeError(w, status, err.Error())
		return
	}

	elapsed := time.Since(start)
	s.metrics.chatRequestsTotal.WithLabelValues(outcomeOK).Inc()
	s.metrics.chatDurationSeconds.WithLabelValues(outcomeOK).Observe(elapsed.Seconds())

	if s.history != nil {
		if err := s.history.RecordQuestion(r.Context(), store.QuestionRecord{
			Question: req.Message,
			Sources:  ans.Sources,
		}); err != nil {
			log.Warn("history: record question failed", slog.Any("error", err))
		}
	}

	log.Info("question answered",
		slog.Int("sources", len(ans.Sources)),
		slog.Duration("duration", elapsed),
	)

	sources := ans.Sources
	if sources == nil {
		// Keep the JSON field an array, never null.
		sources = []string{}
	}
	writeJSON(w, http.StatusOK, chatResponse{Response: ans.Response, Sources: sources})
}
