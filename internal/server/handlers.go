package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"typingracer/internal/analytics"
	"typingracer/internal/metrics"
	"typingracer/internal/model"
	"typingracer/internal/results"
	"typingracer/internal/texts"
	"typingracer/internal/wshub"
)

const maxResultBody = 1 << 20

type Server struct {
	Catalog     *texts.Catalog
	Results     *results.Store
	Stats       *analytics.Queries
	Hub         *wshub.Hub
	Metrics     *metrics.Metrics
	Leaderboard Ranker // nil if REDIS_URL not configured
	Storage     Pinger // nil skips the storage check in /health

	closing   chan struct{}
	closeOnce sync.Once
}

func New(catalog *texts.Catalog, store *results.Store, stats *analytics.Queries, hub *wshub.Hub, m *metrics.Metrics) *Server {
	return &Server{
		Catalog: catalog,
		Results: store,
		Stats:   stats,
		Hub:     hub,
		Metrics: m,
		closing: make(chan struct{}),
	}
}

// CloseFeeds ends every open live feed connection.
func (s *Server) CloseFeeds() {
	s.closeOnce.Do(func() { close(s.closing) })
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println(err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "AI-Powered Typing Racer API"})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not Found")
}

func (s *Server) handlePracticeText(w http.ResponseWriter, r *http.Request) {
	text := s.Catalog.PracticeText(r.URL.Query().Get("difficulty"))
	s.Metrics.TextsServed.WithLabelValues(string(text.Difficulty)).Inc()
	writeJSON(w, http.StatusOK, text)
}

func (s *Server) handleSaveResult(w http.ResponseWriter, r *http.Request) {
	in, err := results.Decode(http.MaxBytesReader(w, r.Body, maxResultBody))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.Results.Save(r.Context(), in)
	if err != nil {
		s.storageFailure(w, err, "Error saving result: ")
		return
	}
	s.Metrics.ResultsSaved.Inc()

	writeJSON(w, http.StatusOK, map[string]string{
		"message":   "Result saved successfully",
		"result_id": id,
	})
}

// storageFailure answers 500 with the backend's own description of the
// failure, prefixed by what was being attempted.
func (s *Server) storageFailure(w http.ResponseWriter, err error, prefix string) {
	op := "unknown"
	cause := err
	var se *model.StorageError
	if errors.As(err, &se) {
		op = se.Op
		cause = se.Err
	}
	s.Metrics.StorageErrors.WithLabelValues(op).Inc()
	log.Printf("[DB] %s failed: %v\n", op, cause)
	writeError(w, http.StatusInternalServerError, prefix+cause.Error())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.Storage != nil {
		if err := s.Storage.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "db_error",
				"error":  err.Error(),
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
