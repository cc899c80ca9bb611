package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"typingracer/internal/leaderboard"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

// Ranker is the read side of the leaderboard.
type Ranker interface {
	Top(ctx context.Context, limit int64) ([]leaderboard.Entry, error)
	Rank(ctx context.Context, userID string) (*leaderboard.Entry, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	summary, err := s.Stats.GetStats(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		s.storageFailure(w, err, "Error fetching stats: ")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.Leaderboard == nil {
		writeError(w, http.StatusServiceUnavailable, "Leaderboard requires a Redis connection")
		return
	}

	limit := defaultLeaderboardLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusUnprocessableEntity, "limit must be a positive integer")
			return
		}
		limit = min(n, maxLeaderboardLimit)
	}

	entries, err := s.Leaderboard.Top(r.Context(), int64(limit))
	if err != nil {
		s.storageFailure(w, err, "Error fetching leaderboard: ")
		return
	}
	if entries == nil {
		entries = []leaderboard.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleLeaderboardUser(w http.ResponseWriter, r *http.Request) {
	if s.Leaderboard == nil {
		writeError(w, http.StatusServiceUnavailable, "Leaderboard requires a Redis connection")
		return
	}

	entry, err := s.Leaderboard.Rank(r.Context(), r.PathValue("user_id"))
	if errors.Is(err, leaderboard.ErrNotRanked) {
		writeError(w, http.StatusNotFound, "User has no ranked results")
		return
	}
	if err != nil {
		s.storageFailure(w, err, "Error fetching leaderboard: ")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
