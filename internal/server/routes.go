package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"typingracer/internal/analytics"
	"typingracer/internal/broadcast"
	"typingracer/internal/config"
	"typingracer/internal/events"
	"typingracer/internal/leaderboard"
	"typingracer/internal/metrics"
	"typingracer/internal/results"
	"typingracer/internal/wshub"
)

func Run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := loadCatalog(cfg.CatalogFile)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	repo, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer closeStorage()

	bus := events.NewBus()
	hub := wshub.NewHub()

	// Optional leaderboard
	var lb *leaderboard.Leaderboard
	if cfg.RedisURL != "" {
		lb, err = leaderboard.Connect(ctx, cfg.RedisURL, leaderboard.DefaultPrefix)
		if err != nil {
			log.Printf("[Leaderboard] Failed to connect: %v (running without leaderboard)\n", err)
			lb = nil
		} else {
			defer lb.Close()
		}
	} else {
		log.Println("[Leaderboard] REDIS_URL not set, running without leaderboard")
	}
	subscribeSinks(broadcast.NewBroadcaster(bus), hub, lb)

	srv := New(
		catalog,
		results.NewStore(repo, bus),
		analytics.NewQueries(repo, cfg.StatsWindow),
		hub,
		metrics.New(),
	)
	srv.Storage = repo
	if lb != nil {
		srv.Leaderboard = lb
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	httpServer.RegisterOnShutdown(srv.CloseFeeds)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening on http://%s\n", cfg.Addr())
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// Handler returns the full API: routes, metrics and CORS.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /api/practice-text", s.handlePracticeText)
	mux.HandleFunc("POST /api/results", s.handleSaveResult)
	mux.HandleFunc("GET /api/results/live", s.handleFeed)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /api/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("GET /api/leaderboard/{user_id}", s.handleLeaderboardUser)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.Metrics.Handler())
	mux.HandleFunc("/", s.handleNotFound)

	return corsMiddleware(s.Metrics.Instrument(mux))
}

// corsMiddleware allows any origin, with credentials, and answers
// preflight requests directly.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		if origin := r.Header.Get("Origin"); origin != "" {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		} else {
			h.Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == http.MethodOptions {
			h.Set("Access-Control-Allow-Methods", "DELETE, GET, HEAD, OPTIONS, PATCH, POST, PUT")
			if req := r.Header.Get("Access-Control-Request-Headers"); req != "" {
				h.Set("Access-Control-Allow-Headers", req)
			}
			h.Set("Access-Control-Max-Age", "600")
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
