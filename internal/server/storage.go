package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"typingracer/internal/broadcast"
	"typingracer/internal/config"
	"typingracer/internal/db"
	"typingracer/internal/leaderboard"
	"typingracer/internal/model"
	"typingracer/internal/results"
	"typingracer/internal/texts"
	"typingracer/internal/wshub"
)

func loadCatalog(path string) (*texts.Catalog, error) {
	if path == "" {
		return texts.Default()
	}
	c, err := texts.LoadFile(path)
	if err != nil {
		return nil, err
	}
	log.Printf("[Texts] Loaded catalog from %s\n", path)
	return c, nil
}

type storage interface {
	results.Repository
	Pinger
}

// openStorage connects the configured results backend and applies its
// migrations. The returned close func is never nil.
func openStorage(ctx context.Context, cfg config.Config) (storage, func() error, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		log.Println("[DB] STORAGE_BACKEND=memory, results are not persisted")
		return results.NewMemoryRepository(), func() error { return nil }, nil
	case config.BackendPostgres, config.BackendSQLite:
		database, err := db.Connect(ctx, cfg.StorageBackend, cfg.DatabaseURL, cfg.DatabaseName)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return nil, nil, err
		}
		return database, database.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}
}

// Migrate applies the schema for the configured backend and exits.
func Migrate(ctx context.Context, cfg config.Config) error {
	_, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	return closeStorage()
}

func subscribeSinks(b *broadcast.Broadcaster, hub *wshub.Hub, lb *leaderboard.Leaderboard) {
	b.Subscribe("feed", hub.PublishResult)
	if lb != nil {
		b.Subscribe("leaderboard", leaderboardSink(lb))
	}
}

func leaderboardSink(lb *leaderboard.Leaderboard) broadcast.Sink {
	return func(r model.Result) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := lb.RecordResult(ctx, r); err != nil {
			log.Printf("[Leaderboard] RecordResult error: %v\n", err)
		}
	}
}
