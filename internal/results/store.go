package results

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"typingracer/internal/events"
	"typingracer/internal/model"
)

// Repository is the append-only persistence backend for results.
type Repository interface {
	InsertResult(ctx context.Context, r model.Result) error
	// RecentResults returns up to limit of the most recently inserted results,
	// oldest first. An empty userID matches every result.
	RecentResults(ctx context.Context, userID string, limit int) ([]model.Result, error)
}

type Store struct {
	repo  Repository
	bus   *events.Bus // nil disables event publishing
	now   func() time.Time
	newID func() (uuid.UUID, error)
}

func NewStore(repo Repository, bus *events.Bus) *Store {
	return &Store{
		repo:  repo,
		bus:   bus,
		now:   time.Now,
		newID: uuid.NewRandom,
	}
}

// Save assigns an id and receipt time and persists the result in a single
// insert. Any backend failure is returned as a *model.StorageError.
func (s *Store) Save(ctx context.Context, in Input) (string, error) {
	id, err := s.newID()
	if err != nil {
		return "", &model.StorageError{Op: "save", Err: fmt.Errorf("generating result id: %w", err)}
	}

	rec := in.record(id.String(), s.now().UTC())
	if err := s.repo.InsertResult(ctx, rec); err != nil {
		return "", &model.StorageError{Op: "save", Err: err}
	}

	if s.bus != nil && !s.bus.PublishResult(rec) {
		log.Printf("[Results] Event buffer full, dropping result %s\n", rec.ResultID)
	}
	return rec.ResultID, nil
}
