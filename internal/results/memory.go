package results

import (
	"context"
	"sync"

	"typingracer/internal/model"
)

// MemoryRepository keeps results in process memory. Nothing survives a
// restart; it backs STORAGE_BACKEND=memory and tests.
type MemoryRepository struct {
	mu      sync.Mutex
	results []model.Result
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) InsertResult(_ context.Context, r model.Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, r)
	return nil
}

func (m *MemoryRepository) RecentResults(_ context.Context, userID string, limit int) ([]model.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []model.Result
	for i := len(m.results) - 1; i >= 0 && len(matched) < limit; i-- {
		r := m.results[i]
		if userID != "" && r.Owner() != userID {
			continue
		}
		matched = append(matched, r)
	}

	// collected newest first
	for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
		matched[i], matched[j] = matched[j], matched[i]
	}
	return matched, nil
}

func (m *MemoryRepository) Ping(context.Context) error {
	return nil
}

func (m *MemoryRepository) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.results)
}
