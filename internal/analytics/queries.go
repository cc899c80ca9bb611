package analytics

import (
	"context"
	"strings"

	"typingracer/internal/model"
)

// Reader is the read side of the result store.
type Reader interface {
	RecentResults(ctx context.Context, userID string, limit int) ([]model.Result, error)
}

type Queries struct {
	Results Reader
	Window  int
}

func NewQueries(results Reader, window int) *Queries {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Queries{Results: results, Window: window}
}

// GetStats summarizes the latest Window results, optionally for one user.
// An unknown user yields the zero summary rather than an error.
func (q *Queries) GetStats(ctx context.Context, userID string) (Summary, error) {
	records, err := q.Results.RecentResults(ctx, strings.TrimSpace(userID), q.Window)
	if err != nil {
		return Summary{}, &model.StorageError{Op: "stats", Err: err}
	}
	return Summarize(records, RecentLimit), nil
}
