package analytics

import "typingracer/internal/model"

const (
	DefaultWindow = 100
	RecentLimit   = 10
)

// Summary is the aggregate returned by /api/stats. RecentResults is omitted
// from JSON when no sessions matched.
type Summary struct {
	TotalSessions   int            `json:"total_sessions"`
	AverageWPM      float64        `json:"average_wpm"`
	AverageAccuracy float64        `json:"average_accuracy"`
	RecentResults   []model.Result `json:"recent_results,omitempty"`
}
