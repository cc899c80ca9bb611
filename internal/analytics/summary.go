package analytics

import (
	"github.com/shopspring/decimal"

	"typingracer/internal/model"
)

// Summarize aggregates an already bounded window of results. The last
// `recent` entries of the window are returned as RecentResults.
func Summarize(records []model.Result, recent int) Summary {
	if len(records) == 0 {
		return Summary{}
	}

	wpmSum := decimal.Zero
	accSum := decimal.Zero
	for _, r := range records {
		wpmSum = wpmSum.Add(decimal.NewFromFloat(r.WPM))
		accSum = accSum.Add(decimal.NewFromFloat(r.Accuracy))
	}

	start := max(len(records)-recent, 0)
	tail := make([]model.Result, len(records)-start)
	copy(tail, records[start:])

	return Summary{
		TotalSessions:   len(records),
		AverageWPM:      mean(wpmSum, len(records)),
		AverageAccuracy: mean(accSum, len(records)),
		RecentResults:   tail,
	}
}

// mean rounds half away from zero at two decimal places.
func mean(sum decimal.Decimal, n int) float64 {
	return sum.Div(decimal.NewFromInt(int64(n))).Round(2).InexactFloat64()
}
