package data

import (
	"context"
	"time"

	"github.com/nvetrov/extrema/pkg/model"
)

// BarProvider defines the interface for fetching historical daily OHLC
// data for a trading pair
type BarProvider interface {
	// FetchBars retrieves daily bars for a pair from the start date to
	// the present, ordered by date (oldest first)
	FetchBars(ctx context.Context, pair string, start time.Time) ([]model.Bar, error)
}
