package duckdb

import (
	"context"
	"fmt"

	"github.com/nvetrov/extrema/pkg/model"
)

// MetricRepo handles derived metric row persistence
type MetricRepo struct {
	client *Client
}

// NewMetricRepo creates a new metric repository
func NewMetricRepo(client *Client) *MetricRepo {
	return &MetricRepo{client: client}
}

const upsertMetricRow = `
	INSERT INTO metric_rows (
		symbol, date, lookback, horizon,
		trailing_high, days_since_high, pct_from_high,
		trailing_low, days_since_low, pct_from_low,
		forward_high, fwd_pct_from_high, forward_low, fwd_pct_from_low
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (symbol, date, lookback, horizon) DO UPDATE SET
		trailing_high = EXCLUDED.trailing_high,
		days_since_high = EXCLUDED.days_since_high,
		pct_from_high = EXCLUDED.pct_from_high,
		trailing_low = EXCLUDED.trailing_low,
		days_since_low = EXCLUDED.days_since_low,
		pct_from_low = EXCLUDED.pct_from_low,
		forward_high = EXCLUDED.forward_high,
		fwd_pct_from_high = EXCLUDED.fwd_pct_from_high,
		forward_low = EXCLUDED.forward_low,
		fwd_pct_from_low = EXCLUDED.fwd_pct_from_low
`

// InsertAnnotated persists every row of a fully annotated table in one
// transaction. The table must carry both the historical and forward
// columns.
func (r *MetricRepo) InsertAnnotated(ctx context.Context, a *model.Annotated) error {
	h, f := a.Historical, a.Forward
	if h == nil || f == nil {
		return fmt.Errorf("annotated table for %s is missing derived columns", a.Symbol)
	}

	tx, err := r.client.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(upsertMetricRow)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, b := range a.Bars {
		_, err := stmt.Exec(
			a.Symbol, b.Date.UTC(), h.Lookback, f.Horizon,
			h.High[i], h.DaysSinceHigh[i].Value(), h.PctFromHigh[i],
			h.Low[i], h.DaysSinceLow[i].Value(), h.PctFromLow[i],
			f.High[i], f.PctFromHigh[i], f.Low[i], f.PctFromLow[i],
		)
		if err != nil {
			return fmt.Errorf("failed to insert metric row: %w", err)
		}
	}

	return tx.Commit()
}

// Count returns the number of stored metric rows for a symbol and
// parameter pair
func (r *MetricRepo) Count(ctx context.Context, symbol string, lookback, horizon int) (int64, error) {
	var count int64
	row := r.client.QueryRow(
		"SELECT COUNT(*) FROM metric_rows WHERE symbol = ? AND lookback = ? AND horizon = ?",
		symbol, lookback, horizon,
	)
	err := row.Scan(&count)
	return count, err
}
