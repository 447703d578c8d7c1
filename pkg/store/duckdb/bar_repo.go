package duckdb

import (
	"context"
	"fmt"
	"time"

	"github.com/nvetrov/extrema/pkg/model"
)

// BarRepo handles daily bar persistence
type BarRepo struct {
	client *Client
}

// NewBarRepo creates a new bar repository
func NewBarRepo(client *Client) *BarRepo {
	return &BarRepo{client: client}
}

const upsertBar = `
	INSERT INTO bars (symbol, date, open, high, low, close)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT (symbol, date) DO UPDATE SET
		open = EXCLUDED.open,
		high = EXCLUDED.high,
		low = EXCLUDED.low,
		close = EXCLUDED.close
`

// Insert inserts a single bar
func (r *BarRepo) Insert(ctx context.Context, symbol string, b *model.Bar) error {
	return r.client.Exec(upsertBar, symbol, b.Date.UTC(), b.Open, b.High, b.Low, b.Close)
}

// InsertBatch inserts multiple bars in a transaction
func (r *BarRepo) InsertBatch(ctx context.Context, symbol string, bars []model.Bar) error {
	tx, err := r.client.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(upsertBar)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.Exec(symbol, b.Date.UTC(), b.Open, b.High, b.Low, b.Close); err != nil {
			return fmt.Errorf("failed to insert bar: %w", err)
		}
	}

	return tx.Commit()
}

// GetByDateRange retrieves bars within a date range, oldest first
func (r *BarRepo) GetByDateRange(ctx context.Context, symbol string, start, end time.Time) ([]model.Bar, error) {
	query := `
		SELECT date, open, high, low, close
		FROM bars
		WHERE symbol = ? AND date >= ? AND date <= ?
		ORDER BY date ASC
	`

	rows, err := r.client.Query(query, symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query bars: %w", err)
	}
	defer rows.Close()

	var bars []model.Bar
	for rows.Next() {
		var b model.Bar
		if err := rows.Scan(&b.Date, &b.Open, &b.High, &b.Low, &b.Close); err != nil {
			return nil, fmt.Errorf("failed to scan bar: %w", err)
		}
		bars = append(bars, b)
	}

	return bars, rows.Err()
}

// GetAll retrieves the full history for a symbol, oldest first
func (r *BarRepo) GetAll(ctx context.Context, symbol string) ([]model.Bar, error) {
	return r.GetByDateRange(ctx, symbol, time.Time{}, time.Now().AddDate(1, 0, 0))
}

// Count returns the number of stored bars for a symbol
func (r *BarRepo) Count(ctx context.Context, symbol string) (int64, error) {
	var count int64
	row := r.client.QueryRow("SELECT COUNT(*) FROM bars WHERE symbol = ?", symbol)
	err := row.Scan(&count)
	return count, err
}
