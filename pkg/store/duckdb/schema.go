package duckdb

import "fmt"

// Schema contains table creation statements for all required tables

// CreateBarsTable creates the daily OHLC fact table
const CreateBarsTable = `
CREATE TABLE IF NOT EXISTS bars (
    symbol VARCHAR NOT NULL,
    date TIMESTAMP NOT NULL,
    open DOUBLE,
    high DOUBLE,
    low DOUBLE,
    close DOUBLE,
    PRIMARY KEY (symbol, date)
);
`

// CreateMetricRowsTable creates the derived metric table. One row per
// bar per (lookback, horizon) pair.
const CreateMetricRowsTable = `
CREATE TABLE IF NOT EXISTS metric_rows (
    symbol VARCHAR NOT NULL,
    date TIMESTAMP NOT NULL,
    lookback INTEGER NOT NULL,
    horizon INTEGER NOT NULL,
    trailing_high DOUBLE,
    days_since_high INTEGER,
    pct_from_high DOUBLE,
    trailing_low DOUBLE,
    days_since_low INTEGER,
    pct_from_low DOUBLE,
    forward_high DOUBLE,
    fwd_pct_from_high DOUBLE,
    forward_low DOUBLE,
    fwd_pct_from_low DOUBLE,
    PRIMARY KEY (symbol, date, lookback, horizon)
);

CREATE INDEX IF NOT EXISTS idx_metric_rows_symbol ON metric_rows(symbol);
`

// InitializeSchema creates all required tables
func InitializeSchema(c *Client) error {
	schemas := []string{
		CreateBarsTable,
		CreateMetricRowsTable,
	}

	for _, schema := range schemas {
		if err := c.Exec(schema); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// DropAllTables drops all tables (use with caution)
func DropAllTables(c *Client) error {
	tables := []string{"metric_rows", "bars"}
	for _, table := range tables {
		if err := c.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}
