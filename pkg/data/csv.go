package data

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/nvetrov/extrema/pkg/model"
	"github.com/nvetrov/extrema/pkg/series"
)

// CSVProvider implements BarProvider for local CSV files with a
// Date,Open,High,Low,Close header
type CSVProvider struct {
	filePath string
	bars     []model.Bar
	loaded   bool
}

// NewCSVProvider creates a new CSV-based bar provider
func NewCSVProvider(filePath string) *CSVProvider {
	return &CSVProvider{filePath: filePath}
}

// loadIfNeeded loads the CSV file if not already loaded
func (p *CSVProvider) loadIfNeeded() error {
	if p.loaded {
		return nil
	}

	file, err := os.Open(p.filePath)
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	colMap := make(map[string]int)
	for i, col := range header {
		colMap[col] = i
	}

	var records []series.Record
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV record: %w", err)
		}

		getValue := func(name string) string {
			if idx, ok := colMap[name]; ok && idx < len(record) {
				return record[idx]
			}
			return ""
		}

		records = append(records, series.Record{
			Date:  getValue("Date"),
			Open:  parsePrice(getValue("Open")),
			High:  parsePrice(getValue("High")),
			Low:   parsePrice(getValue("Low")),
			Close: parsePrice(getValue("Close")),
		})
	}

	bars, err := series.Normalize(records)
	if err != nil {
		return fmt.Errorf("failed to normalize CSV rows: %w", err)
	}

	p.bars = bars
	p.loaded = true
	return nil
}

// parsePrice parses a price cell; missing or malformed cells become NaN
// and pass through to the metric columns untouched
func parsePrice(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// FetchBars retrieves bars from the start date onward. The pair argument
// is ignored: one CSV file holds one pair's history.
func (p *CSVProvider) FetchBars(ctx context.Context, pair string, start time.Time) ([]model.Bar, error) {
	if err := p.loadIfNeeded(); err != nil {
		return nil, err
	}

	var result []model.Bar
	for _, b := range p.bars {
		if b.Date.Before(start) {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

// MemoryProvider implements BarProvider with in-memory bars
type MemoryProvider struct {
	bars []model.Bar
}

// NewMemoryProvider creates a new in-memory bar provider
func NewMemoryProvider(bars []model.Bar) *MemoryProvider {
	return &MemoryProvider{bars: bars}
}

// AddBars appends bars to the provider
func (p *MemoryProvider) AddBars(bars []model.Bar) {
	p.bars = append(p.bars, bars...)
}

// FetchBars retrieves bars from the start date onward, sorted
// chronologically
func (p *MemoryProvider) FetchBars(ctx context.Context, pair string, start time.Time) ([]model.Bar, error) {
	var result []model.Bar
	for _, b := range series.Sort(p.bars) {
		if b.Date.Before(start) {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}
