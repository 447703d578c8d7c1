// Package series turns raw OHLC rows into a clean chronological bar series.
package series

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/nvetrov/extrema/pkg/model"
)

// ErrBadDate is returned when a record's date cannot be parsed
var ErrBadDate = errors.New("unparseable date")

// Record is one raw OHLC row as delivered by an upstream source. Prices
// may be NaN when the source had gaps; they pass through untouched.
type Record struct {
	Date  string  `json:"date"`
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}

// dateLayouts are tried in order when parsing record dates
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// ParseDate parses a raw date string using the supported layouts
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, s)
}

// Normalize parses and orders raw records into a chronological bar series.
// The result is sorted ascending by date with duplicate calendar dates
// collapsed to the last occurrence. The input is never modified. A single
// malformed date fails the whole call.
func Normalize(records []Record) ([]model.Bar, error) {
	bars := make([]model.Bar, 0, len(records))
	for _, r := range records {
		date, err := ParseDate(r.Date)
		if err != nil {
			return nil, err
		}
		bars = append(bars, model.Bar{
			Date:  date,
			Open:  r.Open,
			High:  r.High,
			Low:   r.Low,
			Close: r.Close,
		})
	}
	return Sort(bars), nil
}

// Sort returns a new slice of bars sorted ascending by date, with
// duplicate calendar dates collapsed to the last occurrence in input
// order. Pure: the input slice is left untouched.
func Sort(bars []model.Bar) []model.Bar {
	sorted := make([]model.Bar, len(bars))
	copy(sorted, bars)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	out := sorted[:0]
	for _, b := range sorted {
		if len(out) > 0 && out[len(out)-1].Day().Equal(b.Day()) {
			out[len(out)-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}
