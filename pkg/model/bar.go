package model

import "time"

// Bar represents a single daily OHLC record
type Bar struct {
	Date  time.Time `json:"date"`
	Open  float64   `json:"open"`
	High  float64   `json:"high"`
	Low   float64   `json:"low"`
	Close float64   `json:"close"`
}

// Day returns the bar's date truncated to midnight UTC
func (b *Bar) Day() time.Time {
	y, m, d := b.Date.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Returns calculates the percentage return of this bar
func (b *Bar) Returns() float64 {
	if b.Open == 0 {
		return 0
	}
	return (b.Close - b.Open) / b.Open
}

// Range calculates the high-low range as a percentage of open
func (b *Bar) Range() float64 {
	if b.Open == 0 {
		return 0
	}
	return (b.High - b.Low) / b.Open
}

// IsBullish returns true if close > open
func (b *Bar) IsBullish() bool {
	return b.Close > b.Open
}

// IsBearish returns true if close < open
func (b *Bar) IsBearish() bool {
	return b.Close < b.Open
}

// DaysBetween returns the whole calendar days from earlier to later
func DaysBetween(earlier, later time.Time) int {
	e := time.Date(earlier.UTC().Year(), earlier.UTC().Month(), earlier.UTC().Day(), 0, 0, 0, 0, time.UTC)
	l := time.Date(later.UTC().Year(), later.UTC().Month(), later.UTC().Day(), 0, 0, 0, 0, time.UTC)
	return int(l.Sub(e) / (24 * time.Hour))
}
