package model

import "fmt"

// DaySpan records the calendar-day gap between a bar and the most recent
// occurrence of a window extreme. Complete is false while the trailing
// window is still shorter than the configured lookback; Days stays 0 in
// that case so exports keep the zero-fill of the original dataset.
type DaySpan struct {
	Days     int  `json:"days"`
	Complete bool `json:"complete"`
}

// Value returns the exported day count (zero during warmup)
func (d DaySpan) Value() int {
	if !d.Complete {
		return 0
	}
	return d.Days
}

// Historical holds the trailing-window metric columns for one lookback.
// Every slice is row-aligned with the bars it was derived from.
type Historical struct {
	Lookback      int       `json:"lookback"`
	High          []float64 `json:"high"`
	Low           []float64 `json:"low"`
	DaysSinceHigh []DaySpan `json:"days_since_high"`
	DaysSinceLow  []DaySpan `json:"days_since_low"`
	PctFromHigh   []float64 `json:"pct_from_high"`
	PctFromLow    []float64 `json:"pct_from_low"`
}

// Forward holds the leading-window metric columns for one horizon.
type Forward struct {
	Horizon     int       `json:"horizon"`
	High        []float64 `json:"high"`
	Low         []float64 `json:"low"`
	PctFromHigh []float64 `json:"pct_from_high"`
	PctFromLow  []float64 `json:"pct_from_low"`
}

// Annotated is the fully derived table: the original bars plus the
// historical and forward metric columns, aligned by row position. Stages
// only ever append columns; bars are never mutated or reordered.
type Annotated struct {
	Symbol     string      `json:"symbol"`
	Bars       []Bar       `json:"bars"`
	Historical *Historical `json:"historical,omitempty"`
	Forward    *Forward    `json:"forward,omitempty"`
}

// Len returns the number of rows in the table
func (a *Annotated) Len() int {
	return len(a.Bars)
}

// Column name templates matching the original export layout
func TrailingHighColumn(w int) string {
	return fmt.Sprintf("High_Last_%d_Days", w)
}

func DaysSinceHighColumn(w int) string {
	return fmt.Sprintf("Days_Since_High_Last_%d_Days", w)
}

func PctFromHighColumn(w int) string {
	return fmt.Sprintf("%%_Diff_From_High_Last_%d_Days", w)
}

func TrailingLowColumn(w int) string {
	return fmt.Sprintf("Low_Last_%d_Days", w)
}

func DaysSinceLowColumn(w int) string {
	return fmt.Sprintf("Days_Since_Low_Last_%d_Days", w)
}

func PctFromLowColumn(w int) string {
	return fmt.Sprintf("%%_Diff_From_Low_Last_%d_Days", w)
}

func ForwardHighColumn(v int) string {
	return fmt.Sprintf("High_Next_%d_Days", v)
}

func FwdPctFromHighColumn(v int) string {
	return fmt.Sprintf("%%_Diff_From_High_Next_%d_Days", v)
}

func ForwardLowColumn(v int) string {
	return fmt.Sprintf("Low_Next_%d_Days", v)
}

func FwdPctFromLowColumn(v int) string {
	return fmt.Sprintf("%%_Diff_From_Low_Next_%d_Days", v)
}

// Header returns the flat column names for export, base columns first,
// then historical and forward columns in derivation order.
func (a *Annotated) Header() []string {
	header := []string{"Date", "Open", "High", "Low", "Close"}
	if h := a.Historical; h != nil {
		header = append(header,
			TrailingHighColumn(h.Lookback),
			DaysSinceHighColumn(h.Lookback),
			PctFromHighColumn(h.Lookback),
			TrailingLowColumn(h.Lookback),
			DaysSinceLowColumn(h.Lookback),
			PctFromLowColumn(h.Lookback),
		)
	}
	if f := a.Forward; f != nil {
		header = append(header,
			ForwardHighColumn(f.Horizon),
			FwdPctFromHighColumn(f.Horizon),
			ForwardLowColumn(f.Horizon),
			FwdPctFromLowColumn(f.Horizon),
		)
	}
	return header
}

// Row returns the export values for row i, in Header order
func (a *Annotated) Row(i int) []interface{} {
	b := a.Bars[i]
	row := []interface{}{
		b.Date.UTC().Format("2006-01-02"),
		b.Open, b.High, b.Low, b.Close,
	}
	if h := a.Historical; h != nil {
		row = append(row,
			h.High[i],
			h.DaysSinceHigh[i].Value(),
			h.PctFromHigh[i],
			h.Low[i],
			h.DaysSinceLow[i].Value(),
			h.PctFromLow[i],
		)
	}
	if f := a.Forward; f != nil {
		row = append(row,
			f.High[i],
			f.PctFromHigh[i],
			f.Low[i],
			f.PctFromLow[i],
		)
	}
	return row
}
