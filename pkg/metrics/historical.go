package metrics

import (
	"fmt"

	"github.com/nvetrov/extrema/pkg/model"
	"github.com/nvetrov/extrema/pkg/rolling"
)

// CalculateHistorical computes the trailing-window columns for lookback w.
// The window at row i spans rows [max(0,i-w+1), i], so the trailing
// high/low is defined for every row even before a full window exists.
// The days-since columns require a full window: for i < w-1 they carry an
// incomplete DaySpan whose exported value is the original zero-fill.
func CalculateHistorical(bars []model.Bar, w int) (*model.Historical, error) {
	if w < 1 {
		return nil, fmt.Errorf("lookback must be positive, got %d", w)
	}

	n := len(bars)
	h := &model.Historical{
		Lookback:      w,
		High:          make([]float64, n),
		Low:           make([]float64, n),
		DaysSinceHigh: make([]model.DaySpan, n),
		DaysSinceLow:  make([]model.DaySpan, n),
	}

	highs := rolling.NewMax(w)
	lows := rolling.NewMin(w)

	for i, b := range bars {
		highs.Push(b.High)
		lows.Push(b.Low)

		h.High[i] = extremeAt(highs, bars, i, w, h.DaysSinceHigh)
		h.Low[i] = extremeAt(lows, bars, i, w, h.DaysSinceLow)
	}

	closes := make([]float64, n)
	for i, b := range bars {
		closes[i] = b.Close
	}
	h.PctFromHigh = PctDiff(closes, h.High)
	h.PctFromLow = PctDiff(closes, h.Low)

	return h, nil
}

// extremeAt reads the current window extreme from the tracker and fills
// the days-since column for row i. Ties in the window resolve to the most
// recent occurrence, minimizing the day count.
func extremeAt(t *rolling.Tracker, bars []model.Bar, i, w int, spans []model.DaySpan) float64 {
	val, idx, ok := t.Extreme()
	if ok && i >= w-1 {
		spans[i] = model.DaySpan{
			Days:     model.DaysBetween(bars[idx].Date, bars[i].Date),
			Complete: true,
		}
	}
	return val
}
