package metrics

import (
	"fmt"
	"math"

	"github.com/nvetrov/extrema/pkg/model"
)

// CalculateForward computes the leading-window columns for horizon v.
// Unlike the trailing window, the forward window at row i excludes the
// row itself: it spans the next v-1 rows, clipped to the series end. The
// last row has no future rows and falls back to its own high/low. A
// non-terminal row whose forward window is empty (v=1) yields NaN.
func CalculateForward(bars []model.Bar, v int) (*model.Forward, error) {
	if v < 1 {
		return nil, fmt.Errorf("horizon must be positive, got %d", v)
	}

	n := len(bars)
	f := &model.Forward{
		Horizon: v,
		High:    make([]float64, n),
		Low:     make([]float64, n),
	}

	for i := range bars {
		if i == n-1 {
			f.High[i] = bars[i].High
			f.Low[i] = bars[i].Low
			continue
		}

		end := i + v
		if end > n {
			end = n
		}
		f.High[i] = forwardExtreme(bars[i+1:end], true)
		f.Low[i] = forwardExtreme(bars[i+1:end], false)
	}

	closes := make([]float64, n)
	for i, b := range bars {
		closes[i] = b.Close
	}
	f.PctFromHigh = PctDiff(closes, f.High)
	f.PctFromLow = PctDiff(closes, f.Low)

	return f, nil
}

// forwardExtreme scans a forward slice for its high or low, skipping NaN
// gaps. An empty or all-NaN slice yields NaN.
func forwardExtreme(bars []model.Bar, max bool) float64 {
	best := math.NaN()
	for _, b := range bars {
		v := b.Low
		if max {
			v = b.High
		}
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(best) || (max && v > best) || (!max && v < best) {
			best = v
		}
	}
	return best
}
