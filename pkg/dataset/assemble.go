// Package dataset selects derived metric columns into row-aligned
// feature and target matrices for a downstream learner.
package dataset

import (
	"errors"
	"fmt"

	"github.com/nvetrov/extrema/pkg/model"
)

// ErrColumnMissing signals that a requested column was never computed on
// the annotated table. This is a configuration error: the lookback or
// horizon passed to Assemble must match the ones used by metrics.Calculate.
var ErrColumnMissing = errors.New("column missing")

// Dataset pairs the feature matrix with the target matrix. Rows are
// index-aligned 1:1 and follow the bar order of the annotated table.
type Dataset struct {
	FeatureNames []string
	TargetNames  []string
	Features     [][]float64 // n rows × 4 columns
	Targets      [][]float64 // n rows × 2 columns
}

// Len returns the number of rows
func (d *Dataset) Len() int {
	return len(d.Features)
}

// Assemble selects the four trailing feature columns for the given
// lookback and the two forward target columns for the given horizon, in
// a fixed deterministic order. The annotated table must have been
// computed with the same lookback and horizon; a mismatch yields an
// error wrapping ErrColumnMissing that names the absent column.
func Assemble(a *model.Annotated, lookback, horizon int) (*Dataset, error) {
	h := a.Historical
	if h == nil || h.Lookback != lookback {
		return nil, fmt.Errorf("%w: %s", ErrColumnMissing, model.DaysSinceHighColumn(lookback))
	}

	f := a.Forward
	if f == nil || f.Horizon != horizon {
		return nil, fmt.Errorf("%w: %s", ErrColumnMissing, model.FwdPctFromHighColumn(horizon))
	}

	n := a.Len()
	d := &Dataset{
		FeatureNames: []string{
			model.DaysSinceHighColumn(lookback),
			model.PctFromHighColumn(lookback),
			model.DaysSinceLowColumn(lookback),
			model.PctFromLowColumn(lookback),
		},
		TargetNames: []string{
			model.FwdPctFromHighColumn(horizon),
			model.FwdPctFromLowColumn(horizon),
		},
		Features: make([][]float64, n),
		Targets:  make([][]float64, n),
	}

	for i := 0; i < n; i++ {
		d.Features[i] = []float64{
			float64(h.DaysSinceHigh[i].Value()),
			h.PctFromHigh[i],
			float64(h.DaysSinceLow[i].Value()),
			h.PctFromLow[i],
		}
		d.Targets[i] = []float64{
			f.PctFromHigh[i],
			f.PctFromLow[i],
		}
	}

	return d, nil
}
