// Package ml fits a generic multi-output regressor on an assembled
// dataset and reports standard regression metrics.
package ml

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrNotFitted is returned when Predict is called before Fit
var ErrNotFitted = errors.New("model not fitted")

// LinearRegressor is a multi-output least-squares model with intercept.
// Each target column gets its own coefficient vector; all columns are fit
// in one QR solve.
type LinearRegressor struct {
	coef *mat.Dense // (features+1) × targets, first row is the intercept
}

// NewLinearRegressor creates an unfitted regressor
func NewLinearRegressor() *LinearRegressor {
	return &LinearRegressor{}
}

// Fit estimates coefficients from row-aligned feature and target
// matrices. Rows containing non-finite values are dropped first: least
// squares cannot absorb NaN or ±Inf, and the percentage columns may
// carry them by contract.
func (m *LinearRegressor) Fit(features, targets [][]float64) error {
	features, targets = dropNonFinite(features, targets)
	if len(features) == 0 {
		return errors.New("no finite rows to fit")
	}

	n := len(features)
	p := len(features[0])
	k := len(targets[0])
	if n <= p {
		return fmt.Errorf("need more than %d rows to fit %d features, got %d", p, p, n)
	}

	x := mat.NewDense(n, p+1, nil)
	y := mat.NewDense(n, k, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1) // intercept
		for j := 0; j < p; j++ {
			x.Set(i, j+1, features[i][j])
		}
		for j := 0; j < k; j++ {
			y.Set(i, j, targets[i][j])
		}
	}

	coef := mat.NewDense(p+1, k, nil)
	if err := coef.Solve(x, y); err != nil {
		return fmt.Errorf("least squares solve: %w", err)
	}

	m.coef = coef
	return nil
}

// Predict returns one prediction row per feature row
func (m *LinearRegressor) Predict(features [][]float64) ([][]float64, error) {
	if m.coef == nil {
		return nil, ErrNotFitted
	}

	p1, k := m.coef.Dims()
	out := make([][]float64, len(features))
	for i, row := range features {
		if len(row) != p1-1 {
			return nil, fmt.Errorf("expected %d features, got %d", p1-1, len(row))
		}
		pred := make([]float64, k)
		for j := 0; j < k; j++ {
			v := m.coef.At(0, j)
			for f := 0; f < p1-1; f++ {
				v += m.coef.At(f+1, j) * row[f]
			}
			pred[j] = v
		}
		out[i] = pred
	}
	return out, nil
}

// dropNonFinite filters out rows with NaN or ±Inf in either matrix
func dropNonFinite(features, targets [][]float64) ([][]float64, [][]float64) {
	keptF := make([][]float64, 0, len(features))
	keptT := make([][]float64, 0, len(targets))
	for i := range features {
		if finiteRow(features[i]) && finiteRow(targets[i]) {
			keptF = append(keptF, features[i])
			keptT = append(keptT, targets[i])
		}
	}
	return keptF, keptT
}

func finiteRow(row []float64) bool {
	for _, v := range row {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
