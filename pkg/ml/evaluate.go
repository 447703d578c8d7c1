package ml

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Report holds regression metrics averaged uniformly across targets
type Report struct {
	MSE float64
	MAE float64
	R2  float64
}

// String returns a formatted one-line summary
func (r Report) String() string {
	return fmt.Sprintf("MSE: %.4f | MAE: %.4f | R2: %.4f", r.MSE, r.MAE, r.R2)
}

// Evaluate computes MSE, MAE and R² per target column and averages them
// uniformly. Both matrices must be row-aligned and equal shape.
func Evaluate(yTrue, yPred [][]float64) Report {
	if len(yTrue) == 0 {
		return Report{}
	}

	k := len(yTrue[0])
	var mse, mae, r2 float64
	for j := 0; j < k; j++ {
		truth := column(yTrue, j)
		pred := column(yPred, j)

		var sqSum, absSum float64
		for i := range truth {
			d := truth[i] - pred[i]
			sqSum += d * d
			absSum += math.Abs(d)
		}
		n := float64(len(truth))
		mse += sqSum / n
		mae += absSum / n

		mean := stat.Mean(truth, nil)
		var totSum float64
		for _, v := range truth {
			totSum += (v - mean) * (v - mean)
		}
		if totSum != 0 {
			r2 += 1 - sqSum/totSum
		}
	}

	return Report{
		MSE: mse / float64(k),
		MAE: mae / float64(k),
		R2:  r2 / float64(k),
	}
}

func column(m [][]float64, j int) []float64 {
	col := make([]float64, len(m))
	for i := range m {
		col[i] = m[i][j]
	}
	return col
}
