package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPctDiff(t *testing.T) {
	got := PctDiff([]float64{110, 90, 100}, []float64{100, 100, 100})
	assert.Equal(t, []float64{10.0, -10.0, 0.0}, got)
}

func TestPctDiffNotSymmetric(t *testing.T) {
	// (a-b)/b*100 is not symmetric under swapping roles
	ab := PctDiff([]float64{110}, []float64{100})
	ba := PctDiff([]float64{100}, []float64{110})
	assert.Equal(t, 10.0, ab[0])
	assert.Equal(t, -9.09, ba[0])
}

func TestPctDiffRounding(t *testing.T) {
	got := PctDiff([]float64{1.0 / 3.0 * 100}, []float64{100})
	assert.Equal(t, -66.67, got[0])
}

func TestPctDiffZeroReference(t *testing.T) {
	// Division by zero is deliberately unguarded
	got := PctDiff([]float64{5, -5, 0}, []float64{0, 0, 0})
	assert.True(t, math.IsInf(got[0], 1))
	assert.True(t, math.IsInf(got[1], -1))
	assert.True(t, math.IsNaN(got[2]))
}

func TestPctDiffEmpty(t *testing.T) {
	assert.Empty(t, PctDiff(nil, nil))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.2345))
	assert.Equal(t, -1.24, Round2(-1.2351))
	assert.True(t, math.IsInf(Round2(math.Inf(1)), 1))
	assert.True(t, math.IsNaN(Round2(math.NaN())))
}
