package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateForwardExtremes(t *testing.T) {
	bars := dailyBars(t,
		[]float64{10, 12, 9, 15, 11},
		[]float64{5, 6, 4, 7, 6},
		[]float64{10, 11, 8, 14, 10},
	)

	f, err := CalculateForward(bars, 2)
	require.NoError(t, err)

	// V=2 looks exactly one row ahead
	assert.Equal(t, 12.0, f.High[0])
	assert.Equal(t, 9.0, f.High[1])
	assert.Equal(t, 15.0, f.High[2]) // max(High[3..3])
	assert.Equal(t, 11.0, f.High[3])

	// Last row has no future rows: self-fallback
	assert.Equal(t, 11.0, f.High[4])
	assert.Equal(t, 6.0, f.Low[4])
}

func TestCalculateForwardExcludesCurrentRow(t *testing.T) {
	// The current bar's own extreme must never leak into its forward
	// window: row 0 has the global high but its forward high is lower.
	bars := dailyBars(t,
		[]float64{20, 12, 9},
		[]float64{5, 6, 4},
		[]float64{19, 11, 8},
	)

	f, err := CalculateForward(bars, 3)
	require.NoError(t, err)

	assert.Equal(t, 12.0, f.High[0])
	assert.Equal(t, 4.0, f.Low[0])
}

func TestCalculateForwardHorizonOne(t *testing.T) {
	bars := dailyBars(t,
		[]float64{10, 12, 9},
		[]float64{5, 6, 4},
		[]float64{9, 10, 7},
	)

	f, err := CalculateForward(bars, 1)
	require.NoError(t, err)

	// V=1 means an empty forward window everywhere but the last row
	assert.True(t, math.IsNaN(f.High[0]))
	assert.True(t, math.IsNaN(f.High[1]))
	assert.Equal(t, 9.0, f.High[2])
	assert.Equal(t, 4.0, f.Low[2])
}

func TestCalculateForwardPctColumns(t *testing.T) {
	bars := dailyBars(t,
		[]float64{10, 12, 9, 15, 11},
		[]float64{5, 6, 4, 7, 6},
		[]float64{10, 11, 8, 14, 10},
	)

	f, err := CalculateForward(bars, 2)
	require.NoError(t, err)

	// (8-15)/15*100 = -46.67, (10-11)/11*100 = -9.09
	assert.Equal(t, -46.67, f.PctFromHigh[2])
	assert.Equal(t, -9.09, f.PctFromHigh[4])
}

func TestCalculateForwardSkipsNaN(t *testing.T) {
	bars := dailyBars(t,
		[]float64{10, math.NaN(), 9, 15},
		[]float64{5, math.NaN(), 4, 7},
		[]float64{9, math.NaN(), 8, 14},
	)

	f, err := CalculateForward(bars, 4)
	require.NoError(t, err)

	// The NaN gap at row 1 is skipped when scanning forward
	assert.Equal(t, 15.0, f.High[0])
	assert.Equal(t, 4.0, f.Low[0])
}

func TestCalculateForwardRowCountPreserved(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5, 13} {
		highs := make([]float64, n)
		lows := make([]float64, n)
		closes := make([]float64, n)
		for i := range highs {
			highs[i] = float64(i + 2)
			lows[i] = float64(i + 1)
			closes[i] = float64(i + 1)
		}

		f, err := CalculateForward(dailyBars(t, highs, lows, closes), 3)
		require.NoError(t, err)
		assert.Len(t, f.High, n)
		assert.Len(t, f.Low, n)
		assert.Len(t, f.PctFromHigh, n)
		assert.Len(t, f.PctFromLow, n)
	}
}

func TestCalculateForwardInvalidHorizon(t *testing.T) {
	_, err := CalculateForward(nil, 0)
	assert.Error(t, err)
}

func TestCalculateRoundTrip(t *testing.T) {
	bars := dailyBars(t,
		[]float64{10, 12, 9, 15, 11},
		[]float64{5, 6, 4, 7, 6},
		[]float64{10, 11, 8, 14, 10},
	)

	a, err := Calculate("BTC/USD", bars, 3, 2)
	require.NoError(t, err)

	assert.Equal(t, len(bars), a.Len())
	require.NotNil(t, a.Historical)
	require.NotNil(t, a.Forward)
	assert.Equal(t, 3, a.Historical.Lookback)
	assert.Equal(t, 2, a.Forward.Horizon)

	header := a.Header()
	assert.Equal(t, 15, len(header))
	assert.Contains(t, header, "Days_Since_High_Last_3_Days")
	assert.Contains(t, header, "%_Diff_From_Low_Next_2_Days")

	row := a.Row(3)
	assert.Equal(t, len(header), len(row))
	assert.Equal(t, "2024-01-04", row[0])
}
