package rolling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerMax(t *testing.T) {
	tr := NewMax(3)

	expected := []float64{10, 12, 12, 15, 15, 15, 11}
	for i, v := range []float64{10, 12, 9, 15, 11, 7, 8} {
		tr.Push(v)
		got, _, ok := tr.Extreme()
		require.True(t, ok)
		assert.Equal(t, expected[i], got, "at index %d", i)
	}
}

func TestTrackerMin(t *testing.T) {
	tr := NewMin(3)

	expected := []float64{5, 5, 4, 4, 4, 6}
	for i, v := range []float64{5, 6, 4, 7, 6, 8} {
		tr.Push(v)
		got, _, ok := tr.Extreme()
		require.True(t, ok)
		assert.Equal(t, expected[i], got, "at index %d", i)
	}
}

func TestTrackerTieResolvesToMostRecent(t *testing.T) {
	tr := NewMax(4)
	for _, v := range []float64{10, 7, 10, 8} {
		tr.Push(v)
	}

	val, idx, ok := tr.Extreme()
	require.True(t, ok)
	assert.Equal(t, 10.0, val)
	assert.Equal(t, 2, idx) // second occurrence of the max
}

func TestTrackerEviction(t *testing.T) {
	tr := NewMax(2)
	for _, v := range []float64{100, 1, 2} {
		tr.Push(v)
	}

	// 100 fell out of the 2-wide window
	val, idx, ok := tr.Extreme()
	require.True(t, ok)
	assert.Equal(t, 2.0, val)
	assert.Equal(t, 2, idx)
}

func TestTrackerSkipsNaN(t *testing.T) {
	tr := NewMax(3)
	tr.Push(math.NaN())
	tr.Push(5)
	tr.Push(math.NaN())

	val, idx, ok := tr.Extreme()
	require.True(t, ok)
	assert.Equal(t, 5.0, val)
	assert.Equal(t, 1, idx)
}

func TestTrackerAllNaN(t *testing.T) {
	tr := NewMin(2)
	tr.Push(math.NaN())
	tr.Push(math.NaN())

	_, _, ok := tr.Extreme()
	assert.False(t, ok)
	assert.Equal(t, 2, tr.Count())
}

func TestTrackerReset(t *testing.T) {
	tr := NewMax(3)
	tr.Push(1)
	tr.Reset()

	_, _, ok := tr.Extreme()
	assert.False(t, ok)
	assert.Equal(t, 0, tr.Count())
}
