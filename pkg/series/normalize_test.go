package series

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvetrov/extrema/pkg/model"
)

func TestNormalizeSortsAscending(t *testing.T) {
	records := []Record{
		{Date: "2024-01-03", Open: 3, High: 3, Low: 3, Close: 3},
		{Date: "2024-01-01", Open: 1, High: 1, Low: 1, Close: 1},
		{Date: "2024-01-02", Open: 2, High: 2, Low: 2, Close: 2},
	}

	bars, err := Normalize(records)
	require.NoError(t, err)
	require.Len(t, bars, 3)

	for i := 1; i < len(bars); i++ {
		assert.True(t, bars[i-1].Date.Before(bars[i].Date))
	}
	assert.Equal(t, 1.0, bars[0].Close)
	assert.Equal(t, 3.0, bars[2].Close)
}

func TestNormalizeDeduplicatesKeepingLast(t *testing.T) {
	records := []Record{
		{Date: "2024-01-01", Close: 1},
		{Date: "2024-01-02", Close: 2},
		{Date: "2024-01-02", Close: 22},
	}

	bars, err := Normalize(records)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, 22.0, bars[1].Close)
}

func TestNormalizeBadDateFailsFast(t *testing.T) {
	records := []Record{
		{Date: "2024-01-01", Close: 1},
		{Date: "not-a-date", Close: 2},
	}

	_, err := Normalize(records)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadDate)
	assert.Contains(t, err.Error(), "not-a-date")
}

func TestNormalizeEmpty(t *testing.T) {
	bars, err := Normalize(nil)
	require.NoError(t, err)
	assert.Empty(t, bars)
}

func TestNormalizePassesNaNPricesThrough(t *testing.T) {
	records := []Record{
		{Date: "2024-01-01", Open: 1, High: math.NaN(), Low: 1, Close: 1},
	}

	bars, err := Normalize(records)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(bars[0].High))
}

func TestParseDateLayouts(t *testing.T) {
	for _, s := range []string{
		"2024-03-05",
		"2024-03-05T00:00:00Z",
		"2024-03-05 00:00:00",
		"2024/03/05",
	} {
		d, err := ParseDate(s)
		require.NoError(t, err, s)
		assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), d)
	}
}

func TestSortIsPure(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
	}
	input := []model.Bar{
		{Date: day(2), Close: 2},
		{Date: day(1), Close: 1},
	}

	sorted := Sort(input)

	assert.Equal(t, day(2), input[0].Date) // input untouched
	assert.Equal(t, day(1), sorted[0].Date)
}
