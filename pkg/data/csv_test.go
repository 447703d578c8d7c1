package data

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvetrov/extrema/pkg/model"
)

func barsFixture() []model.Bar {
	return []model.Bar{
		{Date: day(3), Close: 3},
		{Date: day(1), Close: 1},
		{Date: day(2), Close: 2},
	}
}

func writeTestCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bars.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCSVProviderLoadsAndSorts(t *testing.T) {
	path := writeTestCSV(t, `Date,Open,High,Low,Close
2024-01-03,3,3.5,2.5,3
2024-01-01,1,1.5,0.5,1
2024-01-02,2,2.5,1.5,2
`)

	bars, err := NewCSVProvider(path).FetchBars(context.Background(), "BTC/USD", day(1))
	require.NoError(t, err)
	require.Len(t, bars, 3)

	assert.Equal(t, day(1), bars[0].Date)
	assert.Equal(t, day(3), bars[2].Date)
	assert.Equal(t, 3.5, bars[2].High)
}

func TestCSVProviderFiltersByStart(t *testing.T) {
	path := writeTestCSV(t, `Date,Open,High,Low,Close
2024-01-01,1,1.5,0.5,1
2024-01-02,2,2.5,1.5,2
2024-01-03,3,3.5,2.5,3
`)

	bars, err := NewCSVProvider(path).FetchBars(context.Background(), "BTC/USD", day(2))
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, day(2), bars[0].Date)
}

func TestCSVProviderMissingPriceBecomesNaN(t *testing.T) {
	path := writeTestCSV(t, `Date,Open,High,Low,Close
2024-01-01,1,1.5,0.5,
`)

	bars, err := NewCSVProvider(path).FetchBars(context.Background(), "BTC/USD", day(1))
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.True(t, math.IsNaN(bars[0].Close))
	assert.Equal(t, 1.5, bars[0].High)
}

func TestCSVProviderBadDateFails(t *testing.T) {
	path := writeTestCSV(t, `Date,Open,High,Low,Close
garbage,1,1.5,0.5,1
`)

	_, err := NewCSVProvider(path).FetchBars(context.Background(), "BTC/USD", day(1))
	assert.Error(t, err)
}

func TestCSVProviderMissingFile(t *testing.T) {
	_, err := NewCSVProvider("/nonexistent/bars.csv").FetchBars(context.Background(), "BTC/USD", day(1))
	assert.Error(t, err)
}

func TestMemoryProviderSortsAndFilters(t *testing.T) {
	p := NewMemoryProvider(nil)
	p.AddBars(barsFixture())

	bars, err := p.FetchBars(context.Background(), "BTC/USD", day(2))
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, day(2), bars[0].Date)
	assert.Equal(t, day(3), bars[1].Date)
}
