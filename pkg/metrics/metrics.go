// Package metrics derives trailing and forward extreme columns from a
// chronological OHLC bar series.
package metrics

import (
	"github.com/nvetrov/extrema/pkg/model"
)

// Calculate annotates a normalized bar series with the trailing columns
// for the given lookback and the forward columns for the given horizon.
// Bars are expected chronological and deduplicated, as produced by
// series.Normalize. Rows are neither dropped nor reordered; every derived
// column is aligned 1:1 with the input bars.
func Calculate(symbol string, bars []model.Bar, lookback, horizon int) (*model.Annotated, error) {
	hist, err := CalculateHistorical(bars, lookback)
	if err != nil {
		return nil, err
	}

	fwd, err := CalculateForward(bars, horizon)
	if err != nil {
		return nil, err
	}

	return &model.Annotated{
		Symbol:     symbol,
		Bars:       bars,
		Historical: hist,
		Forward:    fwd,
	}, nil
}
