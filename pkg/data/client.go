package data

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nvetrov/extrema/pkg/model"
	"github.com/nvetrov/extrema/pkg/series"
)

// Config holds market-data API client configuration
type Config struct {
	BaseURL    string
	APIKey     string
	PageLimit  int           // bars per request
	Throttle   time.Duration // pause between paginated requests
	HTTPClient *http.Client
}

// DefaultConfig returns a Config with sensible defaults. BaseURL and
// APIKey come from the environment in the cmd layer.
func DefaultConfig(baseURL, apiKey string) Config {
	return Config{
		BaseURL:   baseURL,
		APIKey:    apiKey,
		PageLimit: 5000,
		Throttle:  time.Second,
	}
}

// Client fetches daily OHLC history from a CryptoCompare-style index
// endpoint, paginating backwards from the present until the requested
// start date is covered.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a new API client
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = 5000
	}
	return &Client{cfg: cfg, http: httpClient}
}

// apiBar mirrors one item of the endpoint's Data array. Prices may be
// null upstream; nil pointers become NaN.
type apiBar struct {
	Timestamp int64    `json:"TIMESTAMP"`
	Open      *float64 `json:"OPEN"`
	High      *float64 `json:"HIGH"`
	Low       *float64 `json:"LOW"`
	Close     *float64 `json:"CLOSE"`
}

type apiResponse struct {
	Data []apiBar `json:"Data"`
}

// FetchBars pages backwards through the endpoint until the start date is
// reached, then returns the bars sorted chronologically, deduplicated
// on the page boundaries and filtered to start..now.
func (c *Client) FetchBars(ctx context.Context, pair string, start time.Time) ([]model.Bar, error) {
	instrument := strings.ReplaceAll(pair, "/", "-")
	startTS := start.Unix()
	toTS := time.Now().Unix()

	var all []model.Bar
	for toTS > startTS {
		batch, err := c.fetchPage(ctx, instrument, toTS)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}
		all = append(all, batch...)

		// Page backwards from the oldest bar of this batch. The boundary
		// bar is fetched twice and collapsed by the dedupe in series.Sort.
		oldest := batch[0].Day().Unix()
		for _, b := range batch {
			if d := b.Day().Unix(); d < oldest {
				oldest = d
			}
		}
		if oldest >= toTS {
			break
		}
		toTS = oldest

		if toTS > startTS && c.cfg.Throttle > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.cfg.Throttle):
			}
		}
	}

	sorted := series.Sort(all)
	filtered := sorted[:0:0]
	for _, b := range sorted {
		if !b.Date.Before(start) {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}

// fetchPage requests a single page of up to PageLimit daily bars ending
// at toTS
func (c *Client) fetchPage(ctx context.Context, instrument string, toTS int64) ([]model.Bar, error) {
	params := url.Values{}
	params.Set("market", "cadli")
	params.Set("instrument", instrument)
	params.Set("limit", strconv.Itoa(c.cfg.PageLimit))
	params.Set("aggregate", "1")
	params.Set("fill", "true")
	params.Set("apply_mapping", "true")
	params.Set("response_format", "JSON")
	params.Set("to_ts", strconv.FormatInt(toTS, 10))
	params.Set("api_key", c.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("api request failed: status %d", resp.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	bars := make([]model.Bar, 0, len(body.Data))
	for _, item := range body.Data {
		bars = append(bars, model.Bar{
			Date:  time.Unix(item.Timestamp, 0).UTC(),
			Open:  deref(item.Open),
			High:  deref(item.High),
			Low:   deref(item.Low),
			Close: deref(item.Close),
		})
	}
	return bars, nil
}

func deref(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
