package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	pair := flag.String("pair", "BTC/USD", "Crypto pair")
	limit := flag.Int("limit", 2000, "Number of daily bars to fetch (max 5000)")
	output := flag.String("output", "", "Output CSV file path")
	flag.Parse()

	_ = godotenv.Load()
	apiURL := os.Getenv("API_URL")
	apiKey := os.Getenv("API_KEY")
	if apiURL == "" {
		log.Fatal("API_URL is not set")
	}

	instrument := strings.ReplaceAll(*pair, "/", "-")
	if *output == "" {
		*output = fmt.Sprintf("data/%s_1d.csv", instrument)
	}

	url := fmt.Sprintf("%s?market=cadli&instrument=%s&limit=%d&aggregate=1&fill=true&apply_mapping=true&response_format=JSON&to_ts=%d&api_key=%s",
		apiURL, instrument, *limit, time.Now().Unix(), apiKey)

	log.Printf("Fetching %s daily bars...", *pair)

	resp, err := http.Get(url)
	if err != nil {
		log.Fatalf("Failed to fetch data: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("Failed to read response: %v", err)
	}

	var payload struct {
		Data []struct {
			Timestamp int64    `json:"TIMESTAMP"`
			Open      *float64 `json:"OPEN"`
			High      *float64 `json:"HIGH"`
			Low       *float64 `json:"LOW"`
			Close     *float64 `json:"CLOSE"`
		} `json:"Data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Fatalf("Failed to parse JSON: %v", err)
	}

	log.Printf("Fetched %d bars", len(payload.Data))

	if err := os.MkdirAll(filepath.Dir(*output), 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	file, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Header matching the CSVProvider expected format
	writer.Write([]string{"Date", "Open", "High", "Low", "Close"})

	for _, item := range payload.Data {
		writer.Write([]string{
			time.Unix(item.Timestamp, 0).UTC().Format("2006-01-02"),
			formatPrice(item.Open),
			formatPrice(item.High),
			formatPrice(item.Low),
			formatPrice(item.Close),
		})
	}

	log.Printf("Saved to %s", *output)
}

// formatPrice renders a price cell; null prices become empty cells
func formatPrice(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
