package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/nvetrov/extrema/pkg/data"
	"github.com/nvetrov/extrema/pkg/model"
	"github.com/nvetrov/extrema/pkg/queue/nats"
	"github.com/nvetrov/extrema/pkg/series"
	"github.com/nvetrov/extrema/pkg/store/duckdb"
)

// Config holds backfill configuration
type Config struct {
	// Data source
	Pair    string
	Start   string
	CSVPath string

	// Storage
	DuckDBPath string
	NATSUrl    string // publish to NATS instead of writing directly
	BatchSize  int
}

func main() {
	cfg := parseFlags()

	start, err := series.ParseDate(cfg.Start)
	if err != nil {
		log.Fatalf("Invalid start date: %v", err)
	}

	log.Printf("Starting backfill for %s from %s", cfg.Pair, start.Format("2006-01-02"))

	ctx := context.Background()

	// Pick the bar source: local CSV or the market-data API
	var provider data.BarProvider
	if cfg.CSVPath != "" {
		log.Printf("Loading bars from %s...", cfg.CSVPath)
		provider = data.NewCSVProvider(cfg.CSVPath)
	} else {
		// .env carries the API credentials, matching the deployed setup
		_ = godotenv.Load()
		apiURL := os.Getenv("API_URL")
		apiKey := os.Getenv("API_KEY")
		if apiURL == "" {
			log.Fatal("API_URL is not set (use -csv for local data)")
		}
		log.Println("Fetching bars from market-data API...")
		provider = data.NewClient(data.DefaultConfig(apiURL, apiKey))
	}

	bars, err := provider.FetchBars(ctx, cfg.Pair, start)
	if err != nil {
		log.Fatalf("Failed to fetch bars: %v", err)
	}
	log.Printf("Fetched %d bars", len(bars))

	if cfg.NATSUrl != "" {
		publishBars(ctx, cfg, bars)
		return
	}

	// Direct write to DuckDB
	log.Println("Connecting to DuckDB...")
	duckClient, err := duckdb.NewClient(cfg.DuckDBPath)
	if err != nil {
		log.Fatalf("Failed to connect to DuckDB: %v", err)
	}
	defer duckClient.Close()

	if err := duckdb.InitializeSchema(duckClient); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	barRepo := duckdb.NewBarRepo(duckClient)
	if err := barRepo.InsertBatch(ctx, cfg.Pair, bars); err != nil {
		log.Fatalf("Failed to insert bars: %v", err)
	}

	count, err := barRepo.Count(ctx, cfg.Pair)
	if err != nil {
		log.Fatalf("Failed to count bars: %v", err)
	}
	log.Printf("Backfill completed: %d bars stored for %s", count, cfg.Pair)
}

// publishBars hands the fetched bars to the writer worker via JetStream
func publishBars(ctx context.Context, cfg Config, bars []model.Bar) {
	log.Printf("Connecting to NATS at %s...", cfg.NATSUrl)
	natsClient, err := nats.NewClient(nats.Config{
		URL:        cfg.NATSUrl,
		StreamName: "extrema",
	})
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer natsClient.Close()

	subjects := []string{nats.SubjectBarWrite, nats.SubjectMetricWrite}
	if err := natsClient.CreateStream(ctx, subjects); err != nil {
		log.Fatalf("Failed to create stream: %v", err)
	}

	for i := 0; i < len(bars); i += cfg.BatchSize {
		end := i + cfg.BatchSize
		if end > len(bars) {
			end = len(bars)
		}

		payload, err := nats.Encode(nats.BarBatchMsg{Symbol: cfg.Pair, Bars: bars[i:end]})
		if err != nil {
			log.Fatalf("Failed to encode batch: %v", err)
		}
		if err := natsClient.Publish(ctx, nats.SubjectBarWrite, payload); err != nil {
			log.Fatalf("Failed to publish batch: %v", err)
		}
	}

	log.Printf("Published %d bars in batches of %d", len(bars), cfg.BatchSize)
}

func parseFlags() Config {
	cfg := Config{}

	flag.StringVar(&cfg.Pair, "pair", "BTC/USD", "Crypto pair")
	flag.StringVar(&cfg.Start, "start", "2020-01-01", "Start date (YYYY-MM-DD)")
	flag.StringVar(&cfg.CSVPath, "csv", "", "Path to CSV file with bar data (skips the API)")
	flag.StringVar(&cfg.DuckDBPath, "duckdb", "extrema.duckdb", "DuckDB file path")
	flag.StringVar(&cfg.NATSUrl, "nats", "", "NATS server URL (publish to the writer worker instead of writing directly)")
	flag.IntVar(&cfg.BatchSize, "batch", 1000, "Batch size for inserts and publishes")

	flag.Parse()

	if cfg.Pair == "" {
		fmt.Println("Usage: backfill -pair <pair> [options]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	return cfg
}
