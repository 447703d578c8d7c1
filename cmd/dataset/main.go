package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/nvetrov/extrema/pkg/data"
	"github.com/nvetrov/extrema/pkg/dataset"
	"github.com/nvetrov/extrema/pkg/metrics"
	"github.com/nvetrov/extrema/pkg/ml"
	"github.com/nvetrov/extrema/pkg/model"
	"github.com/nvetrov/extrema/pkg/series"
	"github.com/nvetrov/extrema/pkg/store/duckdb"
	"github.com/nvetrov/extrema/pkg/store/excel"
)

// Config holds dataset build configuration
type Config struct {
	// Data source
	Pair    string
	Start   string
	CSVPath string

	// Window parameters
	Lookback int
	Horizon  int

	// Outputs
	DuckDBPath string
	ExcelPath  string

	// Model
	Train    bool
	TestSize float64
	Seed     int64
}

func main() {
	cfg := parseFlags()

	start, err := series.ParseDate(cfg.Start)
	if err != nil {
		log.Fatalf("Invalid start date: %v", err)
	}

	log.Printf("Building dataset for %s (lookback=%d, horizon=%d)", cfg.Pair, cfg.Lookback, cfg.Horizon)

	ctx := context.Background()

	// Load bars: local CSV or the DuckDB store fed by backfill
	var (
		bars       []model.Bar
		metricRepo *duckdb.MetricRepo
	)
	if cfg.CSVPath != "" {
		provider := data.NewCSVProvider(cfg.CSVPath)
		bars, err = provider.FetchBars(ctx, cfg.Pair, start)
		if err != nil {
			log.Fatalf("Failed to load bars: %v", err)
		}
	} else {
		duckClient, err := duckdb.NewClient(cfg.DuckDBPath)
		if err != nil {
			log.Fatalf("Failed to connect to DuckDB: %v", err)
		}
		defer duckClient.Close()

		if err := duckdb.InitializeSchema(duckClient); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}

		barRepo := duckdb.NewBarRepo(duckClient)
		bars, err = barRepo.GetAll(ctx, cfg.Pair)
		if err != nil {
			log.Fatalf("Failed to load bars: %v", err)
		}
		metricRepo = duckdb.NewMetricRepo(duckClient)
	}
	log.Printf("Loaded %d bars", len(bars))

	// Derive the metric columns
	annotated, err := metrics.Calculate(cfg.Pair, bars, cfg.Lookback, cfg.Horizon)
	if err != nil {
		log.Fatalf("Failed to calculate metrics: %v", err)
	}

	// Persist the derived rows alongside the raw bars
	if metricRepo != nil {
		if err := metricRepo.InsertAnnotated(ctx, annotated); err != nil {
			log.Fatalf("Failed to store metric rows: %v", err)
		}
		log.Printf("Stored %d metric rows", annotated.Len())
	}

	// Write the annotated table to the workbook
	writer := excel.NewWriter(cfg.ExcelPath)
	sheet, err := writer.WriteSheet(cfg.Pair, annotated)
	if err != nil {
		log.Fatalf("Failed to write workbook: %v", err)
	}
	log.Printf("Wrote sheet %q to %s", sheet, cfg.ExcelPath)

	if !cfg.Train {
		return
	}

	// Assemble the feature/target matrices and fit the regressor
	ds, err := dataset.Assemble(annotated, cfg.Lookback, cfg.Horizon)
	if err != nil {
		log.Fatalf("Failed to assemble dataset: %v", err)
	}

	_, report, err := ml.Train(ds, cfg.TestSize, cfg.Seed)
	if err != nil {
		log.Fatalf("Failed to train model: %v", err)
	}
	log.Printf("Model trained successfully: %s", report)
}

func parseFlags() Config {
	cfg := Config{}

	flag.StringVar(&cfg.Pair, "pair", "BTC/USD", "Crypto pair")
	flag.StringVar(&cfg.Start, "start", "2020-01-01", "Start date (YYYY-MM-DD)")
	flag.StringVar(&cfg.CSVPath, "csv", "", "Path to CSV file with bar data (skips DuckDB)")
	flag.IntVar(&cfg.Lookback, "lookback", 30, "Trailing window length in days")
	flag.IntVar(&cfg.Horizon, "horizon", 7, "Forward window length in days")
	flag.StringVar(&cfg.DuckDBPath, "duckdb", "extrema.duckdb", "DuckDB file path")
	flag.StringVar(&cfg.ExcelPath, "excel", "output.xlsx", "Workbook output path")
	flag.BoolVar(&cfg.Train, "train", false, "Train the regressor after building the dataset")
	flag.Float64Var(&cfg.TestSize, "test-size", 0.2, "Test split fraction")
	flag.Int64Var(&cfg.Seed, "seed", 0, "Split shuffle seed")

	flag.Parse()

	if cfg.Lookback < 1 || cfg.Horizon < 1 {
		fmt.Println("Usage: dataset -pair <pair> -lookback <days> -horizon <days> [options]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	return cfg
}
