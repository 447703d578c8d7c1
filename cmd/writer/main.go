package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/nvetrov/extrema/pkg/queue/nats"
	"github.com/nvetrov/extrema/pkg/store/duckdb"
)

// Config holds writer worker configuration
type Config struct {
	NATSUrl    string
	DuckDBPath string
}

func main() {
	cfg := parseFlags()

	log.Println("Starting Writer Worker...")
	log.Printf("NATS: %s, DuckDB: %s", cfg.NATSUrl, cfg.DuckDBPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize DuckDB
	log.Println("Connecting to DuckDB...")
	duckClient, err := duckdb.NewClient(cfg.DuckDBPath)
	if err != nil {
		log.Fatalf("Failed to connect to DuckDB: %v", err)
	}
	defer duckClient.Close()

	if err := duckdb.InitializeSchema(duckClient); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}
	log.Println("DuckDB schema initialized")

	barRepo := duckdb.NewBarRepo(duckClient)
	metricRepo := duckdb.NewMetricRepo(duckClient)

	// Initialize NATS
	log.Println("Connecting to NATS...")
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
	log.Println("NATS stream ready")

	// Subscribe to bar writes
	barConsumer, err := natsClient.Subscribe(ctx, nats.SubjectBarWrite, "bar-writer", func(msg jetstream.Msg) error {
		batch, err := nats.DecodeBarBatch(msg.Data())
		if err != nil {
			log.Printf("Failed to decode bar batch: %v", err)
			return err
		}

		if len(batch.Bars) == 0 {
			return nil
		}

		if err := barRepo.InsertBatch(ctx, batch.Symbol, batch.Bars); err != nil {
			log.Printf("Failed to insert bars: %v", err)
			return err
		}

		log.Printf("Inserted %d bars for %s", len(batch.Bars), batch.Symbol)
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to subscribe to bar writes: %v", err)
	}
	defer barConsumer.Stop()

	// Subscribe to metric writes
	metricConsumer, err := natsClient.Subscribe(ctx, nats.SubjectMetricWrite, "metric-writer", func(msg jetstream.Msg) error {
		write, err := nats.DecodeMetricWrite(msg.Data())
		if err != nil {
			log.Printf("Failed to decode metric write: %v", err)
			return err
		}

		if write.Annotated == nil || write.Annotated.Len() == 0 {
			return nil
		}

		if err := metricRepo.InsertAnnotated(ctx, write.Annotated); err != nil {
			log.Printf("Failed to insert metric rows: %v", err)
			return err
		}

		log.Printf("Inserted %d metric rows for %s", write.Annotated.Len(), write.Annotated.Symbol)
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to subscribe to metric writes: %v", err)
	}
	defer metricConsumer.Stop()

	log.Println("Writer Worker started, waiting for messages...")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down Writer Worker...")
}

func parseFlags() Config {
	cfg := Config{}

	flag.StringVar(&cfg.NATSUrl, "nats", "nats://localhost:4222", "NATS server URL")
	flag.StringVar(&cfg.DuckDBPath, "duckdb", "extrema.duckdb", "DuckDB file path")

	flag.Parse()

	return cfg
}
