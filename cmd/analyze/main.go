package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/vanshika/fintrace/backend/internal/cache"
	"github.com/vanshika/fintrace/backend/internal/config"
	"github.com/vanshika/fintrace/backend/internal/domain"
	"github.com/vanshika/fintrace/backend/internal/ingress"
	"github.com/vanshika/fintrace/backend/internal/logging"
	"github.com/vanshika/fintrace/backend/internal/service"
)

func main() {
	var (
		output  = flag.String("output", "", "Path to write the AnalysisReport JSON (defaults to stdout)")
		workers = flag.Int("workers", 4, "Number of concurrent workers for loading input files")
	)
	flag.Parse()

	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "usage: analyze [-output path] [-workers n] <file.csv|file.json> [...]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "analyze")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	loader := service.NewBulkLoader(loadFile, *workers)
	start := time.Now()

	logger.Info("loading input batches", "files", len(inputs), "workers", *workers)
	batches, err := loader.LoadAll(ctx, inputs)
	if err != nil {
		logger.Error("failed to load input batches", "error", err)
		os.Exit(1)
	}

	var transactions []domain.Transaction
	for _, batch := range batches {
		transactions = append(transactions, batch...)
	}

	reportService := service.NewReportService(cfg.Thresholds.Forensics(), cache.NewMemoryCache(), cfg.Cache.TTL, logger)
	report, err := reportService.Analyze(ctx, transactions)
	if err != nil {
		logger.Error("analysis failed", "error", err)
		os.Exit(1)
	}

	logger.Info("analysis complete",
		"duration", time.Since(start).String(),
		"transactions", len(transactions),
		"suspicious_accounts", report.Result.Summary.SuspiciousAccountsFlagged,
		"fraud_rings", report.Result.Summary.FraudRingsDetected,
	)

	if err := writeReport(report, *output); err != nil {
		logger.Error("failed to write report", "error", err)
		os.Exit(1)
	}
}

func loadFile(_ context.Context, path string) ([]domain.Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ingress.ParseJSON(file)
	}
	return ingress.ParseCSV(file)
}

func writeReport(report domain.AnalysisReport, outputPath string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')

	if outputPath == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
