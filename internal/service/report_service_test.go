package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/vanshika/fintrace/backend/internal/cache"
	"github.com/vanshika/fintrace/backend/internal/domain"
	"github.com/vanshika/fintrace/backend/internal/forensics"
	"github.com/vanshika/fintrace/backend/internal/graphexport"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discardWriter{}, nil))
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func sampleBatch() []domain.Transaction {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []domain.Transaction{
		{ID: "T1", SenderID: "A", ReceiverID: "B", Amount: 100, Timestamp: base},
		{ID: "T2", SenderID: "B", ReceiverID: "C", Amount: 100, Timestamp: base.Add(time.Hour)},
		{ID: "T3", SenderID: "C", ReceiverID: "A", Amount: 100, Timestamp: base.Add(2 * time.Hour)},
	}
}

func TestReportService_CacheHitSkipsCore(t *testing.T) {
	calls := 0
	svc := NewReportService(forensics.DefaultThresholds(), cache.NewMemoryCache(), time.Hour, discardLogger())
	svc.analyze = func(txs []domain.Transaction, th forensics.Thresholds) domain.AnalysisResult {
		calls++
		return forensics.Analyze(txs, th)
	}

	ctx := context.Background()
	batch := sampleBatch()

	first, err := svc.Analyze(ctx, batch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Analyze(ctx, batch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 1 {
		t.Fatalf("expected the core to run exactly once, ran %d times", calls)
	}
	if first.ReportID == second.ReportID {
		t.Error("expected distinct report ids per call even on a cache hit")
	}
	if len(first.Result.FraudRings) != len(second.Result.FraudRings) {
		t.Error("expected identical result payloads modulo report id/generated_at")
	}
}

func TestReportService_DistinctBatchesBothRunCore(t *testing.T) {
	calls := 0
	svc := NewReportService(forensics.DefaultThresholds(), cache.NewMemoryCache(), time.Hour, discardLogger())
	svc.analyze = func(txs []domain.Transaction, th forensics.Thresholds) domain.AnalysisResult {
		calls++
		return forensics.Analyze(txs, th)
	}

	ctx := context.Background()
	batchA := sampleBatch()
	batchB := sampleBatch()
	batchB[0].Amount = 999

	if _, err := svc.Analyze(ctx, batchA); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Analyze(ctx, batchB); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 2 {
		t.Fatalf("expected the core to run twice for distinct batches, ran %d times", calls)
	}
}

func TestReportService_GetReport(t *testing.T) {
	svc := NewReportService(forensics.DefaultThresholds(), cache.NewMemoryCache(), time.Hour, discardLogger())

	report, err := svc.Analyze(context.Background(), sampleBatch())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok := svc.GetReport(report.ReportID)
	if !ok {
		t.Fatal("expected to find the just-analyzed report by id")
	}
	if got.ReportID != report.ReportID {
		t.Errorf("expected report id %q, got %q", report.ReportID, got.ReportID)
	}

	if _, ok := svc.GetReport("unknown-id"); ok {
		t.Fatal("expected unknown report id to be absent")
	}
}

func TestReportService_ExportFailureDoesNotFailAnalyze(t *testing.T) {
	// The exporter's client fails every write, so Export returns an error
	// (graphexport.Exporter.Export propagates the client's error). The
	// service layer must log it and still return the report.
	failing := graphexport.NewExporter(graphexport.NewMemoryClient().WithError(context.DeadlineExceeded))
	svc := NewReportService(forensics.DefaultThresholds(), cache.NewMemoryCache(), time.Hour, discardLogger(), WithExporter(failing))
	if _, err := svc.Analyze(context.Background(), sampleBatch()); err != nil {
		t.Fatalf("Analyze must not fail even if export is unavailable: %v", err)
	}
}
