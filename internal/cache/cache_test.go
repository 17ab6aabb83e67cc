package cache

import (
	"context"
	"testing"
	"time"

	"github.com/vanshika/fintrace/backend/internal/domain"
)

func sampleResult(score float64) domain.AnalysisResult {
	return domain.AnalysisResult{
		SuspiciousAccounts: []domain.SuspiciousAccount{
			{AccountID: "A", SuspicionScore: score},
		},
		Summary: domain.Summary{TotalAccountsAnalyzed: 1},
	}
}

func TestBatchKey_OrderIndependent(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := []domain.Transaction{
		{ID: "T1", SenderID: "A", ReceiverID: "B", Amount: 10, Timestamp: base},
		{ID: "T2", SenderID: "B", ReceiverID: "C", Amount: 20, Timestamp: base.Add(time.Hour)},
	}
	b := []domain.Transaction{a[1], a[0]}

	if BatchKey(a) != BatchKey(b) {
		t.Fatal("expected BatchKey to be independent of input row order")
	}
}

func TestBatchKey_DifferentBatchesDiffer(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := []domain.Transaction{{ID: "T1", SenderID: "A", ReceiverID: "B", Amount: 10, Timestamp: base}}
	b := []domain.Transaction{{ID: "T1", SenderID: "A", ReceiverID: "B", Amount: 11, Timestamp: base}}

	if BatchKey(a) == BatchKey(b) {
		t.Fatal("expected different batches to hash differently")
	}
}

func TestMemoryCache_GetMiss(t *testing.T) {
	c := NewMemoryCache()
	_, found, err := c.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected a cache miss")
	}
}

func TestMemoryCache_SetThenGet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	want := sampleResult(92.5)

	if err := c.Set(ctx, "k1", want, time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, found, err := c.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected a cache hit")
	}
	if got.SuspiciousAccounts[0].SuspicionScore != 92.5 {
		t.Errorf("expected score 92.5, got %v", got.SuspiciousAccounts[0].SuspicionScore)
	}
}

func TestMemoryCache_ExpiresAfterTTL(t *testing.T) {
	c := NewMemoryCache()
	frozen := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return frozen }
	ctx := context.Background()

	if err := c.Set(ctx, "k1", sampleResult(80), time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.now = func() time.Time { return frozen.Add(2 * time.Minute) }

	_, found, err := c.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected the entry to have expired")
	}
}

func TestMemoryCache_ZeroTTLNeverExpires(t *testing.T) {
	c := NewMemoryCache()
	frozen := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return frozen }
	ctx := context.Background()

	if err := c.Set(ctx, "k1", sampleResult(80), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.now = func() time.Time { return frozen.Add(365 * 24 * time.Hour) }

	_, found, err := c.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected a zero-ttl entry to never expire")
	}
}
