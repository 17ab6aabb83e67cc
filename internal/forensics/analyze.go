package forensics

import (
	"math"
	"sync"
	"time"

	"github.com/vanshika/fintrace/backend/internal/domain"
)

// Thresholds bundles every configurable detector parameter named in §6.
// DefaultThresholds reproduces the specification's defaults exactly.
type Thresholds struct {
	Cycle                    CycleThresholds
	Smurfing                 SmurfingThresholds
	Shell                    ShellThresholds
	SuspiciousScoreThreshold float64
}

// DefaultThresholds returns the specification's default thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Cycle:                    DefaultCycleThresholds(),
		Smurfing:                 DefaultSmurfingThresholds(),
		Shell:                    DefaultShellThresholds(),
		SuspiciousScoreThreshold: DefaultSuspiciousScoreThreshold,
	}
}

// Analyze is the core's single entry point: a pure, deterministic function
// from a transaction batch to an AnalysisResult. It builds the aggregated
// graph, runs the three pattern detectors concurrently over read-only
// views of it, merges their hits in the fixed class order (cycles ->
// fan-in -> fan-out -> shell), assigns ring ids and suspicion scores only
// after that merge, and builds the final report. No suspension point
// within one call is observable to the caller; nothing here mutates shared
// state across calls.
func Analyze(transactions []domain.Transaction, th Thresholds) domain.AnalysisResult {
	start := time.Now()

	g := BuildGraph(transactions)

	var cycleHits, fanInHits, fanOutHits, shellHits []domain.PatternHit
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		cycleHits = DetectCycles(g, th.Cycle)
	}()
	go func() {
		defer wg.Done()
		smurf := DetectSmurfing(g, th.Smurfing)
		for _, hit := range smurf {
			if hit.Kind == domain.PatternFanIn {
				fanInHits = append(fanInHits, hit)
			} else {
				fanOutHits = append(fanOutHits, hit)
			}
		}
	}()
	go func() {
		defer wg.Done()
		shellHits = DetectShellChains(g, th.Shell)
	}()
	wg.Wait()

	hits := make([]domain.PatternHit, 0, len(cycleHits)+len(fanInHits)+len(fanOutHits)+len(shellHits))
	hits = append(hits, cycleHits...)
	hits = append(hits, fanInHits...)
	hits = append(hits, fanOutHits...)
	hits = append(hits, shellHits...)

	rings, scores := AssembleRings(hits)

	elapsed := math.Round(time.Since(start).Seconds()*100) / 100
	return BuildReport(g, rings, scores, elapsed, th.SuspiciousScoreThreshold)
}
