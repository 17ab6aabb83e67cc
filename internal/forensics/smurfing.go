package forensics

import (
	"sort"
	"time"

	"github.com/vanshika/fintrace/backend/internal/domain"
)

// SmurfingThresholds collects the configurable fan-in/fan-out detector
// parameters from §6.
type SmurfingThresholds struct {
	FanThreshold    int
	TemporalWindow  time.Duration
	FP              FPThresholds
}

// DefaultSmurfingThresholds returns the specification's default thresholds.
func DefaultSmurfingThresholds() SmurfingThresholds {
	return SmurfingThresholds{
		FanThreshold:   10,
		TemporalWindow: 72 * time.Hour,
		FP:             DefaultFPThresholds(),
	}
}

// DetectSmurfing flags fan-in and fan-out hubs per §4.3, applies the
// false-positive filter of §4.5 to each candidate, and emits one
// PatternHit per hub per qualifying, non-suppressed side. Fan-in hits are
// emitted before fan-out hits; within each side, hubs are ordered by id.
func DetectSmurfing(g *domain.Graph, th SmurfingThresholds) []domain.PatternHit {
	var fanIn, fanOut []domain.PatternHit

	for _, id := range g.NodeIDs {
		node := g.Nodes[id]
		if id == "" {
			continue
		}
		if node.InDegree >= th.FanThreshold {
			if hit, ok := buildHubHit(g, id, th, true); ok {
				fanIn = append(fanIn, hit)
			}
		}
		if node.OutDegree >= th.FanThreshold {
			if hit, ok := buildHubHit(g, id, th, false); ok {
				fanOut = append(fanOut, hit)
			}
		}
	}

	hits := make([]domain.PatternHit, 0, len(fanIn)+len(fanOut))
	hits = append(hits, fanIn...)
	hits = append(hits, fanOut...)
	return hits
}

// buildHubHit gathers the per-transaction timestamps and amounts on the
// relevant side of hub, runs the false-positive filter, and (if the hub
// survives) returns its PatternHit.
func buildHubHit(g *domain.Graph, hub string, th SmurfingThresholds, fanIn bool) (domain.PatternHit, bool) {
	var counterparties []string
	var timestamps []time.Time
	var amounts []float64

	if fanIn {
		counterparties = g.In[hub]
		for _, u := range counterparties {
			if edge, ok := g.Edge(u, hub); ok {
				timestamps = append(timestamps, edge.Timestamps...)
				amounts = append(amounts, edge.Amounts...)
			}
		}
	} else {
		counterparties = g.Out[hub]
		for _, v := range counterparties {
			if edge, ok := g.Edge(hub, v); ok {
				timestamps = append(timestamps, edge.Timestamps...)
				amounts = append(amounts, edge.Amounts...)
			}
		}
	}

	sorted := append([]time.Time(nil), timestamps...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })
	deltas := successiveDeltas(sorted)

	if isLegitimateLooking(amounts, deltas, len(amounts), th.FP) {
		return domain.PatternHit{}, false
	}

	factor := 1.0 + 0.5*densestWindowFraction(timestamps, th.TemporalWindow)
	if factor > 1.5 {
		factor = 1.5
	}
	if factor < 1.0 {
		factor = 1.0
	}

	members := make([]string, 0, len(counterparties)+1)
	members = append(members, hub)
	members = append(members, counterparties...)

	kind := domain.PatternFanOut
	if fanIn {
		kind = domain.PatternFanIn
	}

	return domain.PatternHit{
		Kind:           kind,
		Members:        members,
		ScoringMembers: []string{hub},
		TemporalFactor: factor,
		BaseScore:      domain.BaseScoreFan,
	}, true
}
