package forensics

import (
	"sort"

	"github.com/vanshika/fintrace/backend/internal/domain"
)

// DefaultSuspiciousScoreThreshold is the minimum suspicion score to appear
// in the report's suspicious_accounts section, per §6. Operators can
// retune it via SUSPICIOUS_SCORE_THRESHOLD; see config.ThresholdsConfig.
const DefaultSuspiciousScoreThreshold = 50.0

var patternLabelOrder = map[domain.PatternKind]int{
	domain.PatternCycle:  0,
	domain.PatternFanIn:  1,
	domain.PatternFanOut: 2,
	domain.PatternShell:  3,
}

// BuildReport assembles the final AnalysisResult from the built graph, the
// assembled rings, and the per-account scores, per §4.7.
func BuildReport(g *domain.Graph, rings []domain.FraudRing, scores map[string]*domain.AccountScore, processingSeconds, suspiciousScoreThreshold float64) domain.AnalysisResult {
	suspicious := make([]domain.SuspiciousAccount, 0, len(scores))
	for id, s := range scores {
		if s.Score < suspiciousScoreThreshold {
			continue
		}
		suspicious = append(suspicious, domain.SuspiciousAccount{
			AccountID:      id,
			SuspicionScore: s.Score,
			Patterns:       sortedPatternLabels(s.Patterns),
			RingIDs:        append([]string(nil), s.RingIDs...),
		})
	}
	sort.Slice(suspicious, func(i, j int) bool {
		if suspicious[i].SuspicionScore != suspicious[j].SuspicionScore {
			return suspicious[i].SuspicionScore > suspicious[j].SuspicionScore
		}
		return suspicious[i].AccountID < suspicious[j].AccountID
	})

	nodes := make([]domain.GraphNode, 0, len(g.NodeIDs))
	for _, id := range g.NodeIDs {
		n := g.Nodes[id]
		s, flagged := scores[id]
		flagged = flagged && s.Score >= suspiciousScoreThreshold
		node := domain.GraphNode{
			ID:                id,
			InDegree:          n.InDegree,
			OutDegree:         n.OutDegree,
			TotalTransactions: n.TotalTransactions,
			Suspicious:        flagged,
		}
		if s, ok := scores[id]; ok {
			node.Patterns = sortedPatternLabels(s.Patterns)
			node.RingIDs = append([]string(nil), s.RingIDs...)
		}
		nodes = append(nodes, node)
	}

	edgeKeys := make([]domain.EdgeKey, 0, len(g.Edges))
	for k := range g.Edges {
		edgeKeys = append(edgeKeys, k)
	}
	sort.Slice(edgeKeys, func(i, j int) bool {
		if edgeKeys[i].Source != edgeKeys[j].Source {
			return edgeKeys[i].Source < edgeKeys[j].Source
		}
		return edgeKeys[i].Target < edgeKeys[j].Target
	})
	edges := make([]domain.GraphEdge, 0, len(edgeKeys))
	for _, k := range edgeKeys {
		e := g.Edges[k]
		amount, _ := e.TotalAmount.Float64()
		edges = append(edges, domain.GraphEdge{
			Source:      e.Source,
			Target:      e.Target,
			TotalAmount: amount,
			Count:       e.Count,
		})
	}

	return domain.AnalysisResult{
		SuspiciousAccounts: suspicious,
		FraudRings:         rings,
		Summary: domain.Summary{
			TotalAccountsAnalyzed:     len(g.NodeIDs),
			SuspiciousAccountsFlagged: len(suspicious),
			FraudRingsDetected:        len(rings),
			ProcessingTimeSeconds:     processingSeconds,
		},
		GraphData: domain.GraphProjection{Nodes: nodes, Edges: edges},
	}
}

func sortedPatternLabels(patterns map[domain.PatternKind]struct{}) []string {
	kinds := make([]domain.PatternKind, 0, len(patterns))
	for k := range patterns {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return patternLabelOrder[kinds[i]] < patternLabelOrder[kinds[j]] })

	labels := make([]string, 0, len(kinds))
	for _, k := range kinds {
		labels = append(labels, domain.PatternHit{Kind: k}.Label())
	}
	return labels
}
