package graphexport

import (
	"context"
	"fmt"

	"github.com/vanshika/fintrace/backend/internal/domain"
)

// Exporter persists one analysis result into the configured graph store for
// downstream visualization. Export is best-effort: a caller's failure to
// export never invalidates an already-produced AnalysisReport.
type Exporter struct {
	client Client
}

// NewExporter wraps a Client with the forensics result-to-Cypher translation.
func NewExporter(client Client) *Exporter {
	return &Exporter{client: client}
}

// Export writes every account, aggregated edge, and fraud ring from result
// into the graph, under a single report id so repeated exports of distinct
// reports don't collide on ring membership edges.
func (e *Exporter) Export(ctx context.Context, reportID string, result domain.AnalysisResult) error {
	for _, node := range result.GraphData.Nodes {
		params := map[string]any{
			"id":                node.ID,
			"inDegree":          node.InDegree,
			"outDegree":         node.OutDegree,
			"totalTransactions": node.TotalTransactions,
			"suspicious":        node.Suspicious,
		}
		if _, err := e.client.ExecuteWrite(ctx, upsertAccountCypher, params); err != nil {
			return fmt.Errorf("export account %s: %w", node.ID, err)
		}
	}

	for _, edge := range result.GraphData.Edges {
		params := map[string]any{
			"source":      edge.Source,
			"target":      edge.Target,
			"totalAmount": edge.TotalAmount,
			"count":       edge.Count,
		}
		if _, err := e.client.ExecuteWrite(ctx, upsertRoutedThroughCypher, params); err != nil {
			return fmt.Errorf("export edge %s->%s: %w", edge.Source, edge.Target, err)
		}
	}

	for _, ring := range result.FraudRings {
		params := map[string]any{
			"reportId":       reportID,
			"ringId":         ring.RingID,
			"patternType":    ring.PatternType,
			"riskScore":      ring.RiskScore,
			"memberAccounts": ring.MemberAccounts,
		}
		if _, err := e.client.ExecuteWrite(ctx, upsertRingCypher, params); err != nil {
			return fmt.Errorf("export ring %s: %w", ring.RingID, err)
		}
	}

	return nil
}

const upsertAccountCypher = `
MERGE (a:Account {accountId: $id})
SET a.inDegree = $inDegree,
    a.outDegree = $outDegree,
    a.totalTransactions = $totalTransactions,
    a.suspicious = $suspicious
`

const upsertRoutedThroughCypher = `
MERGE (s:Account {accountId: $source})
MERGE (t:Account {accountId: $target})
MERGE (s)-[r:ROUTED_THROUGH]->(t)
SET r.totalAmount = $totalAmount,
    r.count = $count
`

const upsertRingCypher = `
MERGE (ring:FraudRing {ringId: $ringId, reportId: $reportId})
SET ring.patternType = $patternType,
    ring.riskScore = $riskScore
WITH ring
UNWIND $memberAccounts AS accountId
MATCH (a:Account {accountId: accountId})
MERGE (a)-[:MEMBER_OF]->(ring)
`
