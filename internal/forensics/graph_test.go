package forensics

import (
	"testing"

	"github.com/vanshika/fintrace/backend/internal/domain"
)

func TestBuildGraph_AggregatesParallelTransactions(t *testing.T) {
	base := baseTime()
	transactions := []domain.Transaction{
		tx("T1", "A", "B", 100, base),
		tx("T2", "A", "B", 50, base.Add(1)),
	}

	g := BuildGraph(transactions)
	edge, ok := g.Edge("A", "B")
	if !ok {
		t.Fatalf("expected an aggregated edge A->B")
	}
	if edge.Count != 2 {
		t.Errorf("expected edge count 2, got %d", edge.Count)
	}
	total, _ := edge.TotalAmount.Float64()
	if total != 150 {
		t.Errorf("expected total amount 150, got %v", total)
	}
}

func TestBuildGraph_SelfLoopExcludedFromAdjacency(t *testing.T) {
	transactions := []domain.Transaction{tx("T1", "A", "A", 100, baseTime())}

	g := BuildGraph(transactions)
	if len(g.Out["A"]) != 0 || len(g.In["A"]) != 0 {
		t.Errorf("self-loop must not appear in adjacency, got out=%v in=%v", g.Out["A"], g.In["A"])
	}
	if g.Nodes["A"].TotalTransactions != 2 {
		t.Errorf("self-loop is simultaneously its own incoming and outgoing edge and should count twice, got %d", g.Nodes["A"].TotalTransactions)
	}
	if _, ok := g.Edge("A", "A"); !ok {
		t.Errorf("self-loop edge should still be retained")
	}
}

func TestBuildGraph_DegreesCountDistinctCounterparties(t *testing.T) {
	base := baseTime()
	transactions := []domain.Transaction{
		tx("T1", "A", "B", 10, base),
		tx("T2", "A", "B", 10, base.Add(1)),
		tx("T3", "A", "C", 10, base.Add(2)),
	}

	g := BuildGraph(transactions)
	if g.Nodes["A"].OutDegree != 2 {
		t.Errorf("expected out-degree 2 (B and C), got %d", g.Nodes["A"].OutDegree)
	}
	if g.Nodes["A"].TotalTransactions != 3 {
		t.Errorf("expected total_transactions 3, got %d", g.Nodes["A"].TotalTransactions)
	}
}

func TestBuildGraph_AmountSaturatesAtMax(t *testing.T) {
	base := baseTime()
	transactions := []domain.Transaction{
		tx("T1", "A", "B", 9e17, base),
		tx("T2", "A", "B", 9e17, base.Add(1)),
	}

	g := BuildGraph(transactions)
	edge, _ := g.Edge("A", "B")
	if !edge.TotalAmount.Equal(domain.MaxAggregatedAmount) {
		t.Errorf("expected total amount to saturate at MaxAggregatedAmount, got %v", edge.TotalAmount)
	}
}

func TestBuildGraph_EmptyInput(t *testing.T) {
	g := BuildGraph(nil)
	if len(g.NodeIDs) != 0 || len(g.Edges) != 0 {
		t.Errorf("expected an empty graph for empty input")
	}
}

func TestBuildGraph_NodeIDsSorted(t *testing.T) {
	base := baseTime()
	transactions := []domain.Transaction{
		tx("T1", "Z", "M", 10, base),
		tx("T2", "A", "B", 10, base.Add(1)),
	}

	g := BuildGraph(transactions)
	for i := 1; i < len(g.NodeIDs); i++ {
		if g.NodeIDs[i-1] >= g.NodeIDs[i] {
			t.Fatalf("expected sorted node ids, got %v", g.NodeIDs)
		}
	}
}
