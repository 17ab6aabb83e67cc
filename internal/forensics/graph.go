// Package forensics is the pure, deterministic money-muling detection core:
// graph construction, the three pattern detectors, the false-positive
// filter, suspicion scoring, ring assembly, and report building. Analyze is
// the single entry point; everything else in this package is an
// implementation detail reachable only through it or its unit tests.
package forensics

import (
	"sort"

	"github.com/vanshika/fintrace/backend/internal/domain"
)

// BuildGraph folds a transaction stream into the aggregated directed
// multigraph the detectors operate on. Self-loops are retained as edges and
// counted toward node activity, but never appear in Out/In adjacency, which
// is what every detector walks.
func BuildGraph(transactions []domain.Transaction) *domain.Graph {
	g := &domain.Graph{
		Nodes: make(map[string]*domain.AccountNode),
		Edges: make(map[domain.EdgeKey]*domain.AggregatedEdge),
		Out:   make(map[string][]string),
		In:    make(map[string][]string),
	}

	touch := func(id string) {
		if _, ok := g.Nodes[id]; !ok {
			g.Nodes[id] = &domain.AccountNode{ID: id}
		}
	}

	outNeighbors := make(map[string]map[string]struct{})
	inNeighbors := make(map[string]map[string]struct{})

	for _, tx := range transactions {
		touch(tx.SenderID)
		touch(tx.ReceiverID)

		key := domain.EdgeKey{Source: tx.SenderID, Target: tx.ReceiverID}
		edge, ok := g.Edges[key]
		if !ok {
			edge = &domain.AggregatedEdge{Source: tx.SenderID, Target: tx.ReceiverID}
			g.Edges[key] = edge
		}
		edge.Accrete(tx.Amount, tx.Timestamp)

		if tx.SenderID == tx.ReceiverID {
			continue
		}
		if outNeighbors[tx.SenderID] == nil {
			outNeighbors[tx.SenderID] = make(map[string]struct{})
		}
		outNeighbors[tx.SenderID][tx.ReceiverID] = struct{}{}
		if inNeighbors[tx.ReceiverID] == nil {
			inNeighbors[tx.ReceiverID] = make(map[string]struct{})
		}
		inNeighbors[tx.ReceiverID][tx.SenderID] = struct{}{}
	}

	for id, node := range g.Nodes {
		node.InDegree = len(inNeighbors[id])
		node.OutDegree = len(outNeighbors[id])
	}

	for key, edge := range g.Edges {
		// A self-loop edge is simultaneously its node's own incoming and
		// outgoing edge, so it is counted on both sides even though
		// key.Source == key.Target (§3: total_transactions sums incoming
		// and outgoing edge counts).
		g.Nodes[key.Source].TotalTransactions += edge.Count
		g.Nodes[key.Target].TotalTransactions += edge.Count
	}

	for id := range g.Nodes {
		g.NodeIDs = append(g.NodeIDs, id)
	}
	sort.Strings(g.NodeIDs)

	for id, neighbors := range outNeighbors {
		g.Out[id] = sortedKeys(neighbors)
	}
	for id, neighbors := range inNeighbors {
		g.In[id] = sortedKeys(neighbors)
	}

	return g
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
