package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxAggregatedAmount bounds AggregatedEdge.TotalAmount. Accumulation
// saturates at this value rather than growing without limit, realizing the
// "NumericOverflow: saturate, never raise" contract for aggregated amounts.
var MaxAggregatedAmount = decimal.RequireFromString("1000000000000000000")

// AggregatedEdge is the multigraph edge (u -> v) produced by the Graph
// Builder: every transaction from u to v folds into one edge, accreting the
// total amount and the raw per-transaction timestamps. Immutable once built.
type AggregatedEdge struct {
	Source      string
	Target      string
	TotalAmount decimal.Decimal
	Count       int
	Timestamps  []time.Time
	Amounts     []float64 // per-transaction amounts, parallel to Timestamps
}

// Accrete folds one more transaction into the edge, saturating TotalAmount
// at MaxAggregatedAmount instead of letting it grow unbounded.
func (e *AggregatedEdge) Accrete(amount float64, ts time.Time) {
	e.TotalAmount = e.TotalAmount.Add(decimal.NewFromFloat(amount))
	if e.TotalAmount.GreaterThan(MaxAggregatedAmount) {
		e.TotalAmount = MaxAggregatedAmount
	}
	e.Count++
	e.Timestamps = append(e.Timestamps, ts)
	e.Amounts = append(e.Amounts, amount)
}

// AccountNode is a graph vertex with degree and activity counters computed
// once the full transaction pass completes. Immutable thereafter.
type AccountNode struct {
	ID               string
	InDegree         int
	OutDegree        int
	TotalTransactions int
}

// IsLowActivity reports whether the node's total transaction count falls
// within the shell-chain detector's low-activity band.
func (n AccountNode) IsLowActivity(min, max int) bool {
	return n.TotalTransactions >= min && n.TotalTransactions <= max
}

// Graph is the built, aggregated directed multigraph over one transaction
// batch: nodes, edges keyed by (source, target), and adjacency indices used
// by the detectors. It is owned exclusively by one analysis run; once built
// it is treated as read-only by every detector.
type Graph struct {
	Nodes    map[string]*AccountNode
	Edges    map[EdgeKey]*AggregatedEdge
	NodeIDs  []string // sorted, stable iteration order
	Out      map[string][]string // sorted successor ids, self-loops excluded
	In       map[string][]string // sorted predecessor ids, self-loops excluded
}

// EdgeKey identifies an aggregated edge by its endpoints.
type EdgeKey struct {
	Source string
	Target string
}

// Edge returns the aggregated edge between two accounts, if one exists.
func (g *Graph) Edge(u, v string) (*AggregatedEdge, bool) {
	e, ok := g.Edges[EdgeKey{Source: u, Target: v}]
	return e, ok
}
