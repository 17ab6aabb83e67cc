package forensics

import (
	"sort"

	"github.com/vanshika/fintrace/backend/internal/domain"
)

// CycleThresholds bounds the cycle detector's simple-cycle length search,
// per §6 (CYCLE_LENGTH_MIN/_MAX).
type CycleThresholds struct {
	MinLength int
	MaxLength int
}

// DefaultCycleThresholds returns the specification's default cycle length
// bounds per §4.2.
func DefaultCycleThresholds() CycleThresholds {
	return CycleThresholds{MinLength: 3, MaxLength: 5}
}

// DetectCycles enumerates every simple directed cycle whose length falls
// within th in the graph's non-self-loop adjacency. Tarjan's algorithm
// first narrows the search to non-trivial strongly-connected components (a
// node outside any cycle can never be a cycle member); within each
// component a bounded depth-first search is run from each member in
// ascending id order as the anchor, and finds every cycle whose canonical
// (lexicographically-smallest-first) rotation starts at that anchor, by
// restricting traversal to ids >= the anchor.
func DetectCycles(g *domain.Graph, th CycleThresholds) []domain.PatternHit {
	components := tarjanSCC(g, th.MinLength)

	var hits []domain.PatternHit
	for _, comp := range components {
		if len(comp) < th.MinLength {
			continue
		}
		hits = append(hits, cyclesInComponent(g, comp, th)...)
	}
	return hits
}

// tarjanSCC returns every strongly-connected component with >= minLength
// members, each as a sorted slice of node ids. A component smaller than
// minLength cannot contain a cycle long enough to qualify.
func tarjanSCC(g *domain.Graph, minLength int) [][]string {
	index := 0
	indices := make(map[string]int)
	lowlink := make(map[string]int)
	onStack := make(map[string]bool)
	var stack []string
	var components [][]string

	var strongconnect func(v string)
	strongconnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.Out[v] {
			if _, seen := indices[w]; !seen {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] {
				if indices[w] < lowlink[v] {
					lowlink[v] = indices[w]
				}
			}
		}

		if lowlink[v] == indices[v] {
			var comp []string
			for {
				n := len(stack) - 1
				w := stack[n]
				stack = stack[:n]
				onStack[w] = false
				comp = append(comp, w)
				if w == v {
					break
				}
			}
			if len(comp) >= minLength {
				sort.Strings(comp)
				components = append(components, comp)
			}
		}
	}

	for _, v := range g.NodeIDs {
		if _, seen := indices[v]; !seen {
			strongconnect(v)
		}
	}

	sort.Slice(components, func(i, j int) bool {
		return components[i][0] < components[j][0]
	})
	return components
}

// cyclesInComponent finds every simple cycle whose length falls within th
// wholly inside one strongly-connected component, emitted in
// anchor-ascending then DFS-discovery order.
func cyclesInComponent(g *domain.Graph, comp []string, th CycleThresholds) []domain.PatternHit {
	member := make(map[string]bool, len(comp))
	for _, id := range comp {
		member[id] = true
	}

	var hits []domain.PatternHit
	for _, anchor := range comp {
		path := []string{anchor}
		onPath := map[string]bool{anchor: true}

		var dfs func(current string)
		dfs = func(current string) {
			for _, next := range g.Out[current] {
				if next == anchor {
					if len(path) >= th.MinLength {
						hits = append(hits, newCycleHit(path))
					}
					continue
				}
				if len(path) >= th.MaxLength || next < anchor || !member[next] || onPath[next] {
					continue
				}
				path = append(path, next)
				onPath[next] = true
				dfs(next)
				onPath[next] = false
				path = path[:len(path)-1]
			}
		}
		dfs(anchor)
	}
	return hits
}

func newCycleHit(path []string) domain.PatternHit {
	members := append([]string(nil), path...)
	return domain.PatternHit{
		Kind:           domain.PatternCycle,
		Members:        members,
		ScoringMembers: members,
		TemporalFactor: 1.0,
		BaseScore:      domain.BaseScoreCycle,
	}
}
