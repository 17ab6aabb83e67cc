package forensics

import (
	"sort"

	"github.com/vanshika/fintrace/backend/internal/domain"
)

// ShellThresholds collects the configurable shell-chain detector
// parameters from §6.
type ShellThresholds struct {
	LowActivityMin int
	LowActivityMax int
	HopCutoff      int
}

// DefaultShellThresholds returns the specification's default thresholds.
func DefaultShellThresholds() ShellThresholds {
	return ShellThresholds{LowActivityMin: 2, LowActivityMax: 3, HopCutoff: 6}
}

// DetectShellChains enumerates simple directed paths of 3-6 hops whose
// interior vertices are all low-activity accounts, per §4.4. Search is a
// bounded depth-first traversal from every source, pruning the instant an
// interior node fails the low-activity test; the whole graph's simple
// paths are never materialized. Emission order is (source, target)
// lexicographic; within a pair, shorter paths come first and paths of equal
// length are ordered lexicographically by their node ids.
func DetectShellChains(g *domain.Graph, th ShellThresholds) []domain.PatternHit {
	type chain struct {
		path []string
	}
	var chains []chain

	for _, source := range g.NodeIDs {
		// v_0 and v_k have no activity constraint; only the interior
		// vertices v_1..v_{k-1} must be low-activity. A node can be both a
		// valid endpoint of one chain and a valid interior hop of a longer
		// one at the same time, so neither loop below gates on source's or
		// next's activity before recording - it only gates on activity
		// before extending further through next as an interior hop.
		path := []string{source}
		onPath := map[string]bool{source: true}

		var dfs func(current string)
		dfs = func(current string) {
			hops := len(path) - 1
			if hops >= th.HopCutoff {
				return
			}
			for _, next := range g.Out[current] {
				if onPath[next] {
					continue
				}
				path = append(path, next)
				onPath[next] = true
				newHops := len(path) - 1
				lowActivity := g.Nodes[next].IsLowActivity(th.LowActivityMin, th.LowActivityMax)

				if newHops >= 3 {
					chains = append(chains, chain{path: append([]string(nil), path...)})
				}

				if lowActivity {
					dfs(next)
				}

				onPath[next] = false
				path = path[:len(path)-1]
			}
		}
		dfs(source)
	}

	sort.Slice(chains, func(i, j int) bool {
		pi, pj := chains[i].path, chains[j].path
		if pi[0] != pj[0] {
			return pi[0] < pj[0]
		}
		ti, tj := pi[len(pi)-1], pj[len(pj)-1]
		if ti != tj {
			return ti < tj
		}
		if len(pi) != len(pj) {
			return len(pi) < len(pj)
		}
		for k := range pi {
			if pi[k] != pj[k] {
				return pi[k] < pj[k]
			}
		}
		return false
	})

	hits := make([]domain.PatternHit, 0, len(chains))
	for _, c := range chains {
		interior := append([]string(nil), c.path[1:len(c.path)-1]...)
		hits = append(hits, domain.PatternHit{
			Kind:           domain.PatternShell,
			Members:        append([]string(nil), c.path...),
			ScoringMembers: interior,
			TemporalFactor: 1.0,
			BaseScore:      domain.BaseScoreShell,
		})
	}
	return hits
}
