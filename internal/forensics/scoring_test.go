package forensics

import (
	"testing"

	"github.com/vanshika/fintrace/backend/internal/domain"
)

func TestAssembleRings_RingIDsSequential(t *testing.T) {
	hits := []domain.PatternHit{
		{Kind: domain.PatternCycle, Members: []string{"A", "B", "C"}, ScoringMembers: []string{"A", "B", "C"}, TemporalFactor: 1.0, BaseScore: domain.BaseScoreCycle},
		{Kind: domain.PatternShell, Members: []string{"X", "Y", "Z", "W"}, ScoringMembers: []string{"Y", "Z"}, TemporalFactor: 1.0, BaseScore: domain.BaseScoreShell},
	}

	rings, scores := AssembleRings(hits)
	if len(rings) != 2 {
		t.Fatalf("expected 2 rings, got %d", len(rings))
	}
	if rings[0].RingID != "RING_1" || rings[1].RingID != "RING_2" {
		t.Errorf("expected sequential ring ids, got %s, %s", rings[0].RingID, rings[1].RingID)
	}
	if scores["A"].Score != domain.BaseScoreCycle {
		t.Errorf("expected A's score to equal the cycle base score, got %v", scores["A"].Score)
	}
	if _, ok := scores["X"]; ok {
		t.Errorf("X is a ring member but not a scoring member, should have no accumulated score")
	}
}

func TestAssembleRings_ScoreCapsAtHundred(t *testing.T) {
	hits := []domain.PatternHit{
		{Kind: domain.PatternCycle, Members: []string{"A", "B", "C"}, ScoringMembers: []string{"A"}, TemporalFactor: 1.0, BaseScore: domain.BaseScoreCycle},
		{Kind: domain.PatternShell, Members: []string{"P", "A", "Q"}, ScoringMembers: []string{"A"}, TemporalFactor: 1.0, BaseScore: domain.BaseScoreShell},
	}

	_, scores := AssembleRings(hits)
	if scores["A"].Score != 100 {
		t.Errorf("expected A's score to cap at 100 (85+75), got %v", scores["A"].Score)
	}
}

func TestAssembleRings_RiskScoreUsesFinalCappedScore(t *testing.T) {
	// A accumulates 85 (cycle) + 75 (shell) = 160, capped to 100. The
	// cycle ring's risk score must reflect that final capped value, not a
	// snapshot of A's score taken when the cycle ring was first assembled.
	hits := []domain.PatternHit{
		{Kind: domain.PatternCycle, Members: []string{"A", "B", "C"}, ScoringMembers: []string{"A", "B", "C"}, TemporalFactor: 1.0, BaseScore: domain.BaseScoreCycle},
		{Kind: domain.PatternShell, Members: []string{"P", "A", "Q"}, ScoringMembers: []string{"A"}, TemporalFactor: 1.0, BaseScore: domain.BaseScoreShell},
	}

	rings, _ := AssembleRings(hits)
	cycleRing := rings[0]
	// mean of A=100, B=85, C=85
	want := (100.0 + 85.0 + 85.0) / 3.0
	if cycleRing.RiskScore != want {
		t.Errorf("expected cycle ring risk score %v, got %v", want, cycleRing.RiskScore)
	}
}

func TestAssembleRings_EmptyScoringMembersYieldsZeroRisk(t *testing.T) {
	hits := []domain.PatternHit{
		{Kind: domain.PatternCycle, Members: []string{"A", "B", "C"}, ScoringMembers: nil, TemporalFactor: 1.0, BaseScore: domain.BaseScoreCycle},
	}

	rings, _ := AssembleRings(hits)
	if rings[0].RiskScore != 0 {
		t.Errorf("expected risk score 0 when there are no scoring members, got %v", rings[0].RiskScore)
	}
}
