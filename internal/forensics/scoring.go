package forensics

import (
	"fmt"
	"math"

	"github.com/vanshika/fintrace/backend/internal/domain"
)

// AssembleRings walks PatternHits in the fixed class order already
// established by Analyze (cycles, fan-in, fan-out, shell; within-class in
// detector emission order), assigns ring ids, and accumulates per-account
// suspicion scores. Ring-id assignment happens here, strictly after
// detector merge, so the result is deterministic regardless of how the
// detectors themselves ran. Per §4.6/§9, the score cap is applied once,
// after every hit has contributed; a ring's risk score is therefore the
// mean of its scoring members' final, capped suspicion scores, not a
// snapshot taken at the moment the ring was created.
func AssembleRings(hits []domain.PatternHit) ([]domain.FraudRing, map[string]*domain.AccountScore) {
	scores := make(map[string]*domain.AccountScore)
	getScore := func(id string) *domain.AccountScore {
		s, ok := scores[id]
		if !ok {
			s = &domain.AccountScore{AccountID: id}
			scores[id] = s
		}
		return s
	}

	rings := make([]domain.FraudRing, 0, len(hits))
	for i, hit := range hits {
		ringID := fmt.Sprintf("RING_%d", i+1)

		for _, member := range hit.ScoringMembers {
			getScore(member).AddContribution(hit.Kind, ringID, hit.BaseScore*hit.TemporalFactor)
		}

		rings = append(rings, domain.FraudRing{
			RingID:         ringID,
			PatternType:    hit.Label(),
			MemberAccounts: append([]string(nil), hit.Members...),
		})
	}

	for _, s := range scores {
		s.Score = cappedScore(s.Score)
	}

	for i, hit := range hits {
		if len(hit.ScoringMembers) == 0 {
			continue
		}
		sum := 0.0
		for _, member := range hit.ScoringMembers {
			sum += scores[member].Score
		}
		rings[i].RiskScore = math.Round(sum/float64(len(hit.ScoringMembers))*10) / 10
	}

	return rings, scores
}

func cappedScore(score float64) float64 {
	if score > 100 {
		return 100
	}
	return score
}
