package forensics

// FPThresholds collects the configurable false-positive filter parameters
// from §6 (fp_filter thresholds).
type FPThresholds struct {
	AmountCVMax float64
	DeltaCVMax  float64
	MinCount    int
}

// DefaultFPThresholds returns the specification's default thresholds.
func DefaultFPThresholds() FPThresholds {
	return FPThresholds{AmountCVMax: 0.1, DeltaCVMax: 0.2, MinCount: 20}
}

// isLegitimateLooking implements §4.5: a hub is legitimate-looking, and so
// dropped before scoring, iff its amounts are near-constant, its inter-
// arrival times are near-uniform, and it has enough volume to be a
// recognizable regular payment flow rather than ad-hoc coordination.
func isLegitimateLooking(amounts []float64, deltas []float64, count int, th FPThresholds) bool {
	if count < th.MinCount {
		return false
	}
	amountCV := coefficientOfVariation(amounts)
	deltaCV := coefficientOfVariation(deltas)
	return amountCV < th.AmountCVMax && deltaCV < th.DeltaCVMax
}
