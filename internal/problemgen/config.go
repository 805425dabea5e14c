package problemgen

// TierConfig holds the numeric bounds and tuning constants for a tier.
// All values are non-decreasing from within10 to within100.
type TierConfig struct {
	// Max is the inclusive upper bound on operands and results.
	Max int

	MinOperand1   int
	MinOperand2   int
	MinSum        int // smallest accepted sum for addition
	MinDifference int // smallest accepted difference for subtraction

	// ComplexityThreshold is 30% of Max. Informational only; the minimums
	// above are the full acceptance contract.
	ComplexityThreshold int
}

var tierConfigs = map[Tier]TierConfig{
	TierWithin10:  {Max: 10, MinOperand1: 1, MinOperand2: 1, MinSum: 2, MinDifference: 0, ComplexityThreshold: 3},
	TierWithin20:  {Max: 20, MinOperand1: 2, MinOperand2: 1, MinSum: 5, MinDifference: 1, ComplexityThreshold: 6},
	TierWithin50:  {Max: 50, MinOperand1: 5, MinOperand2: 2, MinSum: 10, MinDifference: 2, ComplexityThreshold: 15},
	TierWithin100: {Max: 100, MinOperand1: 10, MinOperand2: 3, MinSum: 15, MinDifference: 5, ComplexityThreshold: 30},
}

// Config returns the tier's bounds. Unknown tiers get the within10 bounds.
func (t Tier) Config() TierConfig {
	if cfg, ok := tierConfigs[t]; ok {
		return cfg
	}
	return tierConfigs[TierWithin10]
}

// Max returns the tier's inclusive upper bound.
func (t Tier) Max() int {
	return t.Config().Max
}

const (
	// MaxAttempts is the rejection-sampling budget per question.
	MaxAttempts = 100

	// noCarrySumCap keeps carry-free sums to single-digit ones arithmetic.
	noCarrySumCap = 18
)
