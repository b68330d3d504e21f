package impact

import "policypulse/internal/textproc"

// MaxScore caps every impact score.
const MaxScore = 100

var weights = map[string]int{
	"infrastructure": 5,
	"development":    4,
	"investment":     4,
	"reform":         4,
	"subsidy":        3,
	"welfare":        3,
	"employment":     3,
	"growth":         3,
	"compliance":     2,
	"regulation":     2,
}

// WeightedScorer sums fixed keyword weights.
type WeightedScorer struct{}

// NewWeightedScorer returns the fixed-weight impact scorer.
func NewWeightedScorer() *WeightedScorer { return &WeightedScorer{} }

// Score implements domain.ImpactScorer.
func (WeightedScorer) Score(text string) int { return Score(text) }

// Weight returns the weight of tok, 0 when it carries none.
func Weight(tok string) int { return weights[tok] }

// Score adds the weight of every occurrence of a weighted keyword in text,
// saturating at MaxScore.
func Score(text string) int {
	total := 0
	for _, t := range textproc.Tokenize(text) {
		total += weights[t]
		if total >= MaxScore {
			return MaxScore
		}
	}
	return total
}
