package similarity

import (
	"math"
	"sort"

	"policypulse/internal/domain"
	"policypulse/internal/textproc"
)

// TopK is the number of matches Rank returns.
const TopK = 2

// CosineRanker compares raw token-count vectors.
type CosineRanker struct{}

// NewCosineRanker returns the bag-of-words cosine ranker.
func NewCosineRanker() *CosineRanker { return &CosineRanker{} }

// Rank implements domain.SimilarityRanker.
func (CosineRanker) Rank(summary string, priors []domain.Prior) []domain.SimilarityEntry {
	return Rank(summary, priors)
}

// Rank scores every prior against summary and returns the TopK best,
// highest first. Equal scores keep the priors' order.
func Rank(summary string, priors []domain.Prior) []domain.SimilarityEntry {
	query := textproc.NewFrequencyTable(textproc.Tokenize(summary))
	results := make([]domain.SimilarityEntry, 0, len(priors))
	for _, p := range priors {
		doc := textproc.NewFrequencyTable(textproc.Tokenize(p.Summary))
		results = append(results, domain.SimilarityEntry{
			Title:   p.Title,
			Percent: round2(cosine(query, doc) * 100),
		})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Percent > results[j].Percent })
	if len(results) > TopK {
		results = results[:TopK]
	}
	return results
}

// Cosine returns the cosine similarity of the token-count vectors of a and b,
// 0 when either has no tokens.
func Cosine(a, b string) float64 {
	return cosine(
		textproc.NewFrequencyTable(textproc.Tokenize(a)),
		textproc.NewFrequencyTable(textproc.Tokenize(b)),
	)
}

func cosine(a, b *textproc.FrequencyTable) float64 {
	vocabulary := vocabularyOf(a, b)
	va := vectorize(a, vocabulary)
	vb := vectorize(b, vocabulary)
	na, nb := norm(va), norm(vb)
	if na == 0 || nb == 0 {
		return 0
	}
	return dot(va, vb) / (na * nb)
}

// vocabularyOf builds a stable index over the union of both tables' tokens.
func vocabularyOf(a, b *textproc.FrequencyTable) map[string]int {
	vocabulary := make(map[string]int, a.Len()+b.Len())
	for _, ft := range []*textproc.FrequencyTable{a, b} {
		for _, tok := range ft.Tokens() {
			if _, ok := vocabulary[tok]; !ok {
				vocabulary[tok] = len(vocabulary)
			}
		}
	}
	return vocabulary
}

func vectorize(ft *textproc.FrequencyTable, vocabulary map[string]int) []float64 {
	vec := make([]float64, len(vocabulary))
	for _, tok := range ft.Tokens() {
		vec[vocabulary[tok]] = float64(ft.Count(tok))
	}
	return vec
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

func norm(v []float64) float64 {
	return math.Sqrt(dot(v, v))
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
