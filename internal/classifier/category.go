package classifier

import (
	"policypulse/internal/domain"
	"policypulse/internal/textproc"
)

// categoryKeywords holds the fixed vocabulary of each scored category.
var categoryKeywords = map[domain.Category]map[string]struct{}{
	domain.CategoryDevelopment: set(
		"development", "infrastructure", "growth", "innovation", "expansion",
		"modernization", "industry", "construction", "digital", "progress",
	),
	domain.CategoryWelfare: set(
		"welfare", "subsidy", "benefit", "relief", "pension",
		"healthcare", "education", "assistance", "scholarship", "housing",
	),
	domain.CategoryRegulatory: set(
		"compliance", "mandatory", "penalty", "enforcement", "restriction",
		"prohibited", "license", "strict", "fine", "ban",
	),
	domain.CategoryRisk: set(
		"risk", "crisis", "deficit", "shortage", "decline",
		"threat", "inflation", "unemployment", "debt", "emergency",
	),
}

// scoreOrder is the enumeration order used to break ties.
var scoreOrder = []domain.Category{
	domain.CategoryDevelopment,
	domain.CategoryWelfare,
	domain.CategoryRegulatory,
	domain.CategoryRisk,
}

// CategoryScore is the number of tokens of a text found in a category's vocabulary.
type CategoryScore struct {
	Category domain.Category
	Score    int
}

// KeywordClassifier labels text by counting category keywords.
type KeywordClassifier struct{}

// NewKeywordClassifier returns the fixed-vocabulary classifier.
func NewKeywordClassifier() *KeywordClassifier { return &KeywordClassifier{} }

// Classify implements domain.Classifier.
func (KeywordClassifier) Classify(text string) domain.Category { return Classify(text) }

// Scores counts, for every scored category in tie-break order, how many tokens
// of text belong to its vocabulary. Repeated tokens count each time.
func Scores(text string) []CategoryScore {
	tokens := textproc.Tokenize(text)
	out := make([]CategoryScore, len(scoreOrder))
	for i, cat := range scoreOrder {
		out[i].Category = cat
		words := categoryKeywords[cat]
		for _, t := range tokens {
			if _, ok := words[t]; ok {
				out[i].Score++
			}
		}
	}
	return out
}

// Classify returns the category with the strictly highest score, the earliest
// in tie-break order on a tie, and Neutral when nothing matches.
func Classify(text string) domain.Category {
	best := domain.CategoryNeutral
	bestScore := 0
	for _, cs := range Scores(text) {
		if cs.Score > bestScore {
			best, bestScore = cs.Category, cs.Score
		}
	}
	return best
}

func set(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
