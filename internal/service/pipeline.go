package service

import (
	"policypulse/internal/classifier"
	"policypulse/internal/impact"
	"policypulse/internal/keywords"
	"policypulse/internal/similarity"
	"policypulse/internal/summarizer"
)

// DefaultComponents wires the frequency summarizer and the fixed-table stages.
func DefaultComponents() Components {
	return Components{
		Summarizer: summarizer.NewFrequencySummarizer(),
		Classifier: classifier.NewKeywordClassifier(),
		Keywords:   keywords.NewFrequencyExtractor(),
		Impact:     impact.NewWeightedScorer(),
		Similarity: similarity.NewCosineRanker(),
	}
}
