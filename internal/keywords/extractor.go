package keywords

import "policypulse/internal/textproc"

// DefaultTopN is used when a non-positive keyword count is requested.
const DefaultTopN = 8

// FrequencyExtractor picks the most frequent content words.
type FrequencyExtractor struct{}

// NewFrequencyExtractor returns a keyword extractor.
func NewFrequencyExtractor() *FrequencyExtractor { return &FrequencyExtractor{} }

// Extract implements domain.KeywordExtractor.
func (FrequencyExtractor) Extract(text string, topN int) []string { return Extract(text, topN) }

// Extract returns up to topN distinct content words of text, most frequent
// first, ties in order of first appearance.
func Extract(text string, topN int) []string {
	if topN <= 0 {
		topN = DefaultTopN
	}
	freq := textproc.NewFrequencyTable(textproc.ContentWords(textproc.Tokenize(text)))
	common := freq.MostCommon(topN)
	out := make([]string, len(common))
	for i, tc := range common {
		out[i] = tc.Token
	}
	return out
}
