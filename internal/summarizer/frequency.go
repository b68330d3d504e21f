package summarizer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"policypulse/internal/domain"
	"policypulse/internal/textproc"
)

// DefaultSentences is used when a non-positive sentence count is requested.
const DefaultSentences = 5

var whitespaceRun = regexp.MustCompile(`[\s\v\x{85}\p{Z}]+`)

// FrequencySummarizer ranks sentences by content-word frequency.
type FrequencySummarizer struct{}

// NewFrequencySummarizer creates a frequency-based sentence ranker summarizer.
func NewFrequencySummarizer() *FrequencySummarizer {
	return &FrequencySummarizer{}
}

// Summarize returns up to maxSentences sentences of text, most salient first.
// Text that already fits is returned with whitespace normalized and nothing else.
func (s *FrequencySummarizer) Summarize(text string, maxSentences int) (string, error) {
	if !utf8.ValidString(text) {
		return "", fmt.Errorf("summarize: text is not valid UTF-8: %w", domain.ErrInvalidInput)
	}
	if maxSentences <= 0 {
		maxSentences = DefaultSentences
	}
	normalized := Normalize(text)
	sentences := SplitSentences(normalized)
	if len(sentences) <= maxSentences {
		return normalized, nil
	}

	freq := textproc.NewFrequencyTable(textproc.ContentWords(textproc.Tokenize(normalized)))

	type pair struct {
		idx   int
		score float64
	}
	// Sentences without a single scoring token never become candidates, and a
	// repeated sentence is a candidate once.
	candidates := make([]pair, 0, len(sentences))
	seen := make(map[string]struct{}, len(sentences))
	for i, sent := range sentences {
		if _, dup := seen[sent]; dup {
			continue
		}
		seen[sent] = struct{}{}
		total, hits := 0, 0
		for _, tok := range textproc.Tokenize(sent) {
			if c := freq.Count(tok); c > 0 {
				total += c
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		candidates = append(candidates, pair{i, float64(total) / float64(hits)})
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })
	if maxSentences > len(candidates) {
		maxSentences = len(candidates)
	}
	out := make([]string, 0, maxSentences)
	for _, c := range candidates[:maxSentences] {
		out = append(out, sentences[c.idx])
	}
	return strings.Join(out, " "), nil
}

// Normalize collapses whitespace runs to single spaces and trims the ends.
func Normalize(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// SplitSentences normalizes text and splits it after every '.', '!' or '?'
// that is followed by whitespace. Abbreviations and decimals are not special-cased.
func SplitSentences(text string) []string {
	text = Normalize(text)
	if text == "" {
		return nil
	}
	var sentences []string
	start := 0
	for i := 0; i < len(text)-1; i++ {
		switch text[i] {
		case '.', '!', '?':
			if text[i+1] == ' ' {
				sentences = append(sentences, text[start:i+1])
				start = i + 2
				i++
			}
		}
	}
	return append(sentences, text[start:])
}
