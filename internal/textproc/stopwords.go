package textproc

// minContentLen is the shortest token length that can be a content word.
const minContentLen = 4

var stopwords = map[string]struct{}{
	"the": {}, "is": {}, "in": {}, "and": {}, "to": {},
	"of": {}, "a": {}, "for": {}, "on": {}, "with": {},
	"as": {}, "by": {}, "at": {}, "an": {}, "be": {},
	"this": {}, "that": {}, "from": {}, "or": {}, "are": {},
	"it": {}, "was": {}, "which": {}, "will": {}, "has": {},
}

// IsStopword reports whether tok is one of the fixed function words.
func IsStopword(tok string) bool {
	_, ok := stopwords[tok]
	return ok
}

// ContentWords drops stopwords and tokens of three characters or fewer.
// The relative order of the remaining tokens is kept.
func ContentWords(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if len([]rune(t)) < minContentLen || IsStopword(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}
