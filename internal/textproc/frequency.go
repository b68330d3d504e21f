package textproc

import "sort"

// TokenCount is a token paired with its number of occurrences.
type TokenCount struct {
	Token string
	Count int
}

// FrequencyTable is a bag of words that remembers first-insertion order.
// It never holds a zero count.
type FrequencyTable struct {
	counts map[string]int
	order  []string
}

// NewFrequencyTable tallies tokens.
func NewFrequencyTable(tokens []string) *FrequencyTable {
	ft := &FrequencyTable{counts: make(map[string]int)}
	for _, t := range tokens {
		ft.Add(t)
	}
	return ft
}

// Add records one more occurrence of tok.
func (ft *FrequencyTable) Add(tok string) {
	if _, ok := ft.counts[tok]; !ok {
		ft.order = append(ft.order, tok)
	}
	ft.counts[tok]++
}

// Count returns the occurrences of tok, 0 when absent.
func (ft *FrequencyTable) Count(tok string) int { return ft.counts[tok] }

// Len returns the number of distinct tokens.
func (ft *FrequencyTable) Len() int { return len(ft.order) }

// Tokens returns the distinct tokens in first-seen order.
func (ft *FrequencyTable) Tokens() []string {
	return append([]string(nil), ft.order...)
}

// MostCommon returns the n most frequent tokens, highest first.
// Equal counts keep first-seen order. An n larger than Len returns every
// entry; a non-positive n returns none.
func (ft *FrequencyTable) MostCommon(n int) []TokenCount {
	if n <= 0 {
		return []TokenCount{}
	}
	entries := make([]TokenCount, len(ft.order))
	for i, t := range ft.order {
		entries[i] = TokenCount{Token: t, Count: ft.counts[t]}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Count > entries[j].Count })
	if n < len(entries) {
		entries = entries[:n]
	}
	return entries
}
