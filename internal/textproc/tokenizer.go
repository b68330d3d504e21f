package textproc

import (
	"regexp"
	"strings"
)

// wordPattern matches maximal runs of word characters.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Tokenize lower-cases text and returns its word tokens in order, duplicates kept.
func Tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}
