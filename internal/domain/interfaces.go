package domain

import (
	"errors"
	"time"
)

// ErrInvalidInput is returned when text or parameters fall outside what the
// analysis pipeline accepts.
var ErrInvalidInput = errors.New("invalid input")

// Category is the label assigned to an analysed document.
type Category string

const (
	CategoryDevelopment Category = "Development-Oriented"
	CategoryWelfare     Category = "Welfare-Focused"
	CategoryRegulatory  Category = "Regulatory/Strict"
	CategoryRisk        Category = "Critical/Risk"
	CategoryNeutral     Category = "Neutral"
)

// Categories lists every label, scored ones first in tie-break order.
func Categories() []Category {
	return []Category{CategoryDevelopment, CategoryWelfare, CategoryRegulatory, CategoryRisk, CategoryNeutral}
}

// Prior is a previously analysed document used for similarity ranking.
type Prior struct {
	Title   string
	Summary string
}

// SimilarityEntry is a prior document title with its similarity in percent.
type SimilarityEntry struct {
	Title   string  `json:"title"`
	Percent float64 `json:"percent"`
}

// Analysis is the full output of the pipeline for one document.
type Analysis struct {
	ID       string            `json:"id"`
	Owner    string            `json:"owner"`
	Title    string            `json:"title"`
	Summary  string            `json:"summary"`
	Category Category          `json:"category"`
	Keywords []string          `json:"keywords"`
	Impact   int               `json:"impact"`
	Similar  []SimilarityEntry `json:"similar"`
}

// Record is the persisted form of an analysis.
type Record struct {
	ID        string
	Owner     string
	Title     string
	Summary   string
	Category  Category
	Keywords  []string
	Impact    int
	CreatedAt time.Time
}

// Dashboard aggregates an owner's records.
type Dashboard struct {
	Owner         string           `json:"owner"`
	Documents     int              `json:"documents"`
	ByCategory    map[Category]int `json:"by_category"`
	AverageImpact float64          `json:"average_impact"`
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}

// Classifier assigns a category label to text.
type Classifier interface {
	Classify(text string) Category
}

// KeywordExtractor returns the most frequent content words of a text.
type KeywordExtractor interface {
	Extract(text string, topN int) []string
}

// ImpactScorer computes a bounded significance score.
type ImpactScorer interface {
	Score(text string) int
}

// SimilarityRanker ranks prior documents against a new summary.
type SimilarityRanker interface {
	Rank(summary string, priors []Prior) []SimilarityEntry
}
