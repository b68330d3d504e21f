package store

import (
	"context"
	"strings"

	"policypulse/internal/domain"
)

// keywordSeparator joins keywords in their persisted form.
const keywordSeparator = ", "

// Storage persists analysis records per owner.
type Storage interface {
	Save(ctx context.Context, rec domain.Record) error
	// ListByOwner returns the owner's records, most recent first.
	ListByOwner(ctx context.Context, owner string) ([]domain.Record, error)
	// Priors returns (title, summary) pairs of the owner's records, most recent first.
	Priors(ctx context.Context, owner string) ([]domain.Prior, error)
	Close() error
}

// EncodeKeywords joins keywords into the stored comma-separated form.
func EncodeKeywords(keywords []string) string {
	return strings.Join(keywords, keywordSeparator)
}

// DecodeKeywords reverses EncodeKeywords. An empty string decodes to no keywords.
func DecodeKeywords(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, keywordSeparator)
}

// PriorsOf projects records onto their (title, summary) pairs.
func PriorsOf(records []domain.Record) []domain.Prior {
	out := make([]domain.Prior, len(records))
	for i, r := range records {
		out[i] = domain.Prior{Title: r.Title, Summary: r.Summary}
	}
	return out
}
