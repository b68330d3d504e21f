package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"policypulse/internal/domain"
	"policypulse/internal/store"
)

// Storage is an in-memory record store keyed by owner.
type Storage struct {
	mu      sync.RWMutex
	records map[string][]domain.Record
}

// NewStorage returns an empty store.
func NewStorage() *Storage { return &Storage{records: make(map[string][]domain.Record)} }

// Save appends rec under its owner. IDs must be non-empty and unique per owner.
func (s *Storage) Save(_ context.Context, rec domain.Record) error {
	if rec.ID == "" {
		return errors.New("record id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.records[rec.Owner] {
		if existing.ID == rec.ID {
			return errors.New("duplicate record id")
		}
	}
	rec.Keywords = append([]string(nil), rec.Keywords...)
	s.records[rec.Owner] = append(s.records[rec.Owner], rec)
	return nil
}

// ListByOwner returns copies of the owner's records, newest first.
func (s *Storage) ListByOwner(_ context.Context, owner string) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := s.records[owner]
	out := make([]domain.Record, len(recs))
	// newest first; insertion order breaks equal timestamps
	for i := range recs {
		out[i] = recs[len(recs)-1-i]
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Priors returns the owner's (title, summary) pairs, newest first.
func (s *Storage) Priors(ctx context.Context, owner string) ([]domain.Prior, error) {
	recs, err := s.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	return store.PriorsOf(recs), nil
}

// Close drops every record.
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string][]domain.Record)
	return nil
}
