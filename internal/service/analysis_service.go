package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"policypulse/internal/domain"
	"policypulse/internal/store"
)

// AnalyzeRequest is one document submitted for analysis.
type AnalyzeRequest struct {
	Owner string
	Title string
	Text  string
}

// Options carries the tunables of the pipeline.
type Options struct {
	SummarySentences int
	KeywordCount     int
}

// Components groups the pipeline stages.
type Components struct {
	Summarizer domain.Summarizer
	Classifier domain.Classifier
	Keywords   domain.KeywordExtractor
	Impact     domain.ImpactScorer
	Similarity domain.SimilarityRanker
}

// AnalysisService runs the pipeline stages and records each result.
type AnalysisService struct {
	stages Components
	store  store.Storage
	opts   Options
	logger *zap.Logger
	now    func() time.Time
}

// NewAnalysisService wires stages to a store. A nil logger discards output.
func NewAnalysisService(stages Components, st store.Storage, opts Options, logger *zap.Logger) *AnalysisService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalysisService{stages: stages, store: st, opts: opts, logger: logger, now: time.Now}
}

// Analyze runs the pipeline over req.Text, ranks it against the owner's
// earlier documents and saves the result.
func (s *AnalysisService) Analyze(ctx context.Context, req AnalyzeRequest) (*domain.Analysis, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)

	summary, err := s.stages.Summarizer.Summarize(req.Text, s.opts.SummarySentences)
	if err != nil {
		return nil, fmt.Errorf("summarize %q: %w", title, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	priors, err := s.store.Priors(ctx, req.Owner)
	if err != nil {
		return nil, fmt.Errorf("load prior documents: %w", err)
	}

	a := &domain.Analysis{
		ID:       uuid.NewString(),
		Owner:    req.Owner,
		Title:    title,
		Summary:  summary,
		Category: s.stages.Classifier.Classify(summary),
		Keywords: s.stages.Keywords.Extract(summary, s.opts.KeywordCount),
		Impact:   s.stages.Impact.Score(summary),
		Similar:  s.stages.Similarity.Rank(summary, priors),
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rec := domain.Record{
		ID:        a.ID,
		Owner:     a.Owner,
		Title:     a.Title,
		Summary:   a.Summary,
		Category:  a.Category,
		Keywords:  a.Keywords,
		Impact:    a.Impact,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("save analysis: %w", err)
	}

	s.logger.Info("document analysed",
		zap.String("id", a.ID),
		zap.String("owner", a.Owner),
		zap.String("title", a.Title),
		zap.String("category", string(a.Category)),
		zap.Int("impact", a.Impact),
		zap.Int("priors", len(priors)))
	return a, nil
}

// IngestFiles analyses every .txt file matched by paths, in order, titling
// each document with its file name.
func (s *AnalysisService) IngestFiles(ctx context.Context, owner string, paths []string) ([]*domain.Analysis, error) {
	var files []string
	for _, p := range paths {
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", p, domain.ErrInvalidInput)
		}
		if matches == nil {
			matches = []string{p}
		}
		for _, m := range matches {
			if !strings.HasSuffix(strings.ToLower(m), ".txt") {
				s.logger.Debug("skipping non-text file", zap.String("path", m))
				continue
			}
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .txt documents found: %w", domain.ErrInvalidInput)
	}

	out := make([]*domain.Analysis, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return out, err
		}
		a, err := s.Analyze(ctx, AnalyzeRequest{Owner: owner, Title: filepath.Base(f), Text: string(data)})
		if err != nil {
			return out, fmt.Errorf("%s: %w", f, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// History returns the owner's stored records, most recent first.
func (s *AnalysisService) History(ctx context.Context, owner string) ([]domain.Record, error) {
	return s.store.ListByOwner(ctx, owner)
}

// Dashboard counts the owner's records per category and averages their impact.
func (s *AnalysisService) Dashboard(ctx context.Context, owner string) (*domain.Dashboard, error) {
	recs, err := s.store.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	d := &domain.Dashboard{Owner: owner, Documents: len(recs), ByCategory: make(map[domain.Category]int)}
	for _, c := range domain.Categories() {
		d.ByCategory[c] = 0
	}
	total := 0
	for _, r := range recs {
		d.ByCategory[r.Category]++
		total += r.Impact
	}
	if len(recs) > 0 {
		d.AverageImpact = float64(total) / float64(len(recs))
	}
	return d, nil
}

func validate(req AnalyzeRequest) error {
	if strings.TrimSpace(req.Owner) == "" {
		return fmt.Errorf("owner is required: %w", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("title is required: %w", domain.ErrInvalidInput)
	}
	if !utf8.ValidString(req.Text) || !utf8.ValidString(req.Title) {
		return fmt.Errorf("text is not valid UTF-8: %w", domain.ErrInvalidInput)
	}
	return nil
}
