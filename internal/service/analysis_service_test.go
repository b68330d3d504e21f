package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"policypulse/internal/domain"
	"policypulse/internal/store/memory"
)

const scenario = "Infrastructure investment drives growth. The subsidy program offers benefit and relief. Compliance is mandatory under this regulation."

func newTestService() (*AnalysisService, *memory.Storage) {
	st := memory.NewStorage()
	svc := NewAnalysisService(DefaultComponents(), st, Options{SummarySentences: 2, KeywordCount: 8}, nil)
	tick := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}
	return svc, st
}

func TestAnalyze_Scenario(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()

	a, err := svc.Analyze(ctx, AnalyzeRequest{Owner: "u1", Title: " Budget 2024 ", Text: scenario})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantSummary := "Infrastructure investment drives growth. The subsidy program offers benefit and relief."
	if a.Summary != wantSummary {
		t.Errorf("summary = %q", a.Summary)
	}
	if a.Title != "Budget 2024" {
		t.Errorf("title = %q", a.Title)
	}
	// the category is computed on the summary, not the raw text
	if a.Category != domain.CategoryWelfare {
		t.Errorf("category = %q", a.Category)
	}
	wantKeywords := []string{"infrastructure", "investment", "drives", "growth", "subsidy", "program", "offers", "benefit"}
	if !reflect.DeepEqual(a.Keywords, wantKeywords) {
		t.Errorf("keywords = %v", a.Keywords)
	}
	if a.Impact != 5+4+3+3 {
		t.Errorf("impact = %d", a.Impact)
	}
	if len(a.Similar) != 0 {
		t.Errorf("first document should have no similar entries, got %v", a.Similar)
	}
	if a.ID == "" {
		t.Error("expected an id")
	}

	recs, _ := st.ListByOwner(ctx, "u1")
	if len(recs) != 1 || recs[0].ID != a.ID || recs[0].Summary != a.Summary {
		t.Errorf("record not persisted: %+v", recs)
	}
}

func TestAnalyze_RanksAgainstOwnPriorsOnly(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Analyze(ctx, AnalyzeRequest{Owner: "u1", Title: "first", Text: scenario}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Analyze(ctx, AnalyzeRequest{Owner: "u1", Title: "unrelated", Text: "Fishing quotas change."}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Analyze(ctx, AnalyzeRequest{Owner: "u2", Title: "foreign", Text: scenario}); err != nil {
		t.Fatal(err)
	}

	a, err := svc.Analyze(ctx, AnalyzeRequest{Owner: "u1", Title: "second", Text: scenario})
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Similar) != 2 {
		t.Fatalf("expected 2 similar entries, got %v", a.Similar)
	}
	if a.Similar[0].Title != "first" || a.Similar[0].Percent != 100 {
		t.Errorf("expected identical prior first at 100%%, got %+v", a.Similar[0])
	}
	if a.Similar[1].Title != "unrelated" || a.Similar[1].Percent != 0 {
		t.Errorf("unexpected second entry %+v", a.Similar[1])
	}
}

func TestAnalyze_EmptyText(t *testing.T) {
	svc, _ := newTestService()
	a, err := svc.Analyze(context.Background(), AnalyzeRequest{Owner: "u1", Title: "blank", Text: ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Summary != "" || a.Category != domain.CategoryNeutral || len(a.Keywords) != 0 || a.Impact != 0 || len(a.Similar) != 0 {
		t.Errorf("unexpected analysis of empty text: %+v", a)
	}
}

func TestAnalyze_InvalidInput(t *testing.T) {
	svc, _ := newTestService()
	tests := []struct {
		name string
		req  AnalyzeRequest
	}{
		{"missing-owner", AnalyzeRequest{Title: "t", Text: "x"}},
		{"missing-title", AnalyzeRequest{Owner: "u", Title: "  ", Text: "x"}},
		{"bad-utf8", AnalyzeRequest{Owner: "u", Title: "t", Text: "\xff\xfe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Analyze(context.Background(), tt.req)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestAnalyze_CanceledContext(t *testing.T) {
	svc, st := newTestService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.Analyze(ctx, AnalyzeRequest{Owner: "u", Title: "t", Text: scenario}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if recs, _ := st.ListByOwner(context.Background(), "u"); len(recs) != 0 {
		t.Errorf("nothing should be saved, got %v", recs)
	}
}

func TestIngestFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("a.txt", scenario)
	write("b.TXT", "Pension relief for seniors.")
	write("notes.md", "ignored")

	svc, _ := newTestService()
	got, err := svc.IngestFiles(context.Background(), "u1", []string{filepath.Join(dir, "*")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 analyses, got %d", len(got))
	}
	if got[0].Title != "a.txt" || got[1].Title != "b.TXT" {
		t.Errorf("unexpected titles %q, %q", got[0].Title, got[1].Title)
	}
	if len(got[1].Similar) != 1 || got[1].Similar[0].Title != "a.txt" {
		t.Errorf("second file should be ranked against the first: %+v", got[1].Similar)
	}
}

func TestIngestFiles_NoText(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.IngestFiles(context.Background(), "u1", []string{filepath.Join(t.TempDir(), "*.pdf")})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestHistoryAndDashboard(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	texts := map[string]string{
		"welfare":    "Pension relief and housing assistance.",
		"regulatory": "Compliance is mandatory.",
		"neutral":    "The committee met.",
	}
	for _, title := range []string{"welfare", "regulatory", "neutral"} {
		if _, err := svc.Analyze(ctx, AnalyzeRequest{Owner: "u1", Title: title, Text: texts[title]}); err != nil {
			t.Fatal(err)
		}
	}

	hist, err := svc.History(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(hist) != 3 || hist[0].Title != "neutral" {
		t.Errorf("unexpected history: %+v", hist)
	}

	d, err := svc.Dashboard(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if d.Documents != 3 {
		t.Errorf("documents = %d", d.Documents)
	}
	if d.ByCategory[domain.CategoryWelfare] != 1 || d.ByCategory[domain.CategoryRegulatory] != 1 ||
		d.ByCategory[domain.CategoryNeutral] != 1 || d.ByCategory[domain.CategoryRisk] != 0 {
		t.Errorf("unexpected category counts: %v", d.ByCategory)
	}
	// compliance = 2, others 0
	if d.AverageImpact != 2.0/3.0 {
		t.Errorf("average impact = %v", d.AverageImpact)
	}

	empty, err := svc.Dashboard(ctx, "nobody")
	if err != nil || empty.Documents != 0 || empty.AverageImpact != 0 {
		t.Errorf("unexpected empty dashboard: %+v, %v", empty, err)
	}
}

func TestIngestFiles_BadPattern(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.IngestFiles(context.Background(), "u1", []string{filepath.Join(t.TempDir(), "[")})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
