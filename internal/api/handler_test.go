package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"policypulse/internal/domain"
	"policypulse/internal/service"
	"policypulse/internal/store/memory"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewAnalysisService(service.DefaultComponents(), memory.NewStorage(), service.Options{SummarySentences: 5, KeywordCount: 8}, zap.NewNop())
	router := gin.New()
	SetupRoutes(router, svc, zap.NewNop())
	return router
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(newTestRouter(), http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("missing request id header")
	}
}

func TestAnalyzeAndHistory(t *testing.T) {
	router := newTestRouter()

	w := do(router, http.MethodPost, "/analyze", `{"owner":"u1","title":"Budget","text":"Infrastructure growth is planned. Welfare subsidy expands."}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	var res AnalyzeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.RequestID == "" || res.Analysis == nil {
		t.Fatalf("unexpected response: %s", w.Body.String())
	}
	if res.Analysis.Impact != 5+3+3+3 {
		t.Errorf("impact = %d", res.Analysis.Impact)
	}
	if res.Analysis.Category != domain.CategoryDevelopment {
		t.Errorf("category = %q", res.Analysis.Category)
	}

	w = do(router, http.MethodGet, "/documents/u1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var docs struct {
		Documents []DocumentResponse `json:"documents"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &docs); err != nil {
		t.Fatal(err)
	}
	if len(docs.Documents) != 1 || docs.Documents[0].Title != "Budget" {
		t.Errorf("unexpected documents: %+v", docs.Documents)
	}

	w = do(router, http.MethodGet, "/dashboard/u1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var d domain.Dashboard
	if err := json.Unmarshal(w.Body.Bytes(), &d); err != nil {
		t.Fatal(err)
	}
	if d.Documents != 1 || d.ByCategory[domain.CategoryDevelopment] != 1 {
		t.Errorf("unexpected dashboard: %+v", d)
	}
}

func TestAnalyze_BadRequests(t *testing.T) {
	router := newTestRouter()
	tests := []struct {
		name string
		body string
	}{
		{"malformed-json", `{"owner":`},
		{"missing-title", `{"owner":"u1","text":"x"}`},
		{"blank-title", `{"owner":"u1","title":"   ","text":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, http.MethodPost, "/analyze", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d body = %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestNoRoute(t *testing.T) {
	w := do(newTestRouter(), http.MethodGet, "/nope", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d", w.Code)
	}
}
