package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"policypulse/internal/domain"
	"policypulse/internal/service"
)

// AnalysisPort is the API-facing subset of the analysis service.
type AnalysisPort interface {
	Analyze(ctx context.Context, req service.AnalyzeRequest) (*domain.Analysis, error)
	History(ctx context.Context, owner string) ([]domain.Record, error)
	Dashboard(ctx context.Context, owner string) (*domain.Dashboard, error)
}

// AnalyzeRequest is the JSON body of POST /analyze.
type AnalyzeRequest struct {
	Owner string `json:"owner" binding:"required"`
	Title string `json:"title" binding:"required"`
	Text  string `json:"text"`
}

// AnalyzeResponse wraps an analysis with the request id.
type AnalyzeResponse struct {
	RequestID string           `json:"request_id,omitempty"`
	Analysis  *domain.Analysis `json:"analysis"`
}

// DocumentResponse is one stored record as returned by GET /documents/:owner.
type DocumentResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Summary   string          `json:"summary"`
	Category  domain.Category `json:"category"`
	Keywords  []string        `json:"keywords"`
	Impact    int             `json:"impact"`
	CreatedAt time.Time       `json:"created_at"`
}

type Handler struct {
	svc    AnalysisPort
	logger *zap.Logger
}

func NewHandler(svc AnalysisPort, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

func (h *Handler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid /analyze payload", zap.Error(err))
		h.fail(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	a, err := h.svc.Analyze(c.Request.Context(), service.AnalyzeRequest{Owner: req.Owner, Title: req.Title, Text: req.Text})
	if err != nil {
		h.failFor(c, "analysis_error", err)
		return
	}
	c.JSON(http.StatusOK, AnalyzeResponse{RequestID: c.GetString(requestIDKey), Analysis: a})
}

func (h *Handler) Documents(c *gin.Context) {
	recs, err := h.svc.History(c.Request.Context(), c.Param("owner"))
	if err != nil {
		h.failFor(c, "history_error", err)
		return
	}
	out := make([]DocumentResponse, len(recs))
	for i, r := range recs {
		out[i] = DocumentResponse{
			ID:        r.ID,
			Title:     r.Title,
			Summary:   r.Summary,
			Category:  r.Category,
			Keywords:  r.Keywords,
			Impact:    r.Impact,
			CreatedAt: r.CreatedAt,
		}
	}
	c.JSON(http.StatusOK, gin.H{"documents": out})
}

func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.svc.Dashboard(c.Request.Context(), c.Param("owner"))
	if err != nil {
		h.failFor(c, "dashboard_error", err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) failFor(c *gin.Context, code string, err error) {
	if errors.Is(err, domain.ErrInvalidInput) {
		h.fail(c, http.StatusBadRequest, "invalid_input", err)
		return
	}
	h.logger.Error("request failed", zap.String("code", code), zap.Error(err))
	h.fail(c, http.StatusInternalServerError, code, err)
}

func (h *Handler) fail(c *gin.Context, status int, code string, err error) {
	c.JSON(status, gin.H{
		"error":     code,
		"message":   err.Error(),
		"timestamp": time.Now().UTC(),
	})
}
