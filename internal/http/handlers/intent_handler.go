// README: Intent analysis handler; the caller-facing (and mediation-compatible) endpoint.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"manitas/internal/modules/intent"
)

// Analyzer is the pipeline surface this handler needs; tests substitute a fake.
type Analyzer interface {
	AnalyzeProblem(ctx context.Context, description string) intent.IntentResult
}

type IntentHandler struct {
	analyzer Analyzer
}

func NewIntentHandler(analyzer Analyzer) *IntentHandler {
	return &IntentHandler{analyzer: analyzer}
}

type analyzeReq struct {
	// ProblemDescription matches the mediation API contract; Description is
	// the shorter alias the mobile client sends. Either works.
	ProblemDescription string `json:"problemDescription"`
	Description        string `json:"description"`
}

// Analyze handles POST /api/intent/analyze.
func (h *IntentHandler) Analyze(c *gin.Context) {
	var req analyzeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = strings.TrimSpace(req.ProblemDescription)
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	// AnalyzeProblem never fails; a no-match outcome is a 200 with
	// confidence 0 and a nil detected_service.
	result := h.analyzer.AnalyzeProblem(ctx, description)
	writeJSON(c, http.StatusOK, result)
}
