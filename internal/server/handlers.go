package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelsense/reelsense/internal/analysis"
	"github.com/reelsense/reelsense/internal/models"
)

type Handler struct {
	analyzer       *analysis.Analyzer
	defaultAspects []string
}

type AnalyzeRequest struct {
	Review  string   `json:"review"`
	Aspects []string `json:"aspects"`
	Method  string   `json:"method"`
}

type AnalyzeResponse struct {
	Rows models.ResultTable `json:"rows"`
}

func (h *Handler) RenderForm(c *gin.Context) {
	c.HTML(http.StatusOK, "index", gin.H{
		"Aspects": h.defaultAspects,
	})
}

// HandleAnalyze runs the analysis and always answers 200 with a table;
// failures show up as error rows, never as a broken page.
func (h *Handler) HandleAnalyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	method := models.Method(req.Method)
	if method == "" {
		method = models.MethodRemote
	}

	table := h.analyzer.Analyze(c.Request.Context(), req.Review, req.Aspects, method)
	c.JSON(http.StatusOK, AnalyzeResponse{Rows: table})
}
