package server

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/reelsense/reelsense/internal/analysis"
)

// NewRouter wires the browser form and the analyze endpoint.
func NewRouter(analyzer *analysis.Analyzer, aspects []string) *gin.Engine {
	h := &Handler{
		analyzer:       analyzer,
		defaultAspects: aspects,
	}

	router := gin.Default()
	router.SetHTMLTemplate(template.Must(template.New("index").Parse(indexHTML)))

	router.GET("/", h.RenderForm)
	router.POST("/analyze", h.HandleAnalyze)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router
}
