package api

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/BerylCAtieno/style-advisor-agent/internal/a2a"
	"github.com/BerylCAtieno/style-advisor-agent/internal/config"
	"github.com/BerylCAtieno/style-advisor-agent/internal/profiler"
	"github.com/gin-gonic/gin"
)

//go:embed web
var webFS embed.FS

// NewRouter wires every endpoint of the service. renderer may be nil.
func NewRouter(cfg *config.Config, renderer profiler.Renderer) *gin.Engine {
	handler := NewHandler(cfg.BatchLimit)
	a2aHandler := a2a.NewA2AHandler(renderer)

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger())

	static, _ := fs.Sub(webFS, "web/static")
	router.StaticFS("/static", http.FS(static))
	router.GET("/", serveIndex)

	router.POST("/process", handler.Process)
	router.POST("/process/batch", handler.ProcessBatch)
	router.GET("/schema", handler.Schema)

	router.GET("/.well-known/agent.json", a2aHandler.ServeAgentCard)
	router.POST("/a2a/advisor", a2aHandler.HandleAdvisor)

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return router
}

func serveIndex(c *gin.Context) {
	page, err := webFS.ReadFile("web/index.html")
	if err != nil {
		c.String(http.StatusInternalServerError, "index not available")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}
