// Package httpapi implements the spec §6 HTTP surface as a Gin router
// over a single facade.Facade, the bit-exact external adapter contract
// the spec reserves for any future client. Handlers are methods on Server,
// which holds the shared dependencies; the request/response idiom
// (`gin.H` envelopes, status passed to `c.JSON`) follows the pack's own
// gin-based service
// (`services/orchestrator/routes`), since the teacher repo carries no
// HTTP layer of its own to imitate directly.
package httpapi

import (
	"log/slog"
	"time"

	"github.com/cogform/cogform/internal/ctxlog"
	"github.com/cogform/cogform/internal/facade"
	"github.com/gin-gonic/gin"
)

// Server bundles the facade and logger every handler in this package
// closes over.
type Server struct {
	facade  *facade.Facade
	logger  *slog.Logger
	version string
}

// NewRouter builds a *gin.Engine wired to every spec §6 route.
func NewRouter(f *facade.Facade, logger *slog.Logger, version string) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{facade: f, logger: logger, version: version}

	router := gin.New()
	router.Use(gin.Recovery(), loggerMiddleware(logger))

	router.GET("/health", s.health)
	router.GET("/api/stats", s.stats)

	router.POST("/api/validate", s.validateDocument)
	router.POST("/api/validate/file", s.validateFile)
	router.POST("/api/compile", s.compile)

	router.GET("/api/forms", s.listForms)
	router.GET("/api/forms/:id/graph", s.formGraph)
	router.POST("/api/forms/template", s.template)
	router.GET("/api/forms/:id/executions", s.listExecutions)
	router.DELETE("/api/forms/:id/executions", s.clearExecutions)

	router.POST("/api/execute/:id", s.executeByID)
	router.POST("/api/execute", s.executeDirect)
	router.POST("/api/simulate/:id", s.simulate)

	router.POST("/api/analyze", s.analyze)
	router.POST("/api/report", s.report)
	router.POST("/api/export/executions", s.exportExecutions)

	if b := f.Broadcaster(); b != nil {
		router.Any("/socket.io/*any", gin.WrapH(b.Handler()))
	}

	return router
}

// loggerMiddleware installs a request-scoped logger into context,
// mirroring the teacher's ctxlog.WithLogger pattern at every app
// entrypoint (spec AMBIENT STACK "Logging").
func loggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLogger := logger.With("method", c.Request.Method, "path", c.Request.URL.Path)
		c.Request = c.Request.WithContext(ctxlog.WithLogger(c.Request.Context(), reqLogger))
		c.Next()
		reqLogger.Debug("request handled", "status", c.Writer.Status(), "duration_ms", float64(time.Since(start).Microseconds())/1000.0)
	}
}
