package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// health implements `GET /health`: unwrapped (no success envelope),
// exactly `{status, timestamp, version}` per spec §6.
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   s.version,
	})
}

// stats implements `GET /api/stats`.
func (s *Server) stats(c *gin.Context) {
	ok(c, http.StatusOK, s.facade.Stats())
}
