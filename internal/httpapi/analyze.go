package httpapi

import (
	"fmt"
	"net/http"

	"github.com/cogform/cogform/internal/schema"
	"github.com/gin-gonic/gin"
)

type formRequest struct {
	Form schema.Document `json:"form"`
}

// analyze implements `POST /api/analyze`.
func (s *Server) analyze(c *gin.Context) {
	var req formRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	analysis, result, err := s.facade.Analyze(&req.Form)
	if err != nil {
		serverError(c, err.Error())
		return
	}
	if !result.Valid {
		fail(c, http.StatusBadRequest, "document failed validation", &result)
		return
	}
	ok(c, http.StatusOK, analysis)
}

// report implements `POST /api/report`.
func (s *Server) report(c *gin.Context) {
	var req formRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	report, err := s.facade.Report(&req.Form)
	if err != nil {
		serverError(c, err.Error())
		return
	}
	ok(c, http.StatusOK, gin.H{"report": report, "format": "markdown"})
}
