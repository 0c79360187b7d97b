package httpapi

import (
	"fmt"
	"net/http"

	"github.com/cogform/cogform/internal/facade"
	"github.com/cogform/cogform/internal/schema"
	"github.com/gin-gonic/gin"
)

type compileRequest struct {
	Form             schema.Document `json:"form"`
	OptimizationMode string          `json:"optimization_mode"`
}

// compile implements `POST /api/compile`.
func (s *Server) compile(c *gin.Context) {
	var req compileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	g, result, err := s.facade.Compile(&req.Form, req.OptimizationMode)
	if err != nil {
		serverError(c, err.Error())
		return
	}
	if !result.Valid {
		fail(c, http.StatusBadRequest, "document failed validation", &result)
		return
	}
	ok(c, http.StatusOK, gin.H{"graph": facade.ExportGraph(g), "validation": result})
}
