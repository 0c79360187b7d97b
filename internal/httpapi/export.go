package httpapi

import (
	"fmt"
	"net/http"

	"github.com/cogform/cogform/internal/facade"
	"github.com/gin-gonic/gin"
)

type exportRequest struct {
	FormID string              `json:"formId" binding:"required"`
	Format facade.ExportFormat `json:"format"`
}

var exportContentTypes = map[facade.ExportFormat]string{
	facade.ExportJSON:    "application/json",
	facade.ExportCSV:     "text/csv",
	facade.ExportSummary: "text/markdown",
}

// exportExecutions implements `POST /api/export/executions`: returns the
// rendered history as a file attachment rather than a `{success, data}`
// envelope, per spec §6.
func (s *Server) exportExecutions(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	data, err := s.facade.ExportHistory(req.FormID, req.Format)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	contentType, known := exportContentTypes[req.Format]
	if !known {
		contentType = "application/json"
	}
	filename := fmt.Sprintf("%s-executions.%s", req.FormID, extensionFor(req.Format))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

func extensionFor(format facade.ExportFormat) string {
	switch format {
	case facade.ExportCSV:
		return "csv"
	case facade.ExportSummary:
		return "md"
	default:
		return "json"
	}
}
