package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cogform/cogform/internal/schema"
	"github.com/cogform/cogform/internal/validate"
	"github.com/gin-gonic/gin"
)

// validateDocument implements `POST /api/validate`: body is a document
// JSON object validated directly, without touching the facade's cache.
func (s *Server) validateDocument(c *gin.Context) {
	var doc schema.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		badRequest(c, fmt.Sprintf("invalid document JSON: %v", err))
		return
	}
	ok(c, http.StatusOK, s.facade.Validate(&doc))
}

// validateFile implements `POST /api/validate/file`: a multipart upload
// of a `.form` document.
func (s *Server) validateFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequest(c, fmt.Sprintf("missing file upload: %v", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		serverError(c, fmt.Sprintf("failed to open upload: %v", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		serverError(c, fmt.Sprintf("failed to read upload: %v", err))
		return
	}

	var doc schema.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		result := validate.Result{Valid: false, Errors: []validate.Error{{
			Kind: validate.KindSchema, Severity: validate.SeverityError,
			Message: fmt.Sprintf("failed to parse document: %v", err),
		}}}
		ok(c, http.StatusOK, result)
		return
	}
	ok(c, http.StatusOK, s.facade.Validate(&doc))
}
