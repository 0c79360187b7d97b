package httpapi

import (
	"fmt"
	"net/http"

	"github.com/cogform/cogform/internal/facade"
	"github.com/gin-gonic/gin"
)

// listForms implements `GET /api/forms`.
func (s *Server) listForms(c *gin.Context) {
	ok(c, http.StatusOK, s.facade.GraphIDs())
}

// formGraph implements `GET /api/forms/:id/graph`.
func (s *Server) formGraph(c *gin.Context) {
	id := c.Param("id")
	g, found := s.facade.Graph(id)
	if !found {
		notFound(c, fmt.Sprintf("no cached graph for %q", id))
		return
	}
	ok(c, http.StatusOK, facade.ExportGraph(g))
}

type templateRequest struct {
	ID     string `json:"id" binding:"required"`
	Name   string `json:"name"`
	Author string `json:"author"`
}

// template implements `POST /api/forms/template`.
func (s *Server) template(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	doc := s.facade.Template(req.ID, req.Name, req.Author)
	ok(c, http.StatusOK, doc)
}

// listExecutions implements `GET /api/forms/:id/executions`.
func (s *Server) listExecutions(c *gin.Context) {
	id := c.Param("id")
	ok(c, http.StatusOK, s.facade.History(id))
}

// clearExecutions implements `DELETE /api/forms/:id/executions`.
func (s *Server) clearExecutions(c *gin.Context) {
	id := c.Param("id")
	s.facade.ClearHistory(id)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": fmt.Sprintf("cleared execution history for %q", id)})
}
