package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/cogform/cogform/internal/schema"
	"github.com/cogform/cogform/internal/scheduler"
	"github.com/gin-gonic/gin"
)

// executeConfig mirrors scheduler.Config's overridable fields for JSON
// request bodies (spec §6 `{inputs?, config?}`).
type executeConfig struct {
	MaxIterations int                 `json:"max_iterations"`
	TimeoutMS     int                 `json:"timeout_ms"`
	Mode          schema.ExecutionMode `json:"mode"`
}

func (c executeConfig) toSchedulerConfig() *scheduler.Config {
	return &scheduler.Config{MaxIterations: c.MaxIterations, TimeoutMS: c.TimeoutMS, Mode: c.Mode}
}

type executeRequest struct {
	Inputs map[string]any `json:"inputs"`
	Config *executeConfig `json:"config"`
}

func (r executeRequest) schedulerConfig() *scheduler.Config {
	if r.Config == nil {
		return nil
	}
	return r.Config.toSchedulerConfig()
}

// executeByID implements `POST /api/execute/:id`.
func (s *Server) executeByID(c *gin.Context) {
	id := c.Param("id")
	var req executeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	result, err := s.facade.Execute(id, req.Inputs, req.schedulerConfig())
	if err != nil {
		notFound(c, err.Error())
		return
	}
	ok(c, http.StatusOK, result)
}

type executeDirectRequest struct {
	Form   schema.Document `json:"form"`
	Inputs map[string]any  `json:"inputs"`
	Config *executeConfig  `json:"config"`
}

// executeDirect implements `POST /api/execute`.
func (s *Server) executeDirect(c *gin.Context) {
	var req executeDirectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	g, result, err := s.facade.Compile(&req.Form, "")
	if err != nil {
		serverError(c, err.Error())
		return
	}
	if !result.Valid {
		fail(c, http.StatusBadRequest, "document failed validation", &result)
		return
	}

	var cfg *scheduler.Config
	if req.Config != nil {
		cfg = req.Config.toSchedulerConfig()
	}
	execResult, err := s.facade.Execute(g.Metadata.ID, req.Inputs, cfg)
	if err != nil {
		serverError(c, err.Error())
		return
	}
	ok(c, http.StatusOK, execResult)
}

// simulate implements `POST /api/simulate/:id`.
func (s *Server) simulate(c *gin.Context) {
	id := c.Param("id")
	var req executeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	result, err := s.facade.Simulate(id, req.Inputs, req.schedulerConfig())
	if err != nil {
		notFound(c, err.Error())
		return
	}
	ok(c, http.StatusOK, result)
}
