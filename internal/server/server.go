// Package server exposes the invoice builder over HTTP. It hosts a
// single editing session, the way the browser form holds a single
// in-progress invoice.
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/protonstudio/invoice-builder/internal/builder"
	"github.com/protonstudio/invoice-builder/internal/model"
)

// Config holds server configuration
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server represents the HTTP API server
type Server struct {
	config  *Config
	router  *gin.Engine
	builder *builder.Builder
}

// NewServer creates a new API server around an existing builder session.
func NewServer(config *Config, b *builder.Builder) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	s := &Server{
		config:  config,
		router:  router,
		builder: b,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/invoice", s.handleState)
		v1.PUT("/invoice/header", s.handleUpdateHeader)
		v1.POST("/invoice/items", s.handleAddItem)
		v1.PUT("/invoice/items/:id", s.handleUpdateItem)
		v1.DELETE("/invoice/items/:id", s.handleRemoveItem)
		v1.GET("/invoice/totals", s.handleTotals)
		v1.POST("/invoice/validate", s.handleValidate)
		v1.GET("/invoice/preview", s.handlePreview)
		v1.POST("/invoice/export", s.handleExport)
		v1.POST("/invoice/clear", s.handleClear)
		v1.POST("/draft/save", s.handleSaveDraft)
		v1.POST("/draft/load", s.handleLoadDraft)
	}
}

// Handler returns the underlying HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, s.stateResponse())
}

func (s *Server) handleUpdateHeader(c *gin.Context) {
	var req HeaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}
	s.builder.UpdateHeader(req.patch())
	c.JSON(http.StatusOK, s.stateResponse())
}

func (s *Server) handleAddItem(c *gin.Context) {
	id := s.builder.AddItem()
	c.JSON(http.StatusCreated, AddItemResponse{ID: id, State: s.stateResponse()})
}

func (s *Server) handleUpdateItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}
	s.builder.UpdateItem(id, req.patch())
	c.JSON(http.StatusOK, s.stateResponse())
}

func (s *Server) handleRemoveItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	s.builder.RemoveItem(id)
	c.JSON(http.StatusOK, s.stateResponse())
}

func (s *Server) handleTotals(c *gin.Context) {
	c.JSON(http.StatusOK, totalsResponse(s.builder))
}

func (s *Server) handleValidate(c *gin.Context) {
	if err := s.builder.Validate(); err != nil {
		c.JSON(http.StatusOK, validationResponse(err))
		return
	}
	c.JSON(http.StatusOK, ValidationResponse{Valid: true})
}

func (s *Server) handlePreview(c *gin.Context) {
	html, err := s.builder.Preview()
	if err != nil {
		s.renderFailure(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (s *Server) handleExport(c *gin.Context) {
	result, err := s.builder.Export()
	if err != nil {
		s.renderFailure(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, "application/pdf", result.Data)
}

func (s *Server) handleClear(c *gin.Context) {
	if err := s.builder.Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to clear draft", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.stateResponse())
}

func (s *Server) handleSaveDraft(c *gin.Context) {
	if err := s.builder.SaveDraft(); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to save draft", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": true})
}

func (s *Server) handleLoadDraft(c *gin.Context) {
	loaded := s.builder.LoadDraft()
	c.JSON(http.StatusOK, LoadDraftResponse{Loaded: loaded, State: s.stateResponse()})
}

// renderFailure maps builder errors onto the response taxonomy:
// validation problems carry the offending field, a running export is a
// conflict, and everything else is the generic export failure.
func (s *Server) renderFailure(c *gin.Context, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, ValidationResponse{
			Valid:   false,
			Field:   verr.Field,
			Message: verr.Message,
		})
	case errors.Is(err, builder.ErrExportInFlight):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: builder.ErrExportFailed.Error()})
	}
}
