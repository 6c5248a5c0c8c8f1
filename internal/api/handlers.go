// Package api exposes the content generation pipeline over HTTP.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/instagen/internal/config"
	"github.com/jonesrussell/instagen/internal/domain"
	"github.com/jonesrussell/instagen/internal/logger"
	"github.com/jonesrussell/instagen/internal/pipeline"
	"github.com/jonesrussell/instagen/internal/storage"
)

// Handler handles HTTP requests for the instagen API.
type Handler struct {
	orchestrator *pipeline.Orchestrator
	store        *storage.ResultStore
	cfg          *config.Config
	logger       logger.Logger
}

// NewHandler creates a new API handler.
func NewHandler(orch *pipeline.Orchestrator, store *storage.ResultStore, cfg *config.Config, log logger.Logger) *Handler {
	return &Handler{orchestrator: orch, store: store, cfg: cfg, logger: log}
}

// GenerateRequest is the body of POST /api/v1/generate.
type GenerateRequest struct {
	Topic string `json:"topic" binding:"required"`
}

// GenerateResponse wraps a completed package with its saved location.
type GenerateResponse struct {
	Package    *domain.ContentPackage `json:"package"`
	ResultPath string                 `json:"result_path,omitempty"`
}

// Generate runs the full pipeline for the requested topic.
func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "topic is required"})
		return
	}

	pkg, err := h.orchestrator.Run(c.Request.Context(), domain.Topic(req.Topic))
	if err != nil {
		h.logger.Error("generation run failed",
			logger.String("topic", req.Topic), logger.Error(err))

		status := http.StatusBadGateway
		var asmErr *domain.AssemblyError
		if errors.Is(err, domain.ErrEmptyTopic) {
			status = http.StatusBadRequest
		} else if errors.As(err, &asmErr) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	resp := GenerateResponse{Package: pkg}
	if path, saveErr := h.store.Save(pkg); saveErr != nil {
		h.logger.Error("persist package failed", logger.Error(saveErr))
	} else {
		resp.ResultPath = path
	}

	c.JSON(http.StatusOK, resp)
}

// ListPackages returns the saved result file names, newest first.
func (h *Handler) ListPackages(c *gin.Context) {
	names, err := h.store.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"packages": names, "total": len(names)})
}

// GetPackage returns a previously saved package by file name.
func (h *Handler) GetPackage(c *gin.Context) {
	pkg, err := h.store.Load(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "package not found"})
		return
	}
	c.JSON(http.StatusOK, pkg)
}

// HealthCheck reports service liveness.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.cfg.Service.Name,
		"version": h.cfg.Service.Version,
	})
}

// ReadyCheck reports service readiness.
func (h *Handler) ReadyCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
