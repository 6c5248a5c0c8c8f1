package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/instagen/internal/config"
	"github.com/jonesrussell/instagen/internal/logger"
)

const defaultIdleTimeout = 120 * time.Second

// Server wraps the gin engine with an http.Server for graceful shutdown.
type Server struct {
	httpServer *http.Server
	logger     logger.Logger
}

// NewServer creates the HTTP server with routes registered.
func NewServer(handler *Handler, cfg config.ServerConfig, log logger.Logger) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	SetupRoutes(router, handler)

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Address(),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  defaultIdleTimeout,
		},
		logger: log,
	}
}

// Start begins serving requests. It blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("http server listening", logger.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
