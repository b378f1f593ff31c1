// Package server wires the gin router, middleware and REST handlers into an
// HTTP server with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/blockpulse/whale-sentry/internal/api/middleware"
	"github.com/blockpulse/whale-sentry/internal/api/rest"
	"github.com/blockpulse/whale-sentry/internal/logger"
	"github.com/blockpulse/whale-sentry/internal/pipeline"
	"github.com/blockpulse/whale-sentry/internal/store"
)

// Config holds the server configuration
type Config struct {
	Debug         bool
	Host          string
	Port          int
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	IdleTimeout   time.Duration
	WebhookSecret string
}

// Server wraps the HTTP server
type Server struct {
	config     Config
	store      store.Store
	ingestor   pipeline.Ingestor
	httpServer *http.Server
}

// New creates a new API server
func New(cfg Config, s store.Store, ingestor pipeline.Ingestor) *Server {
	return &Server{
		config:   cfg,
		store:    s,
		ingestor: ingestor,
	}
}

// Start initializes and starts the HTTP server
func (s *Server) Start() error {
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	restHandler := rest.NewHandler(s.ingestor, s.store, s.config.WebhookSecret)
	rest.SetupRoutes(router, restHandler)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	logger.Info("Starting API server",
		zap.String("address", addr),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down API server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}
