package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ecotrace/ecotrace-core/internal/api/middleware"
	"github.com/ecotrace/ecotrace-core/internal/api/rest"
	"github.com/ecotrace/ecotrace-core/internal/api/shared/executor"
	"github.com/ecotrace/ecotrace-core/internal/logger"
	"github.com/ecotrace/ecotrace-core/internal/notifier"
	"github.com/ecotrace/ecotrace-core/internal/store"
)

// Config holds the server configuration
type Config struct {
	Debug           bool
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	Auth            middleware.AuthConfig
	TokenDefaultTTL time.Duration
}

// Server wraps the HTTP server
type Server struct {
	config     Config
	store      store.Store
	notifier   notifier.Notifier
	httpServer *http.Server
}

// New creates a new API server
func New(cfg Config, store store.Store, notifier notifier.Notifier) *Server {
	return &Server{
		config:   cfg,
		store:    store,
		notifier: notifier,
	}
}

// Start initializes and starts the HTTP server
func (s *Server) Start() error {
	// Set Gin mode based on debug flag
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Setup middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS())

	// Create shared executor (business logic shared between transports)
	exec := executor.NewExecutor(s.store, s.notifier, s.config.TokenDefaultTTL)

	// Create REST handler and routes
	restHandler := rest.NewHandler(exec)
	rest.SetupRoutes(router, restHandler, s.config.Auth)

	// Create HTTP server
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

	// Start server
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
