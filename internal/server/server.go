// file: internal/server/server.go
// version: 2.1.0
// guid: 3a7c1e52-8f0d-4b6e-9a21-5d4f7b8c0e13

package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jdfalk/bookshelf/internal/library"
	"github.com/jdfalk/bookshelf/internal/metrics"
	"github.com/jdfalk/bookshelf/internal/server/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server represents the HTTP server
type Server struct {
	svc        *library.Service
	router     *gin.Engine
	httpServer *http.Server
	limiter    *middleware.SearchLimiter
	startedAt  time.Time
}

// Options tunes the middleware stack.
type Options struct {
	// SearchLimiter throttles /search and /recommend per client; nil
	// leaves them unlimited.
	SearchLimiter *middleware.SearchLimiter
	MaxBodyBytes  int64
}

// ServerConfig holds listener configuration
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DefaultServerConfig returns sane timeouts for addr.
func DefaultServerConfig(addr string) ServerConfig {
	return ServerConfig{
		Addr:            addr,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    45 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// NewServer creates a new server instance over svc
func NewServer(svc *library.Service, opts Options) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogging())
	router.Use(corsMiddleware())
	router.Use(middleware.MaxRequestBodySize(opts.MaxBodyBytes))

	// Register metrics (idempotent)
	metrics.Register()

	s := &Server{
		svc:       svc,
		router:    router,
		limiter:   opts.SearchLimiter,
		startedAt: time.Now(),
	}
	s.setupRoutes()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Start(ctx context.Context, cfg ServerConfig) error {
	s.httpServer = &http.Server{
		Addr:           cfg.Addr,
		Handler:        s.router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[INFO] Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("[INFO] Shutting down server...")
	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("[INFO] Server exited")
	return nil
}

// setupRoutes configures all the routes
func (s *Server) setupRoutes() {
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api/v1")
	{
		api.GET("/health", s.healthCheck)

		api.GET("/profile", s.getProfile)
		api.PUT("/profile", s.setProfile)

		api.GET("/favorites", s.listFavorites)
		api.POST("/favorites", s.addFavorite)
		api.GET("/favorites/find", s.findFavorites)
		api.DELETE("/favorites/*key", s.removeFavorite)

		api.GET("/history", s.listHistory)
		api.POST("/history", s.recordHistory)
		api.GET("/stats/top", s.topTerms)

		catalog := api.Group("")
		if s.limiter != nil {
			catalog.Use(s.limiter.Middleware())
		}
		catalog.GET("/search", s.search)
		catalog.GET("/recommend", s.recommend)

		api.GET("/export", s.export)
		api.POST("/reset", s.reset)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
