package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/systolic/config"
	"github.com/kbukum/systolic/logger"
	"github.com/kbukum/systolic/observability"
	"github.com/kbukum/systolic/resilience"
	"github.com/kbukum/systolic/server/endpoint"
	"github.com/kbukum/systolic/server/middleware"
	"github.com/kbukum/systolic/version"
)

// Server is the HTTP evaluation service backed by Gin.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     config.ServerConfig
	log        *logger.Logger

	mu       sync.Mutex
	listener net.Listener
}

// New creates a new Server. The Gin engine is created but no middleware or
// routes are applied yet; call Setup for the standard stack.
func New(cfg config.ServerConfig, log *logger.Logger) *Server {
	// Set Gin mode based on global zerolog level.
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Wrap with h2c for HTTP/2 cleartext.
	h2s := &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          120 * time.Second,
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h2c.NewHandler(engine, h2s),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	return &Server{
		httpServer: httpServer,
		engine:     engine,
		config:     cfg,
		log:        log.WithComponent("server"),
	}
}

// GinEngine returns the underlying Gin engine for route registration.
func (s *Server) GinEngine() *gin.Engine {
	return s.engine
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ApplyMiddleware applies the standard middleware stack to the server's Gin engine:
// recovery, request-ID, body size limit, observe and request logging.
func (s *Server) ApplyMiddleware(serviceName string, metrics *observability.Metrics) {
	s.engine.Use(middleware.Recovery(s.log))
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.BodySizeLimit(s.config.MaxBodySize))
	s.engine.Use(middleware.Observe(serviceName, metrics))
	s.engine.Use(middleware.RequestLogger(s.log))
}

// RegisterRoutes registers the evaluation route and the probe endpoints.
func (s *Server) RegisterRoutes(serviceName string, eval *endpoint.Evaluator) {
	s.engine.GET("/health", endpoint.Health(serviceName, version.GetShortVersion(), endpoint.EngineProbe()))
	s.engine.GET("/alive", endpoint.Liveness(serviceName))
	s.engine.GET("/version", endpoint.Version())

	v1 := s.engine.Group("/v1")
	v1.POST("/evaluate", eval.Handle)
}

// Setup applies middleware and registers routes with an evaluator built
// from the server config.
func (s *Server) Setup(serviceName string, metrics *observability.Metrics, tracing bool) {
	s.ApplyMiddleware(serviceName, metrics)
	bulkhead := resilience.NewBulkhead(resilience.BulkheadConfig{
		Name:          "evaluator",
		MaxConcurrent: s.config.MaxConcurrent,
		MaxWait:       s.config.QueueWait,
		Metrics:       metrics,
		Logger:        s.log,
	})
	s.RegisterRoutes(serviceName, endpoint.NewEvaluator(s.config.MaxInputs,
		endpoint.WithMaxCells(s.config.MaxCells),
		endpoint.WithMaxTraceCells(s.config.MaxTraceCells),
		endpoint.WithMetrics(metrics),
		endpoint.WithTracing(tracing),
		endpoint.WithBulkhead(bulkhead),
		endpoint.WithLogger(s.log.WithComponent("evaluate")),
	))
}

// Start binds the port and begins serving. It returns once the listener is
// bound so the caller knows the port is ready; serving continues in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	s.log.Info("Starting HTTP server", map[string]interface{}{
		"addr": s.httpServer.Addr,
	})

	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.httpServer.Addr, err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("Server error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	s.log.Info("HTTP server started", map[string]interface{}{
		"addr": listener.Addr().String(),
	})
	return nil
}

// Stop gracefully shuts down the server within the configured shutdown timeout.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.log.Error("Server shutdown error", map[string]interface{}{
			"error": err.Error(),
		})
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("HTTP server shut down successfully")
	return nil
}

// Run starts the server and blocks until ctx is done, then stops it.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return s.Stop(context.WithoutCancel(ctx))
}

// Addr returns the bound address once started, else the configured one.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}
