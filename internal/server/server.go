// package server contains middleware & handlers for the recommendation web service
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/singme/internal/shared"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, CORS, rate limiting, etc.
type Middleware func(http.Handler) http.Handler

// Route is a single method and path pattern served by a [Handler].
type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
}

// Handler defines the interface for groups of endpoints.
type Handler interface {
	Routes() []Route // Routes returns the method, path pattern and handler of every endpoint
}

// Router defines the interface for HTTP routing and middleware management.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

const shutdownTimeout = 10 * time.Second

// Server owns the router, middleware and the underlying [http.Server].
type Server struct {
	cfg     shared.ServerConfig
	router  *BasicRouter
	handler http.Handler
	logger  *log.Logger
}

// New wires the handlers for cfg.Mode into a router and wraps it with the global middleware.
func New(cfg shared.ServerConfig, recs RecommendationService, scenarios ScenarioService, logger *log.Logger) *Server {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	router := NewBasicRouter()
	if cfg.Metrics {
		router.Use(MetricsMiddleware())
	}

	router.Handler(NewHealthHandler())
	var admin *AdminHandler
	if cfg.TestRoutesEnabled() {
		admin = NewAdminHandler(recs, scenarios, logger)
		router.Handler(admin)
		logger.Warn("admin routes enabled", "mode", cfg.Mode)
	}
	router.Handler(NewRecommendationHandler(recs, admin, logger))
	if cfg.Metrics {
		router.Handle(http.MethodGet, "/metrics", promhttp.Handler())
	}

	handler := Chain(router,
		RecoverMiddleware(logger),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		CORSMiddleware(cfg.AllowedOrigins),
		RateLimitMiddleware(cfg.RateLimit, cfg.RateBurst),
	)

	return &Server{cfg: cfg, router: router, handler: handler, logger: logger}
}

// Handler returns the fully wrapped [http.Handler].
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", srv.Addr, "mode", s.cfg.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return <-errCh
}
