// Package server is the reference remote authority for fieldsync clients:
// a small REST service that assigns permanent ids to entities.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"github.com/iudanet/fieldsync/internal/server/handlers"
	"github.com/iudanet/fieldsync/internal/server/jwt"
	"github.com/iudanet/fieldsync/internal/server/middleware"
	"github.com/iudanet/fieldsync/internal/server/storage"
	"github.com/iudanet/fieldsync/internal/server/storage/sqlite"
)

const healthPath = "/api/v1/health"

// RouterOptions configures NewRouter
type RouterOptions struct {
	Tokens  middleware.TokenValidator // nil disables authentication
	Limiter *middleware.RateLimiter   // nil disables rate limiting
	Version string
}

// NewRouter builds the HTTP API on top of store
func NewRouter(store storage.EntityStorage, logger *slog.Logger, opts RouterOptions) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RecoveryMiddleware(logger))
	r.Use(middleware.LoggingMiddleware(logger, healthPath))
	if opts.Limiter != nil {
		r.Use(opts.Limiter.Middleware)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlers.SendError(logger, w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlers.SendError(logger, w, "method not allowed", http.StatusMethodNotAllowed)
	})

	r.HandleFunc(healthPath, handlers.NewHealthHandler(logger, store, opts.Version).Health).Methods(http.MethodGet)

	// Защищенные маршруты
	protected := r.PathPrefix("/api/v1").Subrouter()
	if opts.Tokens != nil {
		protected.Use(middleware.AuthMiddleware(logger, opts.Tokens))
	}
	handlers.NewEntityHandler(logger, store).Register(protected)

	return r
}

// Server owns the database and the HTTP listener
type Server struct {
	cfg     Config
	store   *sqlite.Storage
	limiter *middleware.RateLimiter
	http    *http.Server
	logger  *slog.Logger
}

// New opens the database and prepares the HTTP server
func New(ctx context.Context, cfg Config, logger *slog.Logger, version string) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	opts := RouterOptions{Version: version}
	if cfg.JWTSecret != "" {
		opts.Tokens = jwt.NewService(cfg.JWTSecret, cfg.TokenTTL)
	} else {
		logger.Warn("JWT secret is not set, API requests are not authenticated")
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst, time.Minute, logger)
		opts.Limiter = limiter
	}

	return &Server{
		cfg:     cfg,
		store:   store,
		limiter: limiter,
		logger:  logger,
		http: &http.Server{
			Addr:              cfg.Addr,
			Handler:           NewRouter(store, logger, opts),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Run serves on ln (or on the configured address when ln is nil) until ctx
// is cancelled, then shuts down gracefully and closes the database.
func (s *Server) Run(ctx context.Context, ln net.Listener) error {
	defer s.close()

	if ln == nil {
		var err error
		ln, err = net.Listen("tcp", s.cfg.Addr)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Server started", "addr", ln.Addr().String())
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func (s *Server) close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
	if err := s.store.Close(); err != nil {
		s.logger.Error("Failed to close storage", "error", err)
	}
}
