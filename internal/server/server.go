package server

import (
	"context"
	"net/http"
	"time"

	"github.com/finlight/dashboard-be/internal/auth"
	"github.com/finlight/dashboard-be/internal/config"
	"github.com/finlight/dashboard-be/internal/http/handlers"
	"github.com/finlight/dashboard-be/internal/middleware"
	"github.com/finlight/dashboard-be/internal/storage"
)

// Store is the combined persistence surface the server wires handlers to.
type Store interface {
	storage.UserStore
	storage.DashboardStore
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up the auth components, middleware, and routes, and returns a
// ready server. All configuration is taken here once; nothing reads the
// environment afterwards.
func New(cfg config.Config, store Store) *Server {
	codec := auth.NewTokenCodec(cfg.SessionSecret, cfg.SessionDuration)
	policy := auth.NewSessionPolicy(cfg.SessionDuration, cfg.SessionRefreshThreshold, cfg.MaxAbsoluteSession)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	authorizer := auth.NewRouteAuthorizer()
	svc := auth.NewService(store, hasher, codec)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now()).Register(mux)
	handlers.NewAuthHandler(svc).Register(mux)
	handlers.NewDashboardHandler(store).Register(mux)
	handlers.NewAdminHandler(store).Register(mux)

	// Session runs innermost so every route, including auth and admin, is
	// classified and gated before its handler executes.
	handler := middleware.CORS(cfg.CORSOrigins,
		middleware.Logging(
			middleware.Session(codec, policy, authorizer, mux)))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
