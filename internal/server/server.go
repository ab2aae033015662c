package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/postboard/internal/auth"
	"github.com/hongminglow/postboard/internal/config"
	"github.com/hongminglow/postboard/internal/http/handlers"
	"github.com/hongminglow/postboard/internal/http/respond"
	"github.com/hongminglow/postboard/internal/middleware"
	"github.com/hongminglow/postboard/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store, logger *slog.Logger) *Server {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           NewHandler(store, tokens, cfg.CORSOrigins, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// NewHandler builds the routed handler tree. Post routes live under /api.
func NewHandler(store storage.Store, tokens *auth.TokenManager, corsOrigins []string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer(logger))
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respond.Error(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	handlers.NewHealthHandler(time.Now(), store).Register(r)
	r.Route("/api", func(r chi.Router) {
		handlers.NewAuthHandler(store, tokens, logger).Register(r)
		handlers.NewPostHandler(store, logger).Register(r, middleware.RequireAuth(tokens, logger))
	})

	return middleware.CORS(corsOrigins, middleware.Logging(logger, r))
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
