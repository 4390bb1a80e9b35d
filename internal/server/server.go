// Package server wires handlers, middleware, and routes into an HTTP server.
//
// main.go builds the Catalog from the configured fixture source and hands it
// to New, which creates the session store and every handler. Start runs the
// listener and the session janitor until SIGINT or SIGTERM.
package server

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/ivannaromanovych/product-categories/internal/config"
	"github.com/ivannaromanovych/product-categories/internal/handler"
	"github.com/ivannaromanovych/product-categories/internal/middleware"
	"github.com/ivannaromanovych/product-categories/internal/service"
	"github.com/ivannaromanovych/product-categories/internal/session"
	"github.com/ivannaromanovych/product-categories/web"
)

// minJanitorInterval bounds how often idle sessions are swept.
const minJanitorInterval = time.Second

// Server holds the router and the session store it owns.
type Server struct {
	router   *chi.Mux
	config   config.Config
	logger   *slog.Logger
	sessions *session.Store
	signer   *session.Signer
	catalog  *service.Catalog
}

// New creates a Server for cat using cfg.
func New(cfg config.Config, cat *service.Catalog, logger *slog.Logger) (*Server, error) {
	signer, err := session.NewSigner(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("creating session signer: %w", err)
	}

	s := &Server{
		router:   chi.NewRouter(),
		config:   cfg,
		logger:   logger,
		sessions: session.NewStore(cfg.SessionTTL, cat.NewController, logger),
		signer:   signer,
		catalog:  cat,
	}

	if err := s.setupRoutes(); err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}
	return s, nil
}

// setupRoutes configures middleware and handlers.
//
// GET    /                      → catalog page (HTML)
// POST   /filters/user          → select user, redirect to /
// POST   /filters/search        → set search term, redirect to /
// POST   /filters/search/clear  → clear search term, redirect to /
// POST   /filters/reset         → reset both filters, redirect to /
// GET    /api/users             → users (JSON)
// GET    /api/categories        → categories (JSON)
// GET    /api/products          → current view (JSON)
// PUT    /api/filters/user      → select user (JSON)
// PUT    /api/filters/search    → set search term (JSON)
// DELETE /api/filters/search    → clear search term (JSON)
// POST   /api/filters/reset     → reset both filters (JSON)
// GET    /healthz               → liveness
// GET    /static/*              → embedded stylesheet
//
// Middleware order: RequestID must run before Logger so the log line
// carries the id; Recoverer sits inside Logger so panics are logged as 500s.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)

	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("opening static files: %w", err)
	}
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	pageHandler, err := handler.NewPageHandler(s.catalog, s.logger)
	if err != nil {
		return fmt.Errorf("creating page handler: %w", err)
	}
	apiHandler := handler.NewAPIHandler(s.catalog, s.logger)

	// Everything below needs the caller's Controller.
	s.router.Group(func(r chi.Router) {
		r.Use(session.Middleware(s.sessions, s.signer, s.logger))

		r.Get("/", pageHandler.HandlePage)
		r.Route("/filters", func(r chi.Router) {
			r.Post("/user", pageHandler.HandleSelectUser)
			r.Post("/search", pageHandler.HandleSearch)
			r.Post("/search/clear", pageHandler.HandleClearSearch)
			r.Post("/reset", pageHandler.HandleReset)
		})

		r.Route("/api", func(r chi.Router) {
			r.Get("/users", apiHandler.HandleUsers)
			r.Get("/categories", apiHandler.HandleCategories)
			r.Get("/products", apiHandler.HandleProducts)
			r.Put("/filters/user", apiHandler.HandleSelectUser)
			r.Put("/filters/search", apiHandler.HandleSetSearch)
			r.Delete("/filters/search", apiHandler.HandleClearSearch)
			r.Post("/filters/reset", apiHandler.HandleReset)
		})
	})

	return nil
}

// Handler returns the router. Tests drive it with httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves HTTP until SIGINT or SIGTERM, then shuts down gracefully and
// stops the session janitor.
func (s *Server) Start() error {
	s.sessions.Start(janitorInterval(s.config.SessionTTL))
	defer s.sessions.Stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("fixtures", string(s.config.FixtureSource)),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

// janitorInterval sweeps four times per TTL.
func janitorInterval(ttl time.Duration) time.Duration {
	interval := ttl / 4
	if interval < minJanitorInterval {
		return minJanitorInterval
	}
	return interval
}
