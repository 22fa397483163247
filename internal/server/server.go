// Package server is the composition root: it wires config, store, services,
// handlers, and middleware into one chi router and owns the process lifecycle
// (startup, the session sweep ticker, graceful shutdown).
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sakif/showcase/internal/auth"
	"github.com/sakif/showcase/internal/config"
	"github.com/sakif/showcase/internal/handler"
	"github.com/sakif/showcase/internal/middleware"
	sqliteRepo "github.com/sakif/showcase/internal/repository/sqlite"
	"github.com/sakif/showcase/internal/service"
)

// sessionSweepInterval is how often expired session rows are collected.
// Expired sessions are already invalid the moment they expire (validation
// checks the timestamp); the sweep only keeps the table from growing forever.
const sessionSweepInterval = time.Hour

// Server holds the HTTP server and all its dependencies.
type Server struct {
	router  *chi.Mux
	cfg     *config.Config
	logger  *slog.Logger
	db      *sqliteRepo.DB
	authSvc *service.AuthService
}

// New creates a Server, assembling the full dependency chain:
// sqlite.DB → services → handlers → routes. Each layer receives interfaces,
// not concrete types, so tests can swap any level.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	gate, err := auth.NewAdminGate(cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("building admin gate: %w", err)
	}
	if cfg.Admin.Password == "" {
		logger.Warn("admin password not set — the admin gate is disabled")
	}

	s := &Server{
		router:  chi.NewRouter(),
		cfg:     cfg,
		logger:  logger,
		db:      db,
		authSvc: service.NewAuthService(db, db, gate, logger),
	}

	s.setupRoutes()

	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.Metrics())
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*.showcase.dev"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true, // the session cookie must ride along
		MaxAge:           300,
	}))

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	s.router.Handle("/metrics", promhttp.Handler())

	projectSvc := service.NewProjectService(s.db, s.logger)
	heartSvc := service.NewHeartService(s.db, s.db, s.logger)
	commentSvc := service.NewCommentService(s.db, s.db, s.logger)

	secureCookie := s.cfg.Server.IsProd()
	authHandler := handler.NewAuthHandler(s.authSvc, secureCookie, s.logger)
	projectHandler := handler.NewProjectHandler(projectSvc, s.logger)
	heartHandler := handler.NewHeartHandler(heartSvc, s.logger)
	commentHandler := handler.NewCommentHandler(commentSvc, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/admin", authHandler.HandleAdminLogin)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(s.authSvc))
			r.Get("/me", authHandler.HandleMe)
		})

		r.Route("/projects", func(r chi.Router) {
			// Public reads. OptionalAuth so owners and admins see beyond the
			// approved-only default.
			r.Group(func(r chi.Router) {
				r.Use(auth.OptionalAuth(s.authSvc))
				r.Get("/", projectHandler.HandleList)
				r.Get("/{id}", projectHandler.HandleGet)
			})

			// Guest heart routes carry their identity in the body/query, not a
			// session — no auth middleware at all.
			r.Post("/{id}/guest-heart", heartHandler.HandleGuestAdd)
			r.Delete("/{id}/guest-heart", heartHandler.HandleGuestRemove)
			r.Get("/{id}/guest-heart/status", heartHandler.HandleGuestStatus)

			r.Get("/{id}/comments", commentHandler.HandleList)

			// Authenticated mutations.
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAuth(s.authSvc))
				r.Post("/", projectHandler.HandleCreate)
				r.Put("/{id}", projectHandler.HandleUpdate)
				r.Delete("/{id}", projectHandler.HandleDelete)
				r.Put("/{id}/status", projectHandler.HandleSetStatus)
				r.Post("/{id}/heart", heartHandler.HandleAdd)
				r.Delete("/{id}/heart", heartHandler.HandleRemove)
				r.Post("/{id}/comments", commentHandler.HandleCreate)
			})
		})
	})
}

// Start runs the HTTP server and the session sweep until SIGINT/SIGTERM, then
// shuts down gracefully: stop accepting connections, drain in-flight requests
// (30s), stop the sweeper, close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	sweepDone := make(chan struct{})
	go s.sweepSessions(sweepDone)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.cfg.Server.Port),
			slog.String("database", s.cfg.DB.Path),
			slog.String("environment", s.cfg.Server.Environment),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		close(sweepDone)
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		close(sweepDone)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

// sweepSessions garbage-collects expired session rows on a ticker until done
// is closed. A failed sweep only logs — the next tick retries.
func (s *Server) sweepSessions(done <-chan struct{}) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			if err := s.authSvc.SweepExpiredSessions(ctx); err != nil {
				s.logger.Error("session sweep failed", slog.String("error", err.Error()))
			}
			cancel()
		case <-done:
			return
		}
	}
}
