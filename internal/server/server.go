package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/boxboard/apiserver/config"
	"github.com/boxboard/apiserver/internal/db"
	"github.com/boxboard/apiserver/internal/handlers"
	"github.com/boxboard/apiserver/internal/services"
	"github.com/boxboard/apiserver/internal/storage"
	"github.com/boxboard/apiserver/internal/store"
	"github.com/boxboard/apiserver/internal/web"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
}

// New constructs a Server: database pool, repositories, services,
// optional photo storage, REST routes, the web dashboard and metrics.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	configureLogging(cfg.LogLevel)

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	photoStorage, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}
	if photoStorage != nil {
		if err := photoStorage.EnsureBucket(ctx); err != nil {
			_ = dbConn.Close()
			return nil, fmt.Errorf("ensure bucket: %w", err)
		}
		log.Info().Str("backend", cfg.Storage.Backend).Msg("photo storage configured")
	} else {
		log.Info().Msg("photo storage disabled")
	}

	auditService := services.NewAuditService(store.NewAuditLogRepository(dbConn))
	userService := services.NewUserService(store.NewUserRepository(dbConn), auditService)
	locationService := services.NewLocationService(store.NewLocationRepository(dbConn), auditService)
	itemService := services.NewItemService(store.NewItemRepository(dbConn), auditService)
	activityService := services.NewActivityService(store.NewActivityRepository(dbConn), auditService)
	assignmentService := services.NewAssignmentService(store.NewAssignmentRepository(dbConn), auditService)
	noteService := services.NewNoteService(store.NewNoteRepository(dbConn), auditService)
	reportService := services.NewReportService(store.NewReportRepository(dbConn))

	authHandler := handlers.NewAuthHandler(userService, cfg.Auth)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := newHTTPMetrics(registry)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		metrics.middleware,
		middleware.Timeout(60*time.Second),
	)

	router.Get("/health", handlers.Health)
	router.Post("/login", authHandler.Login)
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	router.Group(func(r chi.Router) {
		r.Use(authHandler.RequireAuth)

		r.Get("/me", authHandler.Me)
		r.Put("/me", authHandler.UpdateMe)
		r.Post("/me/change-password", authHandler.ChangePassword)

		r.Route("/utenti", func(r chi.Router) {
			handlers.UserRouter(r, userService)
		})
		r.Route("/locations", func(r chi.Router) {
			handlers.LocationRouter(r, locationService)
		})
		r.Route("/oggetti", func(r chi.Router) {
			handlers.ItemRouter(r, itemService, photoStorage)
		})
		r.Route("/attivita", func(r chi.Router) {
			handlers.ActivityRouter(r, activityService)
		})
		r.Route("/oggetto-attivita", func(r chi.Router) {
			handlers.AssignmentRouter(r, assignmentService)
		})
		r.Route("/note", func(r chi.Router) {
			handlers.NoteRouter(r, noteService)
		})
		r.Route("/log-operazioni", func(r chi.Router) {
			handlers.AuditLogRouter(r, auditService)
		})
		handlers.ReportRouter(r, reportService)
	})

	webHandler, err := web.Router(web.Deps{
		Users:       userService,
		Locations:   locationService,
		Items:       itemService,
		Activities:  activityService,
		Assignments: assignmentService,
		Notes:       noteService,
		Audit:       auditService,
		Reports:     reportService,
		Auth:        cfg.Auth,
	})
	if err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("web dashboard: %w", err)
	}
	router.Mount("/app", webHandler)

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
	}, nil
}

func configureLogging(level string) {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	log.Info().Str("addr", s.httpServer.Addr).Msg("starting http server")
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}
