package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/p-miano/portfolio-api/auth"
	"github.com/p-miano/portfolio-api/config"
	"github.com/p-miano/portfolio-api/database"
	"github.com/p-miano/portfolio-api/services"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(cfg config.AppConfig, db database.Database, tokens *auth.Tokens) (Server, error) {
	if tokens == nil {
		return Server{}, errors.New("token issuer is required")
	}

	address := fmt.Sprintf("0.0.0.0:%s", cfg.Port)

	// Capture startup time
	startupTime := time.Now()

	router := newRouter(db, tokens, withConfig(cfg), withStartupTime(startupTime))

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      config.AppConfig
	startupTime time.Time
}

func withConfig(c config.AppConfig) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(db database.Database, tokens *auth.Tokens, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}
	if router.startupTime.IsZero() {
		router.startupTime = time.Now()
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(RequestID)
	chiRouter.Use(middleware.RealIP)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(HTTPLoggingMiddleware(log.With().Str("component", "http").Logger()))
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   router.config.AcceptedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", requestIDHeaderName},
		ExposedHeaders:   []string{requestIDHeaderName, "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize all handlers
	svcs := services.New(db, tokens)
	handlers := initializeHandlers(svcs, db, router.startupTime)

	authMiddleware := newAuthMiddleware(tokens, svcs.Users)
	limiter := newLoginLimiter(router.config.LoginRatePerMinute)

	setupPublicRoutes(chiRouter, handlers, limiter)
	setupAuthenticatedRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter
}

// Start blocks until the server stops. A graceful shutdown is not an error.
func (s Server) Start() error {
	log.Info().Msgf("Server started on: %s", s.Addr)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
