// Package api provides the HTTP API server and handlers for the travel journal.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/traveljournal/journal-server/internal/http/response"
	"github.com/traveljournal/journal-server/internal/logger"
	"github.com/traveljournal/journal-server/internal/store"
)

// Options configures the HTTP surface.
type Options struct {
	Version            string
	CORSAllowedOrigins []string

	// TrustProxy rewrites the client address from X-Forwarded-For and
	// X-Real-IP. Rate limiting keys on that address.
	TrustProxy bool
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           store.Store
	services        *Services
	router          *chi.Mux
	api             huma.API
	logger          *slog.Logger
	authRateLimiter *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
// A nil limiter disables rate limiting on the auth endpoints.
func NewServer(st store.Store, services *Services, limiter *RateLimiter, opts Options, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Discard()
	}

	router := chi.NewRouter()
	s := &Server{
		store:           st,
		services:        services,
		router:          router,
		logger:          log.Logger,
		authRateLimiter: limiter,
	}

	s.setupMiddleware(log, opts)

	s.api = humachi.New(router, newHumaConfig(opts.Version))
	RegisterErrorHandler()

	s.registerRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, mainly for OpenAPI generation.
func (s *Server) API() huma.API {
	return s.api
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware(log *logger.Logger, opts Options) {
	s.router.Use(middleware.RequestID)
	if opts.TrustProxy {
		s.router.Use(middleware.RealIP)
	}
	s.router.Use(logger.RequestLogger(log))
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(corsOptions(opts.CORSAllowedOrigins)))
	s.router.Use(authMiddleware(s.services.Auth))

	s.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "resource not found", s.logger)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.MethodNotAllowed(w, s.logger)
	})
}

// registerRoutes registers every huma operation.
func (s *Server) registerRoutes() {
	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerUserRoutes()
	s.registerEntryRoutes()
	s.registerPhotoRoutes()
	s.registerTagRoutes()
	if s.services.Search != nil {
		s.registerSearchRoutes()
	}
}

func newHumaConfig(version string) huma.Config {
	if version == "" {
		version = "dev"
	}
	cfg := huma.DefaultConfig("Travel Journal API", version)
	cfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
	return cfg
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}
}

// bearerAuth marks an operation as requiring a bearer token in OpenAPI.
var bearerAuth = []map[string][]string{{"bearer": {}}}
