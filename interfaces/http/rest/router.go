package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"vesseldocs-backend/application/search"
	"vesseldocs-backend/application/status"
	"vesseldocs-backend/domain/docs"
	"vesseldocs-backend/infrastructure/config"
	"vesseldocs-backend/interfaces/http/rest/handlers"
	"vesseldocs-backend/interfaces/http/rest/middleware"
	"vesseldocs-backend/pkg/auth"
	"vesseldocs-backend/pkg/faults"
	"vesseldocs-backend/pkg/observability"
)

const apiRequestsPerMinute = 100

// Router creates and configures the HTTP router
type Router struct {
	cfg           *config.Config
	resolver      *config.Resolver
	authenticator *auth.Authenticator
	index         *docs.Index
	searchService *search.Service
	reporter      *status.Reporter
	injector      *faults.Injector
	gate          faults.OutageGate
	metrics       *observability.Collector
	logger        *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	resolver *config.Resolver,
	authenticator *auth.Authenticator,
	index *docs.Index,
	searchService *search.Service,
	reporter *status.Reporter,
	injector *faults.Injector,
	gate faults.OutageGate,
	metrics *observability.Collector,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:           cfg,
		resolver:      resolver,
		authenticator: authenticator,
		index:         index,
		searchService: searchService,
		reporter:      reporter,
		injector:      injector,
		gate:          gate,
		metrics:       metrics,
		logger:        logger,
	}
}

// Setup configures all routes and middleware. The health, status and
// metrics endpoints sit outside the fault-injection path so probes keep
// working during a simulated outage; the admin surface does too, otherwise
// an operator could not end an outage they started.
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(middleware.Metrics(rt.metrics))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	healthHandler := handlers.NewHealthHandler(rt.reporter)
	router.Get("/health", healthHandler.Health)
	router.Get("/status", healthHandler.Status)
	router.Method(http.MethodGet, "/metrics", rt.metrics.Handler())

	ipLimiter := auth.NewIPRateLimiter(apiRequestsPerMinute)
	sessionAuth := middleware.SessionAuth(rt.authenticator, ipLimiter, rt.logger)
	faultInjection := middleware.FaultInjection(rt.injector, rt.gate, rt.metrics, rt.logger)

	router.Route("/api/v1", func(r chi.Router) {
		// Login passes through fault injection but naturally has no
		// session yet.
		r.Group(func(r chi.Router) {
			r.Use(faultInjection)
			r.Post("/auth/login", handlers.NewAuthHandler(rt.authenticator, rt.metrics, rt.logger).Login)
		})

		// Document retrieval: session required, faults injected.
		r.Group(func(r chi.Router) {
			r.Use(faultInjection)
			r.Use(sessionAuth)

			r.Get("/search", handlers.NewSearchHandler(rt.searchService, rt.metrics, rt.logger).Search)

			browseHandler := handlers.NewBrowseHandler(rt.index, rt.logger)
			r.Get("/browse", browseHandler.Browse)
			r.Get("/documents/{documentID}", browseHandler.GetDocument)
		})

		// Operator controls: session plus admin role, no fault injection.
		r.Route("/admin", func(r chi.Router) {
			r.Use(sessionAuth)
			r.Use(middleware.RequireRole(auth.RoleAdmin))

			adminHandler := handlers.NewAdminHandler(rt.gate, rt.resolver, rt.metrics, rt.logger)
			r.Post("/outage", adminHandler.TriggerOutage)
			r.Post("/mode", adminHandler.SwitchMode)
		})
	})

	return router
}
