// Package mockapi implements the remote support API contract against
// in-memory fixture data. It exists so the console can be developed,
// demoed and tested without the production backend: same envelope,
// same endpoints, same pagination shape, seeded with the documented
// development accounts.
package mockapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/lorrc/merchant-support-console/internal/config"
	"github.com/lorrc/merchant-support-console/internal/mockapi/middleware"
	"github.com/lorrc/merchant-support-console/internal/mockapi/token"
)

// Server wires the fixture store and token manager behind the HTTP
// surface the console talks to.
type Server struct {
	store  *Store
	tokens *token.Manager
	logger *slog.Logger
}

// NewServer creates a mock API server.
func NewServer(store *Store, tokens *token.Manager, logger *slog.Logger) *Server {
	return &Server{
		store:  store,
		tokens: tokens,
		logger: logger.With("component", "mockapi"),
	}
}

// Router builds the full route tree, mounted under /api like the
// production deployment.
func (s *Server) Router(cfg config.RateLimitConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(s.logger))
	r.Use(middleware.RecoveryLogger(s.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var generalLimiter, authLimiter *middleware.RateLimiter
	if cfg.Enabled {
		generalLimiter = middleware.NewRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: cfg.RequestsPerSecond,
			BurstSize:         cfg.BurstSize,
			CleanupInterval:   time.Minute,
			TTL:               3 * time.Minute,
		})
		authLimiter = middleware.NewRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: cfg.AuthRPS,
			BurstSize:         cfg.AuthBurst,
			CleanupInterval:   time.Minute,
			TTL:               5 * time.Minute,
		})
		r.Use(generalLimiter.Middleware)
	}

	r.Route("/api", func(r chi.Router) {
		// Public auth routes with stricter rate limiting
		r.Group(func(r chi.Router) {
			if authLimiter != nil {
				r.Use(authLimiter.Middleware)
			}
			r.Post("/auth/login", s.HandleLogin)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTMiddleware(s.tokens))

			r.Post("/auth/refresh", s.HandleRefresh)
			r.Get("/auth/me", s.HandleCurrentUser)

			r.Get("/dashboard/stats", s.HandleDashboardStats)

			r.Route("/tickets", func(r chi.Router) {
				r.Get("/", s.HandleListTickets)
				r.Patch("/bulk-status", s.HandleBulkStatus)
				r.Route("/{ticketID}", func(r chi.Router) {
					r.Get("/", s.HandleGetTicket)
					r.Patch("/status", s.HandleUpdateStatus)
					r.Patch("/assign", s.HandleAssign)
					r.Post("/notes", s.HandleAddNote)
				})
			})

			r.Route("/merchants", func(r chi.Router) {
				r.Get("/", s.HandleListMerchants)
				r.Get("/{merchantID}", s.HandleGetMerchant)
				r.Put("/{merchantID}", s.HandleUpdateMerchant)
			})

			r.Route("/config", func(r chi.Router) {
				r.Use(s.RequireAdmin)
				r.Get("/categories", s.HandleListCategories)
				r.Post("/categories", s.HandleCreateCategory)
				r.Put("/categories/{categoryID}", s.HandleUpdateCategory)
				r.Delete("/categories/{categoryID}", s.HandleDeleteCategory)
				r.Get("/sla", s.HandleListSLAConfigs)
				r.Put("/sla/{slaID}", s.HandleUpdateSLAConfig)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/ticket-volume", s.HandleTicketVolume)
				r.Get("/sla-compliance", s.HandleSLACompliance)
				r.Get("/agent-performance", s.HandleAgentPerformance)
				r.Get("/export/tickets", s.HandleExportTickets)
			})
		})
	})

	return r
}
