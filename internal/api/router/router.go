package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/contractlens/contractlens/internal/api/handlers"
	"github.com/contractlens/contractlens/internal/api/middleware"
	"github.com/contractlens/contractlens/internal/config"
	"github.com/contractlens/contractlens/internal/pkg/logger"
	"github.com/contractlens/contractlens/internal/pkg/metrics"
)

type Handlers struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Account  *handlers.AccountHandler
	Audit    *handlers.AuditHandler
	Analysis *handlers.AnalysisHandler
	Billing  *handlers.BillingHandler
}

func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	r.Use(metrics.Middleware())
	r.Use(middleware.RateLimit(100, 200)) // 100 req/sec, burst of 200

	// Public routes
	r.Group(func(r chi.Router) {
		// Swagger documentation
		r.Get("/swagger/*", httpSwagger.WrapHandler)

		// Health checks and metrics
		r.Get("/healthz", h.Health.Healthz)
		r.Get("/readyz", h.Health.Readyz)
		r.Handle("/metrics", metrics.Handler())

		// Auth endpoints
		r.Post("/api/v1/auth/register", h.Auth.Register)
		r.Post("/api/v1/auth/login", h.Auth.Login)
		r.Post("/api/v1/auth/google", h.Auth.GoogleLogin)
		r.Post("/api/v1/auth/reset-password", h.Auth.ResetPassword)
		r.Post("/api/v1/auth/refresh", h.Auth.RefreshToken)
		r.Post("/api/v1/auth/logout", h.Auth.Logout)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))

		r.Get("/api/v1/auth/me", h.Auth.Me)

		// Account
		r.Route("/api/v1/account", func(r chi.Router) {
			r.Patch("/", h.Account.Update)
			r.Put("/plan", h.Account.UpgradePlan)
			r.Delete("/", h.Account.Delete)
		})

		// Audit ledger
		r.Route("/api/v1/audits", func(r chi.Router) {
			r.Get("/", h.Audit.List)
			r.Post("/", h.Audit.Record)
			r.Get("/{id}", h.Audit.Get)
			r.Delete("/{id}", h.Audit.Delete)
		})

		// Analysis is the expensive endpoint, keep a tighter per-user lid on it
		r.Group(func(r chi.Router) {
			r.Use(middleware.UserRateLimit(1, 3))
			r.Post("/api/v1/analyze", h.Analysis.Analyze)
		})

		// Billing
		r.Route("/api/v1/billing", func(r chi.Router) {
			r.Get("/plans", h.Billing.ListPlans)
			r.Post("/checkout", h.Billing.Checkout)
		})
	})

	return r
}
