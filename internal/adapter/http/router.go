package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tindi/chamaledger/internal/adapter/http/handler"
	"github.com/tindi/chamaledger/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler      *handler.AuthHandler
	MemberHandler    *handler.MemberHandler
	SavingsHandler   *handler.SavingsHandler
	CycleHandler     *handler.CycleHandler
	LoanHandler      *handler.LoanHandler
	StatementHandler *handler.StatementHandler
	DashboardHandler *handler.DashboardHandler
	UserHandler      *handler.UserHandler
	HealthHandler    *handler.HealthHandler

	Authenticator middleware.Authenticator
	RateLimiter   *middleware.RateLimiter
	Logging       *middleware.LoggingMiddleware
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)
	if cfg.Logging != nil {
		r.Use(cfg.Logging.Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", cfg.AuthHandler.Login)

		// Everything below requires a session cookie
		r.Group(func(r chi.Router) {
			r.Use(middleware.SessionAuth(cfg.Authenticator))

			r.Post("/auth/logout", cfg.AuthHandler.Logout)
			r.Get("/auth/me", cfg.AuthHandler.Me)

			// Members
			r.Route("/members", func(r chi.Router) {
				r.Get("/", cfg.MemberHandler.List)
				r.Get("/{id}", cfg.MemberHandler.Get)
				r.Get("/{id}/deposits", cfg.SavingsHandler.ListByMember)
				r.Get("/{id}/balance", cfg.SavingsHandler.GetBalance)
				r.Get("/{id}/loans", cfg.LoanHandler.ListByMember)
				r.Get("/{id}/statement", cfg.StatementHandler.GetMemberStatement)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRecorder)
					r.Post("/", cfg.MemberHandler.Create)
					r.Patch("/{id}", cfg.MemberHandler.Update)
				})
			})

			// Savings
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRecorder)
				r.Post("/savings/deposits", cfg.SavingsHandler.CreateDeposit)
			})

			// Cycles
			r.Route("/cycles", func(r chi.Router) {
				r.Get("/", cfg.CycleHandler.List)
				r.Get("/{id}", cfg.CycleHandler.Get)
				r.Get("/{id}/contributions", cfg.CycleHandler.ListContributions)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRecorder)
					r.Post("/", cfg.CycleHandler.Create)
					r.Post("/{id}/close", cfg.CycleHandler.Close)
					r.Post("/{id}/contributions", cfg.CycleHandler.CreateContribution)
				})
			})

			// Loans
			r.Route("/loans", func(r chi.Router) {
				r.Get("/", cfg.LoanHandler.List)
				r.Get("/{id}", cfg.LoanHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRecorder)
					r.Post("/", cfg.LoanHandler.Create)
					r.Post("/{id}/transactions", cfg.LoanHandler.CreateRepayment)
				})
			})

			// Deleting a recorded repayment is a ledger correction;
			// admins only.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Delete("/loan-transactions/{id}", cfg.LoanHandler.DeleteTransaction)
				r.Post("/users", cfg.UserHandler.Create)
				r.Get("/users/{id}", cfg.UserHandler.Get)
			})

			// Dashboard
			r.Get("/dashboard", cfg.DashboardHandler.Get)
		})
	})

	return r
}
