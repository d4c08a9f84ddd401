package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	AllowedOrigins []string
	// Idempotency is optional; nil disables Idempotency-Key handling.
	Idempotency middleware.IdempotencyStore
	// RateLimiter is optional; nil disables write rate limiting.
	RateLimiter *middleware.ClientRateLimiter
}

func NewRouter(logger *slog.Logger, JWTService jwt.Service, payrollHandler PayrollHandler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	allowedOrigins := opts.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", middleware.IdempotencyKeyHeader},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/", payrollHandler.GetPayroll)
				r.Get("/export", payrollHandler.ExportPayroll)
				r.Get("/employee/{userId}", payrollHandler.GetEmployeeHistory)
				r.Get("/employee/{userId}/payslip", payrollHandler.GetPayslip)

				r.With(writeMiddlewares(opts)...).Post("/", payrollHandler.SavePayroll)
			})
		})
	})

	return r
}

func writeMiddlewares(opts RouterOptions) []func(http.Handler) http.Handler {
	var mws []func(http.Handler) http.Handler
	if opts.RateLimiter != nil {
		mws = append(mws, middleware.RateLimit(opts.RateLimiter))
	}
	if opts.Idempotency != nil {
		mws = append(mws, middleware.Idempotency(opts.Idempotency))
	}
	return mws
}
