package router

import (
	"net/http"

	"canteen/internal/handler"
	"canteen/internal/middleware"
	"canteen/internal/model"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted by New.
type Handlers struct {
	Health *handler.HealthHandler
	Auth   *handler.AuthHandler
	Coupon *handler.CouponHandler
	Report *handler.ReportHandler
	Admin  *handler.AdminHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, tokens middleware.TokenValidator, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Recovery -> RequestID -> Logging -> CORS, then JWTAuth on /api except login.
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	r.Get("/health", h.Health.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(tokens, logger))

			r.Route("/coupons", func(r chi.Router) {
				r.With(middleware.RequirePermission(model.PermIssue, logger)).Get("/menu", h.Coupon.Menu)
				r.With(middleware.RequirePermission(model.PermIssue, logger)).Get("/preview", h.Coupon.Preview)
				r.With(middleware.RequirePermission(model.PermIssue, logger)).Post("/", h.Coupon.Issue)
				r.With(middleware.RequirePermission(model.PermRedeem, logger)).Get("/lookup/{token}", h.Coupon.Lookup)
				r.With(middleware.RequirePermission(model.PermRedeem, logger)).Post("/redeem", h.Coupon.Redeem)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequirePermission(model.PermReport, logger))
				r.Get("/daily", h.Report.Daily)
				r.Get("/weekly", h.Report.Weekly)
				r.Get("/overview", h.Report.Overview)
				r.Get("/export", h.Report.Export)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequirePermission(model.PermManage, logger))

				r.Get("/employees", h.Admin.ListEmployees)
				r.Post("/employees", h.Admin.PutEmployee)
				r.Post("/employees/import", h.Admin.ImportRoster)
				r.Get("/employees/{id}", h.Admin.GetEmployee)
				r.Put("/employees/{id}", h.Admin.PutEmployee)
				r.Delete("/employees/{id}", h.Admin.DeleteEmployee)

				r.Get("/menu", h.Admin.ListMenu)
				r.Post("/menu", h.Admin.PutMenuItem)
				r.Put("/menu/{name}", h.Admin.PutMenuItem)
				r.Delete("/menu/{name}", h.Admin.DeleteMenuItem)

				r.Get("/users", h.Admin.ListUsers)
				r.Post("/users", h.Admin.CreateUser)
				r.Put("/users/{username}", h.Admin.UpdateUser)
				r.Delete("/users/{username}", h.Admin.DeleteUser)
			})
		})
	})

	return r
}
