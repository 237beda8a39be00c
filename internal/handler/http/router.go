package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/company"
	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/plan"
	"github.com/staffhub-hr/staffhub-backend-go/internal/handler/http/middleware"
	"github.com/staffhub-hr/staffhub-backend-go/internal/pkg/jwt"
	"github.com/staffhub-hr/staffhub-backend-go/internal/pkg/obs"
)

// RouterDeps bundles everything the route tree needs.
type RouterDeps struct {
	JWTService          jwt.Service
	CompanyService      company.CompanyService
	PlanHandler         PlanHandler
	CompanyHandler      CompanyHandler
	EmployeeHandler     EmployeeHandler
	LeavePolicyHandler  LeavePolicyHandler
	PayslipHandler      PayslipHandler
	NotificationHandler NotificationHandler
	Env                 string
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "staffhub-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", deps.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))
	r.Use(obs.Instrument)

	r.Method("GET", "/metrics", obs.Handler())

	featureMW := middleware.NewFeatureMiddleware(deps.CompanyService)

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", deps.CompanyHandler.Signup)
			r.Post("/refresh", deps.CompanyHandler.Refresh)
			r.Post("/logout", deps.CompanyHandler.Logout)
		})

		// Plan catalog is public so the pricing page can render it.
		r.Get("/plans", deps.PlanHandler.List)
		r.Get("/plans/{id}", deps.PlanHandler.GetByID)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(deps.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(deps.JWTService))

			r.Route("/companies/my", func(r chi.Router) {
				r.Get("/", deps.CompanyHandler.GetMy)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/", deps.CompanyHandler.UpdateMy)
					r.Put("/plan", deps.CompanyHandler.AssignPlanMy)
					r.Post("/logo", deps.CompanyHandler.UploadLogo)
					r.Post("/resync-features", deps.CompanyHandler.ResyncMy)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", deps.EmployeeHandler.List)
				r.Post("/", deps.EmployeeHandler.Create)
				r.Get("/{id}", deps.EmployeeHandler.GetByID)
			})

			r.Route("/leave-policies", func(r chi.Router) {
				r.Use(featureMW.RequireFeature(plan.FeatureLeaveManagement))
				r.Get("/", deps.LeavePolicyHandler.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", deps.LeavePolicyHandler.Create)
					r.Put("/{id}", deps.LeavePolicyHandler.Update)
					r.Delete("/{id}", deps.LeavePolicyHandler.Delete)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Use(featureMW.RequireFeature(plan.FeaturePayroll))

				r.Get("/my", deps.PayslipHandler.ListMine)
				r.Get("/{id}", deps.PayslipHandler.GetByID)
				r.Get("/{id}/pdf", deps.PayslipHandler.DownloadPDF)
				r.Patch("/{id}/status", deps.PayslipHandler.UpdateStatus)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", deps.PayslipHandler.List)
					r.Post("/", deps.PayslipHandler.Create)
					r.Put("/{id}", deps.PayslipHandler.Update)
					r.Get("/employee/{id}/pdf", deps.PayslipHandler.DownloadEmployeePDF)
					r.Get("/employee/{id}/csv", deps.PayslipHandler.DownloadEmployeeCSV)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", deps.NotificationHandler.List)
				r.Get("/unread-count", deps.NotificationHandler.UnreadCount)
				r.Post("/mark-read", deps.NotificationHandler.MarkAsRead)
				r.Post("/mark-all-read", deps.NotificationHandler.MarkAllAsRead)
				r.Delete("/{id}", deps.NotificationHandler.Delete)
			})

			r.Route("/super-admin", func(r chi.Router) {
				r.Use(middleware.SuperAdminOnly)

				r.Post("/plans", deps.PlanHandler.Create)
				r.Put("/plans/{id}", deps.PlanHandler.Update)

				r.Route("/companies", func(r chi.Router) {
					r.Get("/", deps.CompanyHandler.List)
					r.Get("/{id}", deps.CompanyHandler.GetByID)
					r.Patch("/{id}/status", deps.CompanyHandler.UpdateStatus)
					r.Post("/{id}/plan", deps.CompanyHandler.AssignPlan)
				})

				r.Route("/leave-policies", func(r chi.Router) {
					r.Get("/", deps.LeavePolicyHandler.ListAll)
					r.Get("/statistics", deps.LeavePolicyHandler.Statistics)

					r.Route("/company/{companyId}", func(r chi.Router) {
						r.Get("/", deps.LeavePolicyHandler.ListForCompany)
						r.Post("/", deps.LeavePolicyHandler.CreateForCompany)
						r.Put("/{id}", deps.LeavePolicyHandler.UpdateForCompany)
						r.Delete("/{id}", deps.LeavePolicyHandler.DeleteForCompany)
					})
				})
			})
		})
	})

	return r
}
