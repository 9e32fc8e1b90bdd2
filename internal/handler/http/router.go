package http

import (
	"log/slog"
	"os"

	"github.com/genbaworks/kintai-backend-go/internal/handler/http/middleware"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	JWTService jwt.Service,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	siteHandler SiteHandler,
	attendanceHandler AttendanceHandler,
	salaryHandler SalaryHandler,
	alertHandler AlertHandler,
	companyHandler CompanyHandler,
	userHandler UserHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "kintai-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
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

	r.Route("/api/v1", func(r chi.Router) {

		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)
		r.Post("/auth/logout", authHandler.Logout)

		// SSE stream authenticates with its own short-lived token
		r.Get("/alerts/stream", alertHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/auth", func(r chi.Router) {
				r.Get("/me", authHandler.Me)
				r.Post("/change-password", authHandler.ChangePassword)
				r.Post("/sse-token", authHandler.GetSSEToken)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/register", authHandler.Register)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Post("/clock-out", attendanceHandler.ClockOut)
				r.Post("/break/start", attendanceHandler.StartBreak)
				r.Post("/break/end", attendanceHandler.EndBreak)
				r.Get("/today", attendanceHandler.Today)

				// Manager and up
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", attendanceHandler.List)
					r.Get("/export", attendanceHandler.ExportCSV)
					r.Get("/{id}", attendanceHandler.Get)
					r.Patch("/{id}", attendanceHandler.Correct)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Get("/", employeeHandler.List)
				r.Get("/{id}", employeeHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", employeeHandler.Create)
					r.Put("/{id}", employeeHandler.Update)
					r.Delete("/{id}", employeeHandler.Delete)
				})
			})

			r.Route("/sites", func(r chi.Router) {
				r.Get("/", siteHandler.List)
				r.Get("/{id}", siteHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", siteHandler.Create)
					r.Put("/{id}", siteHandler.Update)
					r.Delete("/{id}", siteHandler.Delete)
				})
			})

			r.Route("/salaries", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/calculate", salaryHandler.Calculate)
				r.Get("/", salaryHandler.List)
				r.Get("/export", salaryHandler.ExportWorkbook)
				r.Get("/{id}", salaryHandler.Get)
				r.Get("/{id}/payslip", salaryHandler.ExportPayslip)
				r.Patch("/{id}/status", salaryHandler.ChangeStatus)
			})

			r.Route("/alerts", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Get("/", alertHandler.List)
				r.Get("/{id}", alertHandler.Get)
				r.Patch("/{id}/read", alertHandler.MarkRead)
				r.Patch("/{id}/resolve", alertHandler.Resolve)
			})

			r.Route("/company", func(r chi.Router) {
				r.Get("/", companyHandler.Get)
				r.Get("/settings", companyHandler.GetSettings)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Put("/", companyHandler.UpdateProfile)
					r.Put("/settings", companyHandler.UpdateSettings)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", userHandler.List)
				r.Patch("/{id}/active", userHandler.SetActive)
			})
		})
	})
	return r
}
