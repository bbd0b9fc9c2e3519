package http

import (
	"log/slog"
	"os"

	"github.com/agrifarm/farmpay-backend-go/internal/handler/http/middleware"
	"github.com/agrifarm/farmpay-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	JWTService jwt.Service,
	settingsHandler SettingsHandler,
	employeeHandler EmployeeHandler,
	payrollHandler PayrollHandler,
	env string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "farmpay-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
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
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/payroll/settings", func(r chi.Router) {
				r.Get("/", settingsHandler.GetSettings)
				r.Put("/", settingsHandler.UpdateSettings)
			})

			r.Get("/employees/min", employeeHandler.ListMin)

			r.Route("/payrolls", func(r chi.Router) {
				r.Post("/preview", payrollHandler.Preview)
				r.Post("/commit", payrollHandler.Commit)
				r.Get("/slips", payrollHandler.ListSlips)
				r.Get("/slips/{id}/pdf", payrollHandler.GetSlipPDF)
			})
		})
	})
	return r
}
